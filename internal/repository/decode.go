package repository

import (
	"bytes"
	"encoding/json"
	"fmt"

	"business-console/internal/entity"
)

// decodeDataset overlays the persisted top-level fields of raw onto base.
// A field that does not fit its schema keeps the base value. A stored user
// from older entries is ignored. An error is
// returned only when raw is not a JSON object at all.
func decodeDataset(key string, raw []byte, base *entity.Dataset) (*entity.Dataset, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("dataset is null")
	}

	for _, field := range entity.Fields {
		value, ok := fields[string(field)]
		if !ok || field == entity.FieldUser {
			continue
		}
		if err := applyField(base, field, value); err != nil {
			logger.Warn().Err(err).Msgf("Malformed field %q in %s, keeping default", field, key)
		}
	}
	dropInvalidIDs(key, base)
	return base, nil
}

// applyField decodes value into the named member of ds. JSON null clears a
// sequence. ds is left untouched on error.
func applyField(ds *entity.Dataset, field entity.Field, value json.RawMessage) error {
	switch field {
	case entity.FieldProducts:
		return decodeInto(value, &ds.Products)
	case entity.FieldWigs:
		return decodeInto(value, &ds.Wigs)
	case entity.FieldPastries:
		return decodeInto(value, &ds.Pastries)
	case entity.FieldSales:
		return decodeInto(value, &ds.Sales)
	case entity.FieldCustomers:
		return decodeInto(value, &ds.Customers)
	case entity.FieldOrders:
		return decodeInto(value, &ds.Orders)
	case entity.FieldDebts:
		return decodeInto(value, &ds.Debts)
	case entity.FieldInvoices:
		return decodeInto(value, &ds.Invoices)
	case entity.FieldShowcase:
		return decodeInto(value, &ds.Showcase)
	case entity.FieldCompanyStory:
		return decodeInto(value, &ds.CompanyStory)
	case entity.FieldTestimonials:
		return decodeInto(value, &ds.Testimonials)
	case entity.FieldAdvertisingPhrases:
		return decodeInto(value, &ds.AdvertisingPhrases)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

func decodeInto[T any](value json.RawMessage, dst *[]T) error {
	if isNull(value) {
		*dst = []T{}
		return nil
	}
	var records []T
	if err := json.Unmarshal(value, &records); err != nil {
		return err
	}
	if records == nil {
		records = []T{}
	}
	*dst = records
	return nil
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

// dropInvalidIDs removes records with an empty or repeated id so every
// sequence read back has unique, non-empty identifiers.
func dropInvalidIDs(key string, ds *entity.Dataset) {
	ds.Products = uniqueIDs(key, entity.FieldProducts, ds.Products, func(r entity.Product) string { return r.ID })
	ds.Wigs = uniqueIDs(key, entity.FieldWigs, ds.Wigs, func(r entity.Wig) string { return r.ID })
	ds.Pastries = uniqueIDs(key, entity.FieldPastries, ds.Pastries, func(r entity.Pastry) string { return r.ID })
	ds.Sales = uniqueIDs(key, entity.FieldSales, ds.Sales, func(r entity.Sale) string { return r.ID })
	ds.Customers = uniqueIDs(key, entity.FieldCustomers, ds.Customers, func(r entity.Customer) string { return r.ID })
	ds.Orders = uniqueIDs(key, entity.FieldOrders, ds.Orders, func(r entity.Order) string { return r.ID })
	ds.Debts = uniqueIDs(key, entity.FieldDebts, ds.Debts, func(r entity.Debt) string { return r.ID })
	ds.Invoices = uniqueIDs(key, entity.FieldInvoices, ds.Invoices, func(r entity.Invoice) string { return r.ID })
	ds.Showcase = uniqueIDs(key, entity.FieldShowcase, ds.Showcase, func(r entity.ShowcaseItem) string { return r.ID })
	ds.CompanyStory = uniqueIDs(key, entity.FieldCompanyStory, ds.CompanyStory, func(r entity.StorySection) string { return r.ID })
	ds.Testimonials = uniqueIDs(key, entity.FieldTestimonials, ds.Testimonials, func(r entity.Testimonial) string { return r.ID })
	ds.AdvertisingPhrases = uniqueIDs(key, entity.FieldAdvertisingPhrases, ds.AdvertisingPhrases, func(r entity.AdvertisingPhrase) string { return r.ID })
}

func uniqueIDs[T any](key string, field entity.Field, records []T, id func(T) string) []T {
	seen := make(map[string]struct{}, len(records))
	out := records[:0:0]
	dropped := 0
	for _, r := range records {
		rid := id(r)
		if rid == "" {
			dropped++
			continue
		}
		if _, dup := seen[rid]; dup {
			dropped++
			continue
		}
		seen[rid] = struct{}{}
		out = append(out, r)
	}
	if dropped == 0 {
		return records
	}
	logger.Warn().Msgf("Dropped %d record(s) without a unique id from %q in %s", dropped, field, key)
	return out
}
