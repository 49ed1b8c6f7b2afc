package entity

import "slices"

// Field names one top-level member of a Dataset, as it appears on the wire.
type Field string

const (
	FieldProducts           Field = "products"
	FieldWigs               Field = "wigs"
	FieldPastries           Field = "pastries"
	FieldSales              Field = "sales"
	FieldCustomers          Field = "customers"
	FieldOrders             Field = "orders"
	FieldDebts              Field = "debts"
	FieldInvoices           Field = "invoices"
	FieldShowcase           Field = "showcase"
	FieldCompanyStory       Field = "companyStory"
	FieldTestimonials       Field = "testimonials"
	FieldAdvertisingPhrases Field = "advertisingPhrases"
	FieldUser               Field = "user"
)

// Fields lists every Dataset member in wire order.
var Fields = []Field{
	FieldProducts,
	FieldWigs,
	FieldPastries,
	FieldSales,
	FieldCustomers,
	FieldOrders,
	FieldDebts,
	FieldInvoices,
	FieldShowcase,
	FieldCompanyStory,
	FieldTestimonials,
	FieldAdvertisingPhrases,
	FieldUser,
}

// Valid reports whether f is one of the Dataset members.
func (f Field) Valid() bool {
	return slices.Contains(Fields, f)
}

// Dataset is the whole operational dataset persisted for one tenant.
type Dataset struct {
	Products           []Product           `json:"products"`
	Wigs               []Wig               `json:"wigs"`
	Pastries           []Pastry            `json:"pastries"`
	Sales              []Sale              `json:"sales"`
	Customers          []Customer          `json:"customers"`
	Orders             []Order             `json:"orders"`
	Debts              []Debt              `json:"debts"`
	Invoices           []Invoice           `json:"invoices"`
	Showcase           []ShowcaseItem      `json:"showcase"`
	CompanyStory       []StorySection      `json:"companyStory"`
	Testimonials       []Testimonial       `json:"testimonials"`
	AdvertisingPhrases []AdvertisingPhrase `json:"advertisingPhrases"`
	User               User                `json:"user"`
}

// Clone returns a deep copy; mutating it never reaches d.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Products:           cloneSlice(d.Products),
		Wigs:               cloneSlice(d.Wigs),
		Pastries:           cloneSlice(d.Pastries),
		Customers:          cloneSlice(d.Customers),
		Debts:              cloneSlice(d.Debts),
		Showcase:           cloneSlice(d.Showcase),
		CompanyStory:       cloneSlice(d.CompanyStory),
		Testimonials:       cloneSlice(d.Testimonials),
		AdvertisingPhrases: cloneSlice(d.AdvertisingPhrases),
		User:               d.User,
	}

	out.Sales = cloneSlice(d.Sales)
	for i := range out.Sales {
		out.Sales[i].Items = cloneSlice(out.Sales[i].Items)
	}
	out.Invoices = cloneSlice(d.Invoices)
	for i := range out.Invoices {
		out.Invoices[i].Items = cloneSlice(out.Invoices[i].Items)
	}
	out.Orders = cloneSlice(d.Orders)
	for i := range out.Orders {
		out.Orders[i].Items = cloneSlice(out.Orders[i].Items)
	}
	return out
}

// PublishedShowcase returns the showcase items visible to anonymous visitors.
func (d *Dataset) PublishedShowcase() []ShowcaseItem {
	out := make([]ShowcaseItem, 0, len(d.Showcase))
	for _, item := range d.Showcase {
		if item.Published {
			out = append(out, item)
		}
	}
	return out
}

// cloneSlice keeps nil as nil and empty as empty so clones compare equal.
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
