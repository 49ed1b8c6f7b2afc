// Package keyspace derives the storage keys used by the console.
//
// Layout:
//
//	business-data:<sanitized-tenant-id>   one dataset per tenant
//	business-data-anonymous               read-only fallback when no tenant is known
//	business-profile                      the single profile record
//	showcase-cart                         the visitor cart
//	tour-shown                            onboarding flag
//
// Sanitizing lowercases the id and replaces every rune outside [a-z0-9]
// with '_', so "Acme Co" and "acme_co" share a key.
package keyspace

import "strings"

const (
	TenantPrefix = "business-data:"
	AnonymousKey = "business-data-anonymous"
	ProfileKey   = "business-profile"
	CartKey      = "showcase-cart"
	TourKey      = "tour-shown"
)

// TenantKey returns the dataset key for tenantID, or AnonymousKey when it is empty.
func TenantKey(tenantID string) string {
	if IsAnonymous(tenantID) {
		return AnonymousKey
	}
	return TenantPrefix + Sanitize(tenantID)
}

// IsAnonymous reports whether tenantID falls back to the anonymous namespace.
func IsAnonymous(tenantID string) bool {
	return tenantID == ""
}

// Sanitize lowercases id and maps every rune outside [a-z0-9] to '_'.
func Sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, strings.ToLower(id))
}
