// services/shop.go
package services

import "os"

// Shop identity used in outgoing messages and on the quote document.
// Overridable per deployment, with the store's defaults baked in.

func shopName() string    { return envOr("SHOP_NAME", "Negozio Cucine") }
func shopAddress() string { return envOr("SHOP_ADDRESS", "Via Example 123, 00100 Roma") }
func shopPhone() string   { return envOr("SHOP_PHONE", "+39 123 456 7890") }
func shopEmail() string   { return envOr("SHOP_EMAIL", "info@negoziocucine.it") }
func shopVAT() string     { return envOr("SHOP_VAT", "12345678900") }

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
