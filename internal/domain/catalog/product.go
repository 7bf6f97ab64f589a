package catalog

// Product is read-only reference data used to resolve an order line's
// product fields.
type Product struct {
	ID   string
	Name string
	SKU  string
	Unit string
}
