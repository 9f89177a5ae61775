// Package storage defines the durable local store the offline engine is
// built on: one snapshot store per entity kind, the pending-operation
// queue, and a small settings store. Implementations live in subpackages
// (boltdb).
package storage

// EntityKind names one locally cached collection of server records.
type EntityKind string

const (
	KindProducts   EntityKind = "products"
	KindCategories EntityKind = "categories"
	KindTables     EntityKind = "tables"
	KindCustomers  EntityKind = "customers"
	KindTaxTypes   EntityKind = "tax_types"
	KindSales      EntityKind = "sales"
	KindUsers      EntityKind = "users"
)

// AllKinds lists every entity kind with its own local store.
func AllKinds() []EntityKind {
	return []EntityKind{
		KindProducts,
		KindCategories,
		KindTables,
		KindCustomers,
		KindTaxTypes,
		KindSales,
		KindUsers,
	}
}
