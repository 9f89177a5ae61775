// Package api contains the JSON wire types shared by the POS server and
// the offline-capable client. Every entity id is a string UUID assigned by
// the server; records created while offline carry a temporary id with the
// "offline_" prefix until the sync processor reconciles them.
package api

import "time"

// Entity endpoint paths as exposed by the server.
const (
	PathProducts   = "/api/products"
	PathCategories = "/api/categories"
	PathTables     = "/api/tables"
	PathCustomers  = "/api/customers"
	PathTaxTypes   = "/api/tax-types"
	PathSales      = "/api/sales"
	PathUsers      = "/api/users"
)

// Product represents a sellable item.
type Product struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id,omitempty"`
	TaxTypeID  string `json:"tax_type_id,omitempty"`
	PriceCents int64  `json:"price_cents"`
	Active     bool   `json:"active"`
}

// Category groups products on the sell screen.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Table statuses used by the floor view.
const (
	TableStatusFree     = "free"
	TableStatusOccupied = "occupied"
	TableStatusReserved = "reserved"
)

// DiningTable represents a physical table on the restaurant floor.
type DiningTable struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Seats  int    `json:"seats"`
}

// Customer represents a registered buyer. TaxID holds the fiscal
// identifier (RNC/cedula) printed on fiscal receipts.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// TaxType represents a tax rate applied to sales. The rate is expressed
// in basis points (18% = 1800) so totals stay exact in integer cents.
type TaxType struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	RateBasisPoints int64  `json:"rate_basis_points"`
	Default         bool   `json:"default"`
}

// SaleItem is one line of a sale.
type SaleItem struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// Sale statuses.
const (
	SaleStatusCompleted   = "completed"
	SaleStatusPendingSync = "pending_sync"
	SaleStatusCancelled   = "cancelled"
)

// Sale represents one completed (or offline-pending) transaction.
type Sale struct {
	CreatedAt     time.Time  `json:"created_at"`
	ID            string     `json:"id"`
	TableID       string     `json:"table_id,omitempty"`
	CustomerID    string     `json:"customer_id,omitempty"`
	TaxTypeID     string     `json:"tax_type_id,omitempty"`
	Status        string     `json:"status"`
	Items         []SaleItem `json:"items"`
	SubtotalCents int64      `json:"subtotal_cents"`
	TaxCents      int64      `json:"tax_cents"`
	TotalCents    int64      `json:"total_cents"`
	PendingSync   bool       `json:"pending_sync,omitempty"`
}

// User represents a POS operator account. The password hash never leaves
// the server.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
