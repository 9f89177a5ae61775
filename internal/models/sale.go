// Package models holds domain logic shared by the client and the server:
// sale total arithmetic and helpers for working with raw JSON records and
// offline-assigned identifiers.
package models

import (
	"errors"
	"fmt"

	"github.com/fourone/pos/pkg/api"
)

// Sale validation errors.
var (
	ErrNoItems        = errors.New("sale has no items")
	ErrBadQuantity    = errors.New("sale item quantity must be positive")
	ErrBadUnitPrice   = errors.New("sale item unit price must not be negative")
	ErrTotalsMismatch = errors.New("sale totals do not match items and tax rate")
)

// SaleTotals holds the computed money amounts of a sale in integer cents.
type SaleTotals struct {
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
}

// ComputeTotals derives the sale totals from its line items and a tax rate
// expressed in basis points (18% = 1800). Tax is rounded half up to the
// nearest cent.
func ComputeTotals(items []api.SaleItem, rateBasisPoints int64) (SaleTotals, error) {
	if len(items) == 0 {
		return SaleTotals{}, ErrNoItems
	}

	var subtotal int64
	for i, item := range items {
		if item.Quantity <= 0 {
			return SaleTotals{}, fmt.Errorf("item %d: %w", i, ErrBadQuantity)
		}
		if item.UnitPriceCents < 0 {
			return SaleTotals{}, fmt.Errorf("item %d: %w", i, ErrBadUnitPrice)
		}
		subtotal += item.Quantity * item.UnitPriceCents
	}

	tax := (subtotal*rateBasisPoints + 5000) / 10000

	return SaleTotals{
		SubtotalCents: subtotal,
		TaxCents:      tax,
		TotalCents:    subtotal + tax,
	}, nil
}

// ValidateSale recomputes the totals of a submitted sale and checks them
// against the amounts the client claims. The server never trusts
// client-side arithmetic on replayed offline sales.
func ValidateSale(sale *api.Sale, rateBasisPoints int64) error {
	totals, err := ComputeTotals(sale.Items, rateBasisPoints)
	if err != nil {
		return err
	}

	if sale.SubtotalCents != totals.SubtotalCents ||
		sale.TaxCents != totals.TaxCents ||
		sale.TotalCents != totals.TotalCents {
		return fmt.Errorf("%w: got %d/%d/%d, want %d/%d/%d",
			ErrTotalsMismatch,
			sale.SubtotalCents, sale.TaxCents, sale.TotalCents,
			totals.SubtotalCents, totals.TaxCents, totals.TotalCents)
	}

	return nil
}
