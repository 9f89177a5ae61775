package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fourone/pos/internal/client/data"
	"github.com/fourone/pos/pkg/api"
)

func (c *Cli) runSale(ctx context.Context) error {
	c.io.Println("=== New Sale ===")
	c.io.Println()

	products, _, err := c.data.Products(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	if len(products) == 0 {
		return fmt.Errorf("no products available; sync the catalog first")
	}

	byID := make(map[string]api.Product, len(products))
	for i, p := range products {
		byID[p.ID] = p
		c.io.Printf("%2d. %-24s %s\n", i+1, p.Name, formatCents(p.PriceCents))
	}
	c.io.Println()
	c.io.Println("Enter lines as '<number> <quantity>', empty line to finish.")

	var items []api.SaleItem
	for {
		line, err := c.io.ReadInput("> ")
		if err != nil {
			return fmt.Errorf("failed to read sale line: %w", err)
		}
		if line == "" {
			break
		}

		item, err := parseSaleLine(line, products)
		if err != nil {
			c.io.Printf("  %v\n", err)
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return fmt.Errorf("sale cancelled, no items entered")
	}

	taxType, err := c.defaultTaxType(ctx)
	if err != nil {
		return err
	}

	sale, queued, err := c.data.CreateSale(ctx, data.SaleDraft{Items: items, TaxType: taxType})
	if err != nil {
		return fmt.Errorf("failed to record sale: %w", err)
	}

	c.io.Println()
	for _, item := range sale.Items {
		c.io.Printf("%-24s x%-3d %10s\n", item.Name, item.Quantity,
			formatCents(item.Quantity*item.UnitPriceCents))
	}
	c.io.Printf("%-29s %10s\n", "Subtotal", formatCents(sale.SubtotalCents))
	c.io.Printf("%-29s %10s\n", taxType.Name, formatCents(sale.TaxCents))
	c.io.Printf("%-29s %10s\n", "TOTAL", formatCents(sale.TotalCents))
	c.io.Println()

	if queued {
		c.io.Printf("Sale %s recorded offline; it will sync when the server is reachable.\n", sale.ID)
	} else {
		c.io.Printf("Sale %s recorded.\n", sale.ID)
	}

	return nil
}

func parseSaleLine(line string, products []api.Product) (api.SaleItem, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return api.SaleItem{}, fmt.Errorf("expected '<number> <quantity>'")
	}

	index, err := strconv.Atoi(fields[0])
	if err != nil || index < 1 || index > len(products) {
		return api.SaleItem{}, fmt.Errorf("no product number %s", fields[0])
	}

	quantity, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || quantity <= 0 {
		return api.SaleItem{}, fmt.Errorf("quantity must be a positive number")
	}

	product := products[index-1]
	return api.SaleItem{
		ProductID:      product.ID,
		Name:           product.Name,
		Quantity:       quantity,
		UnitPriceCents: product.PriceCents,
	}, nil
}

// defaultTaxType picks the rate flagged as default, falling back to the
// first configured one.
func (c *Cli) defaultTaxType(ctx context.Context) (api.TaxType, error) {
	taxTypes, _, err := c.data.TaxTypes(ctx)
	if err != nil {
		return api.TaxType{}, fmt.Errorf("failed to load tax types: %w", err)
	}
	if len(taxTypes) == 0 {
		return api.TaxType{}, fmt.Errorf("no tax types configured")
	}

	for _, tt := range taxTypes {
		if tt.Default {
			return tt, nil
		}
	}
	return taxTypes[0], nil
}
