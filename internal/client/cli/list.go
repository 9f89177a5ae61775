package cli

import (
	"context"
	"fmt"

	"github.com/fourone/pos/internal/client/gateway"
)

func (c *Cli) runList(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: pos-client list <products|categories|tables|customers|tax-types|sales>")
	}

	var source gateway.Source
	var err error

	switch args[0] {
	case "products":
		source, err = c.listProducts(ctx)
	case "categories":
		source, err = c.listCategories(ctx)
	case "tables":
		source, err = c.listTables(ctx)
	case "customers":
		source, err = c.listCustomers(ctx)
	case "tax-types":
		source, err = c.listTaxTypes(ctx)
	case "sales":
		source, err = c.listSales(ctx)
	default:
		return fmt.Errorf("unknown entity %q", args[0])
	}
	if err != nil {
		return err
	}

	if source == gateway.SourceCache {
		c.io.Println()
		c.io.Println("(served from the local snapshot, server unreachable)")
	}

	return nil
}

func (c *Cli) listProducts(ctx context.Context) (gateway.Source, error) {
	products, source, err := c.data.Products(ctx)
	if err != nil {
		return source, err
	}

	c.io.Printf("%-38s %-24s %10s  %s\n", "ID", "NAME", "PRICE", "ACTIVE")
	for _, p := range products {
		c.io.Printf("%-38s %-24s %10s  %v\n", p.ID, p.Name, formatCents(p.PriceCents), p.Active)
	}
	return source, nil
}

func (c *Cli) listCategories(ctx context.Context) (gateway.Source, error) {
	categories, source, err := c.data.Categories(ctx)
	if err != nil {
		return source, err
	}

	c.io.Printf("%-38s %s\n", "ID", "NAME")
	for _, cat := range categories {
		c.io.Printf("%-38s %s\n", cat.ID, cat.Name)
	}
	return source, nil
}

func (c *Cli) listTables(ctx context.Context) (gateway.Source, error) {
	tables, source, err := c.data.Tables(ctx)
	if err != nil {
		return source, err
	}

	c.io.Printf("%-38s %-16s %-10s %s\n", "ID", "NAME", "STATUS", "SEATS")
	for _, table := range tables {
		c.io.Printf("%-38s %-16s %-10s %d\n", table.ID, table.Name, table.Status, table.Seats)
	}
	return source, nil
}

func (c *Cli) listCustomers(ctx context.Context) (gateway.Source, error) {
	customers, source, err := c.data.Customers(ctx)
	if err != nil {
		return source, err
	}

	c.io.Printf("%-38s %-24s %s\n", "ID", "NAME", "TAX ID")
	for _, cust := range customers {
		c.io.Printf("%-38s %-24s %s\n", cust.ID, cust.Name, cust.TaxID)
	}
	return source, nil
}

func (c *Cli) listTaxTypes(ctx context.Context) (gateway.Source, error) {
	taxTypes, source, err := c.data.TaxTypes(ctx)
	if err != nil {
		return source, err
	}

	c.io.Printf("%-38s %-16s %8s  %s\n", "ID", "NAME", "RATE", "DEFAULT")
	for _, tt := range taxTypes {
		c.io.Printf("%-38s %-16s %7.2f%%  %v\n", tt.ID, tt.Name, float64(tt.RateBasisPoints)/100, tt.Default)
	}
	return source, nil
}

func (c *Cli) listSales(ctx context.Context) (gateway.Source, error) {
	sales, source, err := c.data.Sales(ctx)
	if err != nil {
		return source, err
	}

	c.io.Printf("%-38s %-20s %10s  %-12s %s\n", "ID", "CREATED", "TOTAL", "STATUS", "SYNC")
	for _, sale := range sales {
		syncState := "synced"
		if sale.PendingSync {
			syncState = "pending"
		}
		c.io.Printf("%-38s %-20s %10s  %-12s %s\n",
			sale.ID,
			sale.CreatedAt.Format("2006-01-02 15:04:05"),
			formatCents(sale.TotalCents),
			sale.Status,
			syncState,
		)
	}
	return source, nil
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
