// Package billing assembles a printable bill for a recorded sale and renders
// it as plain text or PDF.
package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/posadmin/internal/client/models"
	"github.com/dmitrijs2005/posadmin/internal/client/repositories"
	"github.com/shopspring/decimal"
)

const (
	UnknownProduct = "Unknown Product"
	UnknownTax     = "Unknown Tax"
)

var ErrSaleNotFound = errors.New("sale not found")

// Line is one product row of a bill.
type Line struct {
	ProductID   models.ID
	ProductName string
	Qty         decimal.Decimal
	Price       decimal.Decimal
	Total       decimal.Decimal
}

// Bill is a sale with every id resolved to a display name. Company is the
// letterhead and may be nil.
type Bill struct {
	SaleID             models.ID
	Date               string
	PaymentMethod      string
	Company            *models.Company
	Lines              []Line
	DiscountAmt        decimal.Decimal
	DiscountPercentage decimal.Decimal
	TaxName            string
	Total              decimal.Decimal
}

// Lister is the read side of a repository.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Builder gathers the collections a bill draws on.
type Builder struct {
	sales     Lister[models.Sale]
	products  Lister[models.Product]
	taxes     Lister[models.Tax]
	companies Lister[models.Company]
}

func NewBuilder(sales Lister[models.Sale], products Lister[models.Product], taxes Lister[models.Tax], companies Lister[models.Company]) *Builder {
	return &Builder{sales: sales, products: products, taxes: taxes, companies: companies}
}

// FromSet wires a Builder to the repositories in set.
func FromSet(set *repositories.Set) *Builder {
	return NewBuilder(set.Sales, set.Products, set.Taxes, set.Companies)
}

// Build fetches the sale and its references and resolves names. Totals are
// the ones the server stored; a line without one falls back to qty x price.
func (b *Builder) Build(ctx context.Context, saleID models.ID) (*Bill, error) {
	sales, err := b.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	sale, ok := find(sales, func(s models.Sale) bool { return s.SaleID == saleID })
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSaleNotFound, saleID)
	}

	products, err := b.products.List(ctx)
	if err != nil {
		return nil, err
	}
	taxes, err := b.taxes.List(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := b.companies.List(ctx)
	if err != nil {
		return nil, err
	}

	bill := &Bill{
		SaleID:             sale.SaleID,
		Date:               sale.SalesDate,
		PaymentMethod:      sale.PaymentMethod,
		DiscountAmt:        sale.DiscountAmt.Decimal,
		DiscountPercentage: sale.DiscountPercentage.Decimal,
		TaxName:            taxName(taxes, sale.Tax),
		Total:              sale.Total.Decimal,
		Lines:              make([]Line, 0, len(sale.Products)),
	}
	if len(companies) > 0 {
		c := companies[0]
		bill.Company = &c
	}

	for _, p := range sale.Products {
		bill.Lines = append(bill.Lines, Line{
			ProductID:   p.ProductID,
			ProductName: productName(products, p.ProductID),
			Qty:         p.Qty.Decimal,
			Price:       p.Price.Decimal,
			Total:       lineTotal(p),
		})
	}
	return bill, nil
}

// Subtotal sums the line totals.
func (b *Bill) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range b.Lines {
		sum = sum.Add(l.Total)
	}
	return sum
}

func lineTotal(p models.SaleLine) decimal.Decimal {
	if !p.Total.IsZero() {
		return p.Total.Decimal
	}
	return p.Qty.Mul(p.Price.Decimal)
}

func productName(products []models.Product, id models.ID) string {
	if p, ok := find(products, func(p models.Product) bool { return p.ProductID == id }); ok {
		return p.ProductName
	}
	return UnknownProduct
}

func taxName(taxes []models.Tax, id models.ID) string {
	if t, ok := find(taxes, func(t models.Tax) bool { return t.TaxID == id }); ok {
		return t.TaxName
	}
	return UnknownTax
}

func find[T any](items []T, match func(T) bool) (T, bool) {
	for _, it := range items {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}
