package billing

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	colorPrimary = &props.Color{Red: 25, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// RenderPDF lays b out on an A4 page and returns the document bytes.
func RenderPDF(b *Bill) ([]byte, error) {
	author := "posadmin"
	if b.Company != nil && b.Company.CompanyName != "" {
		author = b.Company.CompanyName
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Bill "+b.SaleID.String(), true).
		WithAuthor(author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(letterheadRow(b))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(saleRow(b))
	m.AddRows(tableHeaderRow())
	m.AddRows(lineRows(b.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(b)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render bill: %w", err)
	}
	return doc.GetBytes(), nil
}

func letterheadRow(b *Bill) core.Row {
	if b.Company == nil {
		return row.New(10).Add(col.New(12).Add(
			text.New("No company data found.", props.Text{Size: 10, Color: colorGray, Top: 2}),
		))
	}
	c := b.Company
	return row.New(22).Add(
		col.New(12).Add(
			text.New(c.CompanyName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(c.CompanyAddress, props.Text{Size: 9, Top: 8, Color: colorGray}),
			text.New(fmt.Sprintf("Contact: %s   |   Email: %s", nonEmpty(c.CompanyContact, "-"), nonEmpty(c.CompanyEmail, "-")),
				props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
	)
}

func saleRow(b *Bill) core.Row {
	return row.New(12).Add(
		col.New(6).Add(text.New("Bill #"+b.SaleID.String(), props.Text{Style: fontstyle.Bold, Size: 11, Top: 3})),
		col.New(6).Add(text.New(fmt.Sprintf("Date: %s | Payment: %s", b.Date, b.PaymentMethod),
			props.Text{Size: 9, Align: align.Right, Top: 4})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Product", 6, align.Left),
		h("Qty", 2, align.Center),
		h("Price", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func lineRows(lines []Line) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(7).Add(
			col.New(6).Add(text.New(l.ProductName, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(l.Qty.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(l.Price.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(l.Total.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

func totalsRows(b *Bill) []core.Row {
	pair := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		return row.New(6).Add(
			col.New(8),
			col.New(2).Add(text.New(label, props.Text{Style: style, Size: 9, Align: align.Right})),
			col.New(2).Add(text.New(value, props.Text{Style: style, Size: 9, Align: align.Right})),
		)
	}

	rows := []core.Row{
		pair("Subtotal:", b.Subtotal().StringFixed(2), false),
		pair("Discount:", b.DiscountPercentage.String()+"%", false),
	}
	if !b.DiscountAmt.IsZero() {
		rows = append(rows, pair("Discount amount:", b.DiscountAmt.StringFixed(2), false))
	}
	rows = append(rows,
		pair("Tax:", b.TaxName, false),
		pair("Total:", b.Total.StringFixed(2), true),
	)
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
