package billing

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteText renders b as an aligned plain-text bill.
func WriteText(w io.Writer, b *Bill) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if b.Company != nil {
		fmt.Fprintln(tw, b.Company.CompanyName)
		fmt.Fprintln(tw, b.Company.CompanyAddress)
		fmt.Fprintf(tw, "Contact: %s\n", b.Company.CompanyContact)
		fmt.Fprintf(tw, "Email: %s\n", b.Company.CompanyEmail)
	} else {
		fmt.Fprintln(tw, "No company data found.")
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Bill #%s\n", b.SaleID)
	fmt.Fprintf(tw, "Date: %s | Payment: %s\n", b.Date, b.PaymentMethod)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Product\tQty\tPrice\tTotal\t")
	for _, l := range b.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", l.ProductName, l.Qty, l.Price.StringFixed(2), l.Total.StringFixed(2))
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Subtotal\t\t\t%s\t\n", b.Subtotal().StringFixed(2))
	fmt.Fprintf(tw, "Discount\t\t\t%s%%\t\n", b.DiscountPercentage)
	if !b.DiscountAmt.IsZero() {
		fmt.Fprintf(tw, "Discount amount\t\t\t%s\t\n", b.DiscountAmt.StringFixed(2))
	}
	fmt.Fprintf(tw, "Tax\t\t\t%s\t\n", b.TaxName)
	fmt.Fprintf(tw, "Total\t\t\t%s\t\n", b.Total.StringFixed(2))

	return tw.Flush()
}
