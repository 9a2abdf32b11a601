package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Text writes the quotation as plain text for copy and paste.
func Text(w io.Writer, d Document) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", d.Business.LegalName)
	for _, line := range []string{d.Business.Phone, d.Business.Email, d.Business.Website} {
		if line != "" {
			fmt.Fprintf(&b, "%s\n", line)
		}
	}
	if d.Business.ABN != "" {
		fmt.Fprintf(&b, "ABN %s\n", d.Business.ABN)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Quote No: %s\n", d.QuoteNumber)
	fmt.Fprintf(&b, "Date: %s\n", d.FormattedDate())
	fmt.Fprintf(&b, "Name: %s\n", d.Customer.Name)
	fmt.Fprintf(&b, "Add: %s\n", d.Customer.Address)
	fmt.Fprintf(&b, "Phone: %s\n", d.Customer.Phone)
	fmt.Fprintf(&b, "Email: %s\n\n", d.CustomerEmail())

	fmt.Fprintf(&b, "%s\n\n", Title)

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	header := "#\tLOCATION\tTYPE\tRECESS/FACE FIT\tFABRIC\tBO/SCREEN"
	if d.Internal() {
		header += "\tWIDTH\tDROP"
	}
	fmt.Fprintln(tw, header+"\tQTY\tPRICE")
	for _, r := range d.Rows() {
		line := fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s", r.Number, r.Location, r.Product, r.Mounting, r.Fabric, r.Shade)
		if d.Internal() {
			line += "\t" + r.Width + "\t" + r.Drop
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", line, r.Quantity, r.Price)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("render items table: %w", err)
	}
	b.WriteString("\n")

	tw = tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, t := range d.TotalLines() {
		fmt.Fprintf(tw, "%s:\t%s\t\n", t.Label, t.Amount)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("render totals: %w", err)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Account Name: %s\n", d.Business.AccountName)
	fmt.Fprintf(&b, "BSB: %s / Account number: %s\n", d.Business.BSB, d.Business.AccountNumber)

	if terms := d.Business.TermLines(); len(terms) > 0 {
		b.WriteString("\nAdditional information / terms and conditions\n")
		for _, t := range terms {
			if t.Label == "" {
				fmt.Fprintf(&b, "- %s\n", t.Value)
				continue
			}
			fmt.Fprintf(&b, "- %s: %s\n", t.Label, t.Value)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write quotation text: %w", err)
	}
	return nil
}
