// Package render turns a quotation into the formats handed to customers: an HTML page, plain
// text, a PDF and a spreadsheet. Every format is built from the same Document.
package render

import (
	"regexp"
	"strconv"
	"time"

	"github.com/Simplici0/blindquote/internal/bands"
	"github.com/Simplici0/blindquote/internal/business"
	"github.com/Simplici0/blindquote/internal/pricing"
	"github.com/Simplici0/blindquote/internal/quote"
)

// Title is the heading printed above the items table.
const Title = "QUOTATION FOR ROLLER BLINDS"

const (
	dateLayout   = "02/01/2006"
	missingEmail = "xxx"
)

// Document is everything a rendered quotation shows.
type Document struct {
	Business    business.Profile
	Customer    quote.Customer
	Items       []quote.LineItem
	Totals      pricing.Totals
	QuoteNumber string
	Date        time.Time
	ViewMode    quote.ViewMode
}

// FromState builds a document for the current session. Totals are recomputed from the items.
func FromState(profile business.Profile, s quote.State, now time.Time) Document {
	return Document{
		Business:    profile,
		Customer:    s.Customer,
		Items:       s.Items,
		Totals:      quote.Totals(s.Items),
		QuoteNumber: s.QuoteNumber,
		Date:        now,
		ViewMode:    s.ViewMode,
	}
}

// Internal reports whether measurements and bands are shown.
func (d Document) Internal() bool {
	return d.ViewMode == quote.ViewInternal
}

// FormattedDate is the quotation date as dd/mm/yyyy.
func (d Document) FormattedDate() string {
	return d.Date.Format(dateLayout)
}

// CustomerEmail is the customer e-mail or a placeholder when none was given.
func (d Document) CustomerEmail() string {
	if d.Customer.Email == "" {
		return missingEmail
	}
	return d.Customer.Email
}

// Row is one line of the items table, already formatted.
type Row struct {
	Number   int
	Location string
	Product  string
	Mounting string
	Fabric   string
	Shade    string
	Width    string
	Drop     string
	Quantity int
	Price    string
}

// Rows formats the items table. Width and Drop are only filled for the internal view.
func (d Document) Rows() []Row {
	rows := make([]Row, 0, len(d.Items))
	for i, item := range d.Items {
		row := Row{
			Number:   i + 1,
			Location: item.Location,
			Product:  item.Product,
			Mounting: string(item.Mounting),
			Fabric:   "Group " + item.Group.String(),
			Shade:    shade(item.Category),
			Quantity: item.Quantity,
			Price:    pricing.FormatAUD(item.TotalPrice),
		}
		if d.Internal() {
			row.Width = measurement(item.Width) + "→" + strconv.Itoa(item.WidthBand)
			row.Drop = measurement(item.Drop) + "→" + strconv.Itoa(item.DropBand)
		}
		rows = append(rows, row)
	}
	return rows
}

// TotalLine is one line of the totals block.
type TotalLine struct {
	Label  string
	Amount string
	Strong bool
}

// TotalLines lists the totals block in print order.
func (d Document) TotalLines() []TotalLine {
	return []TotalLine{
		{Label: "Total", Amount: pricing.FormatAUD(d.Totals.Subtotal)},
		{Label: "GST 10%", Amount: pricing.FormatAUD(d.Totals.GST)},
		{Label: "Total Payable", Amount: pricing.FormatAUD(d.Totals.Total), Strong: true},
		{Label: "50% Deposit", Amount: pricing.FormatAUD(d.Totals.Deposit)},
		{Label: "Balance Payable", Amount: pricing.FormatAUD(d.Totals.Balance)},
	}
}

func shade(category string) string {
	if category == bands.CategoryScreen {
		return "SCREEN"
	}
	return "BO"
}

func measurement(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// FileName is the download name for a quotation without extension,
// e.g. Jo_Smith_Quote_QU123456.
func FileName(customerName, quoteNumber string) string {
	safe := unsafeFileChars.ReplaceAllString(customerName, "_")
	if safe == "" {
		safe = "Customer"
	}
	return safe + "_Quote_" + quoteNumber
}
