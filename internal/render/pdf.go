package render

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
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
	brandColor  = &props.Color{Red: 124, Green: 58, Blue: 237}
	headerColor = &props.Color{Red: 243, Green: 244, Blue: 246}
	mutedColor  = &props.Color{Red: 80, Green: 80, Blue: 80}
)

// PDF renders the quotation as an A4 PDF.
func PDF(d Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   mutedColor,
		}).
		Build()

	m := maroto.New(cfg)

	addPDFHeader(m, d)
	addPDFItems(m, d)
	addPDFTotals(m, d)
	addPDFFooter(m, d)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate quotation pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addPDFHeader(m core.Maroto, d Document) {
	right := props.Text{Size: 9, Align: align.Right}
	left := props.Text{Size: 9, Align: align.Left}

	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(text.New(d.Business.TradingName, props.Text{Size: 16, Style: fontstyle.Bold, Color: brandColor})),
			col.New(6).Add(text.New(d.Business.LegalName, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right})),
		),
	)

	contact := []string{d.Business.Phone, d.Business.Email, d.Business.Facebook, d.Business.Website}
	if d.Business.ABN != "" {
		contact = append(contact, "ABN "+d.Business.ABN)
	}
	for _, line := range contact {
		if line == "" {
			continue
		}
		m.AddRows(row.New(5).Add(col.New(12).Add(text.New(line, right))))
	}

	m.AddRows(row.New(6))
	m.AddRows(
		row.New(5).Add(
			col.New(8).Add(text.New("Name: "+d.Customer.Name, left)),
			col.New(4).Add(text.New("Date: "+d.FormattedDate(), right)),
		),
		row.New(5).Add(
			col.New(8).Add(text.New("Add: "+d.Customer.Address, left)),
			col.New(4).Add(text.New("Quote No: "+d.QuoteNumber, right)),
		),
		row.New(5).Add(col.New(12).Add(text.New("Phone: "+d.Customer.Phone, left))),
		row.New(5).Add(col.New(12).Add(text.New("Email: "+d.CustomerEmail(), left))),
	)

	m.AddRows(row.New(4))
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(text.New(Title, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Center, Color: brandColor})),
		),
	)
}

type pdfColumn struct {
	title string
	size  int
	value func(Row) string
	align align.Type
}

func pdfColumns(internal bool) []pdfColumn {
	cols := []pdfColumn{
		{title: "#", size: 1, value: func(r Row) string { return fmt.Sprint(r.Number) }, align: align.Center},
		{title: "LOCATION", size: 2, value: func(r Row) string { return r.Location }, align: align.Left},
		{title: "TYPE", size: 2, value: func(r Row) string { return r.Product }, align: align.Left},
		{title: "MOUNT", size: 1, value: func(r Row) string { return r.Mounting }, align: align.Left},
		{title: "FABRIC", size: 1, value: func(r Row) string { return r.Fabric }, align: align.Left},
		{title: "BO/SCR", size: 1, value: func(r Row) string { return r.Shade }, align: align.Center},
	}
	if internal {
		cols = append(cols,
			pdfColumn{title: "WIDTH", size: 1, value: func(r Row) string { return pdfArrow(r.Width) }, align: align.Center},
			pdfColumn{title: "DROP", size: 1, value: func(r Row) string { return pdfArrow(r.Drop) }, align: align.Center},
		)
	}
	priceSize := 3
	if internal {
		priceSize = 1
	}
	return append(cols,
		pdfColumn{title: "QTY", size: 1, value: func(r Row) string { return fmt.Sprint(r.Quantity) }, align: align.Center},
		pdfColumn{title: "PRICE", size: priceSize, value: func(r Row) string { return r.Price }, align: align.Right},
	)
}

// The core PDF fonts have no arrow glyph.
func pdfArrow(s string) string {
	return strings.ReplaceAll(s, "→", ">")
}

func addPDFItems(m core.Maroto, d Document) {
	cols := pdfColumns(d.Internal())

	headerCell := &props.Cell{BackgroundColor: headerColor}
	header := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		header = append(header, col.New(c.size).Add(
			text.New(c.title, props.Text{Size: 7, Style: fontstyle.Bold, Align: c.align}),
		).WithStyle(headerCell))
	}
	m.AddRows(row.New(7).Add(header...))

	for _, r := range d.Rows() {
		cells := make([]core.Col, 0, len(cols))
		for _, c := range cols {
			cells = append(cells, col.New(c.size).Add(text.New(c.value(r), props.Text{Size: 7, Align: c.align})))
		}
		m.AddRows(row.New(6).Add(cells...))
	}
}

func addPDFTotals(m core.Maroto, d Document) {
	m.AddRows(row.New(6))

	cell := &props.Cell{BackgroundColor: headerColor}
	for _, t := range d.TotalLines() {
		style := fontstyle.Normal
		if t.Strong {
			style = fontstyle.Bold
		}
		m.AddRows(
			row.New(7).Add(
				col.New(8),
				col.New(2).Add(text.New(t.Label, props.Text{Size: 9, Style: style, Align: align.Right})).WithStyle(cell),
				col.New(2).Add(text.New(t.Amount, props.Text{Size: 9, Style: style, Align: align.Right})).WithStyle(cell),
			),
		)
	}
}

func addPDFFooter(m core.Maroto, d Document) {
	m.AddRows(row.New(6))
	bank := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center}
	m.AddRows(
		row.New(5).Add(col.New(12).Add(text.New("Account Name : "+d.Business.AccountName, bank))),
		row.New(5).Add(col.New(12).Add(text.New(
			fmt.Sprintf("BSB : %s / Account number : %s", d.Business.BSB, d.Business.AccountNumber), bank))),
	)

	terms := d.Business.TermLines()
	if len(terms) == 0 {
		return
	}
	m.AddRows(row.New(6))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Additional information / terms and conditions", props.Text{Size: 9, Style: fontstyle.Bold}),
	)))
	for _, t := range terms {
		m.AddRows(row.New(5).Add(
			col.New(4).Add(text.New(t.Label, props.Text{Size: 7, Style: fontstyle.Bold})),
			col.New(8).Add(text.New(t.Value, props.Text{Size: 7})),
		))
	}
}
