package render

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Quotation"

// XLSX renders the quotation as a single-sheet workbook. Amounts are written as numbers so
// the sheet can be summed.
func XLSX(d Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headers := []string{"#", "Location", "Type", "Recess / Face fit", "Fabric", "Blockout/Screen"}
	widths := []float64{5, 22, 18, 16, 10, 16}
	if d.Internal() {
		headers = append(headers, "Width mm", "Width band", "Drop mm", "Drop band")
		widths = append(widths, 10, 11, 10, 11)
	}
	headers = append(headers, "Qty", "Unit price", "Price")
	widths = append(widths, 6, 12, 12)

	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, w); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16, Color: "#7C3AED"}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F3F4F6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyFmt := "$#,##0.00"
	rowStyle, err := f.NewStyle(&excelize.Style{Border: thinBorders()})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{Border: thinBorders(), CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	set := func(cell string, v any) {
		_ = f.SetCellValue(sheetName, cell, v)
	}
	set("A1", Title)
	_ = f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	meta := [][2]string{
		{"Quote No", d.QuoteNumber},
		{"Date", d.FormattedDate()},
		{"Name", sanitizeCell(d.Customer.Name)},
		{"Address", sanitizeCell(d.Customer.Address)},
		{"Phone", sanitizeCell(d.Customer.Phone)},
		{"Email", sanitizeCell(d.CustomerEmail())},
	}
	for i, kv := range meta {
		r := i + 2
		set(fmt.Sprintf("A%d", r), kv[0])
		set(fmt.Sprintf("C%d", r), kv[1])
	}

	headerRow := len(meta) + 3
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		set(cell, h)
	}
	_ = f.SetCellStyle(sheetName, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle)

	r := headerRow + 1
	for i, item := range d.Items {
		values := []any{
			i + 1,
			sanitizeCell(item.Location),
			item.Product,
			string(item.Mounting),
			"Group " + item.Group.String(),
			shade(item.Category),
		}
		if d.Internal() {
			values = append(values, item.Width, item.WidthBand, item.Drop, item.DropBand)
		}
		values = append(values, item.Quantity, item.UnitPrice, item.TotalPrice)

		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r)
			set(cell, v)
		}
		_ = f.SetCellStyle(sheetName, fmt.Sprintf("A%d", r), fmt.Sprintf("%s%d", lastCol, r), rowStyle)
		unitCol, _ := excelize.ColumnNumberToName(len(headers) - 1)
		_ = f.SetCellStyle(sheetName, fmt.Sprintf("%s%d", unitCol, r), fmt.Sprintf("%s%d", lastCol, r), moneyStyle)
		r++
	}

	r++
	labelCol, _ := excelize.ColumnNumberToName(len(headers) - 1)
	totals := []struct {
		label  string
		amount float64
	}{
		{"Total", d.Totals.Subtotal},
		{"GST 10%", d.Totals.GST},
		{"Total Payable", d.Totals.Total},
		{"50% Deposit", d.Totals.Deposit},
		{"Balance Payable", d.Totals.Balance},
	}
	for _, t := range totals {
		set(fmt.Sprintf("%s%d", labelCol, r), t.label)
		set(fmt.Sprintf("%s%d", lastCol, r), t.amount)
		_ = f.SetCellStyle(sheetName, fmt.Sprintf("%s%d", lastCol, r), fmt.Sprintf("%s%d", lastCol, r), totalStyle)
		r++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write quotation xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeCell stops spreadsheet apps from reading customer text as a formula.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
