package pricing

import (
	"github.com/shopspring/decimal"
)

var (
	gstRate     = decimal.NewFromFloat(GSTRate)
	depositRate = decimal.NewFromFloat(DepositRate)
)

// Line is anything that contributes a line total to a quotation.
type Line interface {
	LineTotal() float64
}

// Amount is a bare line total.
type Amount float64

func (a Amount) LineTotal() float64 { return float64(a) }

// Totals contains roll-up values for a quotation, each rounded to the cent.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	GST      float64 `json:"gst"`
	Total    float64 `json:"total"`
	Deposit  float64 `json:"deposit"`
	Balance  float64 `json:"balance"`
}

// ComputeTotals sums the line totals and derives GST, grand total, deposit and balance.
// Line totals that are negative or not finite count as zero. Rounding happens once per
// output, after the arithmetic; the balance is the rounded total minus the rounded deposit
// so that the two always add back to the total.
func ComputeTotals[L Line](items []L) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		v := item.LineTotal()
		if !finite(v) || v < 0 {
			continue
		}
		subtotal = subtotal.Add(decimal.NewFromFloat(v))
	}

	gst := subtotal.Mul(gstRate)
	total := subtotal.Add(gst)
	deposit := total.Mul(depositRate)

	roundedTotal := total.Round(2)
	roundedDeposit := deposit.Round(2)

	return Totals{
		Subtotal: subtotal.Round(2).InexactFloat64(),
		GST:      gst.Round(2).InexactFloat64(),
		Total:    roundedTotal.InexactFloat64(),
		Deposit:  roundedDeposit.InexactFloat64(),
		Balance:  roundedTotal.Sub(roundedDeposit).InexactFloat64(),
	}
}
