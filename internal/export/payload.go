// Package export builds the quotation payload consumed by downstream automation and posts it
// to the configured webhook.
package export

import (
	"time"

	"github.com/Simplici0/blindquote/internal/pricing"
	"github.com/Simplici0/blindquote/internal/quote"
)

// Payload is the wire format posted to the webhook. Field names are fixed.
type Payload struct {
	QuoteNumber string         `json:"quoteNumber"`
	Date        string         `json:"date"`
	Customer    Customer       `json:"customer"`
	Items       []Item         `json:"items"`
	Totals      pricing.Totals `json:"totals"`
	Metadata    Metadata       `json:"metadata"`
}

// Customer is the customer block. A missing e-mail is sent as null.
type Customer struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email"`
}

// Item is one quoted blind.
type Item struct {
	Location   string  `json:"location"`
	Product    string  `json:"product"`
	Category   string  `json:"category"`
	Group      string  `json:"group"`
	Recess     string  `json:"recess"`
	Width      float64 `json:"width"`
	Drop       float64 `json:"drop"`
	WidthBand  int     `json:"widthBand"`
	DropBand   int     `json:"dropBand"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

// Metadata carries the fixed commercial constants.
type Metadata struct {
	Currency    string  `json:"currency"`
	GSTRate     float64 `json:"gstRate"`
	DepositRate float64 `json:"depositRate"`
}

// NewPayload builds the payload for a quotation sent at now.
func NewPayload(c quote.Customer, items []quote.LineItem, totals pricing.Totals, quoteNumber string, now time.Time) Payload {
	var email *string
	if c.Email != "" {
		e := c.Email
		email = &e
	}

	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, Item{
			Location:   it.Location,
			Product:    it.Product,
			Category:   it.Category,
			Group:      it.Group.String(),
			Recess:     string(it.Mounting),
			Width:      it.Width,
			Drop:       it.Drop,
			WidthBand:  it.WidthBand,
			DropBand:   it.DropBand,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}

	return Payload{
		QuoteNumber: quoteNumber,
		Date:        now.UTC().Format(time.RFC3339),
		Customer: Customer{
			Name:    c.Name,
			Address: c.Address,
			Phone:   c.Phone,
			Email:   email,
		},
		Items:  out,
		Totals: totals,
		Metadata: Metadata{
			Currency:    pricing.Currency,
			GSTRate:     pricing.GSTRate,
			DepositRate: pricing.DepositRate,
		},
	}
}

// FromState builds the payload for the session's current quotation.
func FromState(s quote.State, now time.Time) Payload {
	return NewPayload(s.Customer, s.Items, quote.Totals(s.Items), s.QuoteNumber, now)
}
