// Package pricing turns measurements into catalogue prices and line totals into quotation totals.
package pricing

import (
	"errors"
	"math"

	"github.com/Simplici0/blindquote/internal/bands"
)

const (
	// GSTRate is the Australian goods and services tax applied to the subtotal.
	GSTRate = 0.10
	// DepositRate is the share of the grand total due on acceptance.
	DepositRate = 0.50
	// Currency is the only currency quotations are issued in.
	Currency = "AUD"
)

var (
	ErrInvalidMeasurement = errors.New("width and drop must be positive numbers")
	ErrInvalidGroup       = errors.New("pricing group must be 1, 2, 3 or 4")
	ErrPriceUnavailable   = errors.New("no listed price for this size")
)

// Reason explains why a Quote carries no price.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonInvalidMeasurement
	ReasonInvalidGroup
	ReasonNoPrice
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "ok"
	case ReasonInvalidMeasurement:
		return "invalid measurement"
	case ReasonInvalidGroup:
		return "invalid group"
	case ReasonNoPrice:
		return "no price"
	default:
		return "unknown"
	}
}

// Bands is the band pair a measurement was rounded to. Zero means the band could not be
// resolved.
type Bands struct {
	WidthBand int `json:"widthBand"`
	DropBand  int `json:"dropBand"`
}

// Resolved reports whether both bands were found.
func (b Bands) Resolved() bool {
	return b.WidthBand > 0 && b.DropBand > 0
}

// Quote is the outcome of pricing a single blind.
type Quote struct {
	Bands
	UnitPrice float64
	Reason    Reason
}

// OK reports whether the quote carries a usable price.
func (q Quote) OK() bool {
	return q.Reason == ReasonNone && q.UnitPrice > 0
}

// Err maps the failure reason to a package error. It returns nil for a priced quote.
func (q Quote) Err() error {
	switch q.Reason {
	case ReasonNone:
		return nil
	case ReasonInvalidMeasurement:
		return ErrInvalidMeasurement
	case ReasonInvalidGroup:
		return ErrInvalidGroup
	default:
		return ErrPriceUnavailable
	}
}

// Price resolves bands and the unit price for (width, drop, group).
func Price(width, drop float64, group bands.Group) Quote {
	table, ok := bands.TableFor(group)
	if !ok {
		return Quote{Reason: ReasonInvalidGroup}
	}
	if !validMeasurement(width) || !validMeasurement(drop) {
		return Quote{Reason: ReasonInvalidMeasurement}
	}

	widthBand, err := table.ResolveWidth(width)
	if err != nil {
		return Quote{Reason: ReasonInvalidMeasurement}
	}
	dropBand, err := table.ResolveDrop(drop)
	if err != nil {
		return Quote{Reason: ReasonInvalidMeasurement}
	}

	q := Quote{Bands: Bands{WidthBand: widthBand, DropBand: dropBand}}
	cell, ok := table.Cell(table.DropIndex(dropBand), table.WidthIndex(widthBand))
	if !ok || !(cell > 0) {
		q.Reason = ReasonNoPrice
		return q
	}
	q.UnitPrice = cell
	return q
}

// LookupUnitPrice returns the catalogue unit price, or 0 when no price is available for the
// inputs. Zero is never a listed price.
func LookupUnitPrice(width, drop float64, group bands.Group) float64 {
	q := Price(width, drop, group)
	if !q.OK() {
		return 0
	}
	return q.UnitPrice
}

// ResolveBands returns the band pair used for display. It is independent of whether the
// table lists a price for the pair; unresolvable inputs yield zero bands.
func ResolveBands(width, drop float64, group bands.Group) Bands {
	table, ok := bands.TableFor(group)
	if !ok {
		return Bands{}
	}
	widthBand, werr := table.ResolveWidth(width)
	dropBand, derr := table.ResolveDrop(drop)
	if werr != nil || derr != nil {
		return Bands{}
	}
	return Bands{WidthBand: widthBand, DropBand: dropBand}
}

// ItemTotal is unitPrice × quantity, or 0 for a negative price or a quantity below one.
func ItemTotal(unitPrice float64, quantity int) float64 {
	if !finite(unitPrice) || unitPrice < 0 || quantity < 1 {
		return 0
	}
	return unitPrice * float64(quantity)
}

func validMeasurement(v float64) bool {
	return finite(v) && v > 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
