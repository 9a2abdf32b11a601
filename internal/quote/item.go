// Package quote holds the quoting session: who the quote is for, which blinds are on it and
// where the salesperson is in the flow.
package quote

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/Simplici0/blindquote/internal/bands"
	"github.com/Simplici0/blindquote/internal/pricing"
)

var (
	ErrLocationRequired   = errors.New("location is required")
	ErrUnknownProduct     = errors.New("unknown product")
	ErrCategoryNotAllowed = errors.New("category is not offered for this product")
	ErrGroupNotAllowed    = errors.New("group is not offered for this product")
	ErrInvalidMounting    = errors.New("mounting must be recess or face fit")
)

// Mounting is how the blind is fitted to the window.
type Mounting string

const (
	MountingRecess  Mounting = "Recess"
	MountingFaceFit Mounting = "Face fit"
)

// ParseMounting accepts the two mounting styles in any case. An empty value means face fit.
func ParseMounting(raw string) (Mounting, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return MountingFaceFit, nil
	case "recess", "recess fit":
		return MountingRecess, nil
	case "face fit", "face-fit", "facefit", "face":
		return MountingFaceFit, nil
	default:
		return "", ErrInvalidMounting
	}
}

// LineItem is one quoted blind. UnitPrice and TotalPrice are always derived from the
// measurements, group and quantity.
type LineItem struct {
	Location   string      `json:"location"`
	Product    string      `json:"product"`
	Category   string      `json:"category"`
	Group      bands.Group `json:"group"`
	Width      float64     `json:"width"`
	Drop       float64     `json:"drop"`
	WidthBand  int         `json:"widthBand"`
	DropBand   int         `json:"dropBand"`
	Quantity   int         `json:"quantity"`
	Mounting   Mounting    `json:"recess"`
	UnitPrice  float64     `json:"unitPrice"`
	TotalPrice float64     `json:"totalPrice"`
}

// LineTotal implements pricing.Line.
func (i LineItem) LineTotal() float64 {
	return i.TotalPrice
}

// ItemInput is the raw item form as typed by the salesperson.
type ItemInput struct {
	Location      string
	OtherLocation string
	Product       string
	Category      string
	Group         string
	Width         string
	Drop          string
	Quantity      string
	Mounting      string
}

// CoerceQuantity turns any raw quantity into a whole number of at least one.
func CoerceQuantity(raw string) int {
	v, err := cast.ToFloat64E(strings.TrimSpace(raw))
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 1 {
		return 1
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(v))
}

// ParseMeasurement reads a millimetre value. Unparseable input reads as zero, which pricing
// rejects.
func ParseMeasurement(raw string) float64 {
	v, err := cast.ToFloat64E(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return v
}

// ResolveLocation applies the free-text override for the "Other" choice.
func ResolveLocation(location, other string) (string, error) {
	location = strings.TrimSpace(location)
	if location == bands.LocationOther {
		location = strings.TrimSpace(other)
	}
	if location == "" {
		return "", ErrLocationRequired
	}
	return location, nil
}

// BuildItem validates the raw input and prices it. An item without a usable price is
// rejected with the pricing error; it never reaches the quotation with a zero price.
func BuildItem(in ItemInput) (LineItem, error) {
	location, err := ResolveLocation(in.Location, in.OtherLocation)
	if err != nil {
		return LineItem{}, err
	}

	product, ok := bands.LookupProduct(strings.TrimSpace(in.Product))
	if !ok {
		return LineItem{}, fmt.Errorf("%w: %q", ErrUnknownProduct, in.Product)
	}
	category := strings.TrimSpace(in.Category)
	if !product.AllowsCategory(category) {
		return LineItem{}, fmt.Errorf("%w: %q", ErrCategoryNotAllowed, category)
	}

	group, ok := bands.ParseGroup(in.Group)
	if !ok {
		return LineItem{}, pricing.ErrInvalidGroup
	}
	if !product.AllowsGroup(group) {
		return LineItem{}, fmt.Errorf("%w: group %d", ErrGroupNotAllowed, group)
	}

	mounting, err := ParseMounting(in.Mounting)
	if err != nil {
		return LineItem{}, err
	}

	width := ParseMeasurement(in.Width)
	drop := ParseMeasurement(in.Drop)
	quantity := CoerceQuantity(in.Quantity)

	q := pricing.Price(width, drop, group)
	if !q.OK() {
		return LineItem{}, q.Err()
	}

	return LineItem{
		Location:   location,
		Product:    product.Name,
		Category:   category,
		Group:      group,
		Width:      width,
		Drop:       drop,
		WidthBand:  q.WidthBand,
		DropBand:   q.DropBand,
		Quantity:   quantity,
		Mounting:   mounting,
		UnitPrice:  q.UnitPrice,
		TotalPrice: pricing.ItemTotal(q.UnitPrice, quantity),
	}, nil
}

// Preview is the live price shown while the item form is being typed.
type Preview struct {
	WidthBand  int     `json:"widthBand"`
	DropBand   int     `json:"dropBand"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
	Available  bool    `json:"available"`
}

// PreviewItem prices partial input without failing. Missing or bad fields simply produce an
// unavailable preview.
func PreviewItem(in ItemInput) Preview {
	group, ok := bands.ParseGroup(in.Group)
	if !ok {
		return Preview{}
	}
	width := ParseMeasurement(in.Width)
	drop := ParseMeasurement(in.Drop)

	b := pricing.ResolveBands(width, drop, group)
	unit := pricing.LookupUnitPrice(width, drop, group)
	quantity := CoerceQuantity(in.Quantity)

	return Preview{
		WidthBand:  b.WidthBand,
		DropBand:   b.DropBand,
		UnitPrice:  unit,
		TotalPrice: pricing.ItemTotal(unit, quantity),
		Available:  unit > 0,
	}
}

// Recalculate re-derives bands and prices from the item's own measurements. It is used when
// an item is edited in place.
func Recalculate(item LineItem) (LineItem, error) {
	q := pricing.Price(item.Width, item.Drop, item.Group)
	if !q.OK() {
		return item, q.Err()
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	item.WidthBand = q.WidthBand
	item.DropBand = q.DropBand
	item.UnitPrice = q.UnitPrice
	item.TotalPrice = pricing.ItemTotal(q.UnitPrice, item.Quantity)
	return item, nil
}

// Totals computes the quotation totals for items.
func Totals(items []LineItem) pricing.Totals {
	return pricing.ComputeTotals(items)
}
