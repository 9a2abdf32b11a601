package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/Simplici0/blindquote/internal/bands"
)

func TestLookupUnitPrice_FirstCellOfGroupOne(t *testing.T) {
	if got := LookupUnitPrice(610, 900, bands.Group1); got != 49 {
		t.Fatalf("LookupUnitPrice(610, 900, 1) = %v, want 49", got)
	}
}

func TestLookupUnitPrice_MatchesTableCell(t *testing.T) {
	tests := []struct {
		name      string
		width     float64
		drop      float64
		group     bands.Group
		wantPrice float64
	}{
		{"rounds width and drop up", 700, 1000, bands.Group1, 55},
		{"group two middle", 1500, 2000, bands.Group2, 111},
		{"group three last cell", 3310, 3300, bands.Group3, 349},
		{"group four oversize clamps", 9000, 9000, bands.Group4, 410},
		{"fractional millimetres", 610.1, 900, bands.Group1, 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LookupUnitPrice(tt.width, tt.drop, tt.group)
			if got != tt.wantPrice {
				t.Errorf("LookupUnitPrice(%v, %v, %d) = %v, want %v", tt.width, tt.drop, tt.group, got, tt.wantPrice)
			}
		})
	}
}

func TestLookupUnitPrice_EveryGroupReturnsIndexedCell(t *testing.T) {
	for _, g := range bands.Groups {
		table, _ := bands.TableFor(g)
		for di, drop := range table.DropBands() {
			for wi, width := range table.WidthBands() {
				cell, _ := table.Cell(di, wi)
				got := LookupUnitPrice(float64(width), float64(drop), g)
				if cell > 0 && got != cell {
					t.Fatalf("group %d (%d,%d) = %v, want %v", g, width, drop, got, cell)
				}
				if cell <= 0 && got != 0 {
					t.Fatalf("group %d (%d,%d) zero cell priced at %v", g, width, drop, got)
				}
			}
		}
	}
}

func TestLookupUnitPrice_Sentinel(t *testing.T) {
	tests := []struct {
		name  string
		width float64
		drop  float64
		group bands.Group
	}{
		{"group zero", 610, 900, 0},
		{"group five", 610, 900, 5},
		{"zero width", 0, 900, bands.Group1},
		{"negative drop", 610, -1, bands.Group1},
		{"nan width", math.NaN(), 900, bands.Group1},
		{"infinite drop", 610, math.Inf(1), bands.Group1},
		{"zero cell in group two", 2000, 1400, bands.Group2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LookupUnitPrice(tt.width, tt.drop, tt.group); got != 0 {
				t.Fatalf("expected zero sentinel, got %v", got)
			}
		})
	}
}

func TestPrice_Reasons(t *testing.T) {
	tests := []struct {
		name    string
		width   float64
		drop    float64
		group   bands.Group
		reason  Reason
		wantErr error
	}{
		{"priced", 610, 900, bands.Group1, ReasonNone, nil},
		{"bad group", 610, 900, 9, ReasonInvalidGroup, ErrInvalidGroup},
		{"bad width", -5, 900, bands.Group1, ReasonInvalidMeasurement, ErrInvalidMeasurement},
		{"data gap", 2110, 1500, bands.Group2, ReasonNoPrice, ErrPriceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Price(tt.width, tt.drop, tt.group)
			if q.Reason != tt.reason {
				t.Fatalf("reason = %v, want %v", q.Reason, tt.reason)
			}
			if !errors.Is(q.Err(), tt.wantErr) {
				t.Fatalf("err = %v, want %v", q.Err(), tt.wantErr)
			}
			if q.OK() != (tt.wantErr == nil) {
				t.Fatalf("OK() = %v for reason %v", q.OK(), q.Reason)
			}
		})
	}
}

func TestPrice_DataGapStillReportsBands(t *testing.T) {
	q := Price(2110, 1500, bands.Group2)
	if q.WidthBand != 2110 || q.DropBand != 1500 {
		t.Fatalf("unexpected bands for data gap: %+v", q.Bands)
	}
}

func TestResolveBands(t *testing.T) {
	got := ResolveBands(700, 1000, bands.Group1)
	if got.WidthBand != 760 || got.DropBand != 1200 || !got.Resolved() {
		t.Fatalf("ResolveBands(700, 1000, 1) = %+v", got)
	}

	gap := ResolveBands(2000, 1400, bands.Group2)
	if gap.WidthBand != 2110 || gap.DropBand != 1500 {
		t.Fatalf("bands should resolve even without a price: %+v", gap)
	}

	for _, b := range []Bands{ResolveBands(700, 1000, 7), ResolveBands(0, 1000, bands.Group1)} {
		if b.Resolved() || b.WidthBand != 0 || b.DropBand != 0 {
			t.Fatalf("expected empty bands, got %+v", b)
		}
	}
}

func TestItemTotal(t *testing.T) {
	tests := []struct {
		name     string
		unit     float64
		quantity int
		want     float64
	}{
		{"single", 49, 1, 49},
		{"several", 55.5, 3, 166.5},
		{"zero quantity", 49, 0, 0},
		{"negative price", -1, 2, 0},
		{"nan price", math.NaN(), 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ItemTotal(tt.unit, tt.quantity); got != tt.want {
				t.Errorf("ItemTotal(%v, %d) = %v, want %v", tt.unit, tt.quantity, got, tt.want)
			}
		})
	}
}
