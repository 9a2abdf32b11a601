// Package bands holds the fixed band price tables and the rounding rule that maps a raw
// measurement onto a catalogue band.
package bands

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidInput is returned by Resolve for a non-positive or non-finite measurement, or an
// empty threshold list.
var ErrInvalidInput = errors.New("invalid band input")

// Group identifies one of the four fixed pricing tiers.
type Group int

const (
	Group1 Group = iota + 1
	Group2
	Group3
	Group4
)

// Groups lists every pricing group in ascending order.
var Groups = []Group{Group1, Group2, Group3, Group4}

// Valid reports whether g is one of the four catalogue groups.
func (g Group) Valid() bool {
	return g >= Group1 && g <= Group4
}

func (g Group) String() string {
	return strconv.Itoa(int(g))
}

// ParseGroup accepts "1".."4" (surrounding spaces allowed). Anything else is rejected.
func ParseGroup(raw string) (Group, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	g := Group(n)
	if !g.Valid() {
		return 0, false
	}
	return g, true
}

// Table is a read-only view over one group's band table. Rows of the price grid follow the
// drop bands and columns follow the width bands.
type Table struct {
	widthBands []int
	dropBands  []int
	prices     [][]float64
}

// WidthBands returns a copy of the ascending width thresholds in millimetres.
func (t Table) WidthBands() []int {
	return append([]int(nil), t.widthBands...)
}

// DropBands returns a copy of the ascending drop thresholds in millimetres.
func (t Table) DropBands() []int {
	return append([]int(nil), t.dropBands...)
}

// WidthIndex returns the column holding band, or -1.
func (t Table) WidthIndex(band int) int {
	return indexOf(t.widthBands, band)
}

// DropIndex returns the row holding band, or -1.
func (t Table) DropIndex(band int) int {
	return indexOf(t.dropBands, band)
}

// Cell returns the raw grid value. Zero cells are kept as published; callers decide what a
// non-positive cell means.
func (t Table) Cell(dropIndex, widthIndex int) (float64, bool) {
	if dropIndex < 0 || dropIndex >= len(t.prices) {
		return 0, false
	}
	row := t.prices[dropIndex]
	if widthIndex < 0 || widthIndex >= len(row) {
		return 0, false
	}
	return row[widthIndex], true
}

// ResolveWidth rounds a raw width up to this table's width band.
func (t Table) ResolveWidth(width float64) (int, error) {
	return Resolve(width, t.widthBands)
}

// ResolveDrop rounds a raw drop up to this table's drop band.
func (t Table) ResolveDrop(drop float64) (int, error) {
	return Resolve(drop, t.dropBands)
}

// TableFor returns the band table of group g.
func TableFor(g Group) (Table, bool) {
	t, ok := tables[g]
	return t, ok
}

// Resolve returns the smallest threshold that is >= measurement. A measurement above every
// threshold clamps to the largest one.
func Resolve(measurement float64, thresholds []int) (int, error) {
	if math.IsNaN(measurement) || math.IsInf(measurement, 0) || measurement <= 0 || len(thresholds) == 0 {
		return 0, ErrInvalidInput
	}

	i := sort.Search(len(thresholds), func(i int) bool {
		return float64(thresholds[i]) >= measurement
	})
	if i == len(thresholds) {
		return thresholds[len(thresholds)-1], nil
	}
	return thresholds[i], nil
}

func indexOf(values []int, v int) int {
	i := sort.SearchInts(values, v)
	if i < len(values) && values[i] == v {
		return i
	}
	return -1
}

func newTable(widthBands, dropBands []int, prices [][]float64) Table {
	if err := checkAscending(widthBands); err != nil {
		panic(fmt.Sprintf("width bands: %v", err))
	}
	if err := checkAscending(dropBands); err != nil {
		panic(fmt.Sprintf("drop bands: %v", err))
	}
	if len(prices) != len(dropBands) {
		panic(fmt.Sprintf("price grid has %d rows, want %d", len(prices), len(dropBands)))
	}
	for i, row := range prices {
		if len(row) != len(widthBands) {
			panic(fmt.Sprintf("price grid row %d has %d columns, want %d", i, len(row), len(widthBands)))
		}
	}
	return Table{widthBands: widthBands, dropBands: dropBands, prices: prices}
}

func checkAscending(values []int) error {
	if len(values) == 0 {
		return errors.New("empty")
	}
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return fmt.Errorf("value %d at index %d is not above %d", values[i], i, values[i-1])
		}
	}
	return nil
}
