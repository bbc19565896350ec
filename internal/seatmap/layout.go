package seatmap

import (
	"errors"
	"fmt"
	"sort"
)

// ErrLayoutNotFound is returned by Layouts.Resolve for a location that has
// no configured layout.  Callers show a "no layout available" message
// instead of a grid.
var ErrLayoutNotFound = errors.New("layout not found")

// Row is an ordered sequence of cells.
type Row []Cell

// Layout is the ordered list of rows for one location.
type Layout []Row

// Seats returns the seat numbers of the layout in traversal order.
func (l Layout) Seats() []int {
	var out []int
	for _, row := range l {
		for _, c := range row {
			if s, ok := c.(SeatCell); ok {
				out = append(out, s.Number)
			}
		}
	}
	return out
}

// HasSeat reports whether a seat cell with the given number exists.
func (l Layout) HasSeat(number int) bool {
	for _, row := range l {
		for _, c := range row {
			if s, ok := c.(SeatCell); ok && s.Number == number {
				return true
			}
		}
	}
	return false
}

// Validate checks the structural rules of a layout: seat numbers are
// positive and unique, label text is non-empty and widths are not negative.
func (l Layout) Validate() error {
	seen := make(map[int]bool)
	for ri, row := range l {
		for ci, c := range row {
			switch v := c.(type) {
			case SeatCell:
				if v.Number <= 0 {
					return fmt.Errorf("row %d cell %d: seat number must be positive, got %d", ri, ci, v.Number)
				}
				if seen[v.Number] {
					return fmt.Errorf("row %d cell %d: duplicate seat number %d", ri, ci, v.Number)
				}
				seen[v.Number] = true
				if v.Width < 0 {
					return fmt.Errorf("row %d cell %d: negative span", ri, ci)
				}
			case LabelCell:
				if v.Text == "" {
					return fmt.Errorf("row %d cell %d: label without text", ri, ci)
				}
				if v.Width < 0 {
					return fmt.Errorf("row %d cell %d: negative span", ri, ci)
				}
			case SpaceCell:
				if v.Width < 0 {
					return fmt.Errorf("row %d cell %d: negative span", ri, ci)
				}
			case nil:
				return fmt.Errorf("row %d cell %d: empty cell", ri, ci)
			}
		}
	}
	return nil
}

// Layouts is the read-only mapping from location name to its layout.  Build
// one with NewLayouts at startup and share it; it is never mutated after
// construction so concurrent readers need no locking.
type Layouts struct {
	byLocation map[string]Layout
}

// NewLayouts copies m into a new Layouts value.  The caller's map may be
// modified afterwards without affecting the result.
func NewLayouts(m map[string]Layout) Layouts {
	cp := make(map[string]Layout, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Layouts{byLocation: cp}
}

// Resolve returns the layout configured for location, or ErrLayoutNotFound.
// Matching is exact and case sensitive.
func (ls Layouts) Resolve(location string) (Layout, error) {
	l, ok := ls.byLocation[location]
	if !ok {
		return nil, ErrLayoutNotFound
	}
	return l, nil
}

// Locations lists the configured location names in sorted order.
func (ls Layouts) Locations() []string {
	out := make([]string, 0, len(ls.byLocation))
	for k := range ls.byLocation {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
