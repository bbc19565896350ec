// Package seatmap models a room's seat grid and decides, for one snapshot of
// the day's reservations, which seats can currently be selected.  Nothing in
// this package performs I/O or keeps state between calls; every result is a
// pure function of the values passed in.
package seatmap

// CellKind names the variant of a Cell.  The string values double as the
// "type" field of the catalogue and of the JSON seat map.
type CellKind string

const (
	KindSeat  CellKind = "seat"
	KindLabel CellKind = "label"
	KindSpace CellKind = "space"
)

// Cell is one slot in a layout row.  The set of implementations is closed:
// SeatCell, LabelCell and SpaceCell.
type Cell interface {
	Kind() CellKind
	// Span is the number of grid columns the cell occupies, always >= 1.
	Span() int
	isCell()
}

// SeatCell is a reservable seat identified by a positive number.
type SeatCell struct {
	Number int
	Width  int // grid columns; zero means 1
}

// LabelCell shows descriptive text such as "Door" or "Window".
type LabelCell struct {
	Text  string
	Width int
}

// SpaceCell is an inert gap.
type SpaceCell struct {
	Width int
}

func (SeatCell) Kind() CellKind  { return KindSeat }
func (LabelCell) Kind() CellKind { return KindLabel }
func (SpaceCell) Kind() CellKind { return KindSpace }

func (c SeatCell) Span() int  { return span(c.Width) }
func (c LabelCell) Span() int { return span(c.Width) }
func (c SpaceCell) Span() int { return span(c.Width) }

func (SeatCell) isCell()  {}
func (LabelCell) isCell() {}
func (SpaceCell) isCell() {}

func span(w int) int {
	if w < 1 {
		return 1
	}
	return w
}
