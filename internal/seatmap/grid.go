package seatmap

import "errors"

var (
	// ErrSeatNotFound is returned by Select for a number with no seat cell.
	ErrSeatNotFound = errors.New("seat not found")
	// ErrSeatDisabled is returned by Select when the seat control is
	// disabled, either because no time slot is chosen or the seat is taken.
	ErrSeatDisabled = errors.New("seat not selectable")
)

// Query carries the externally owned inputs of one render pass.
type Query struct {
	Location     string
	TimeSlotID   string
	SelectedSeat string
	Reservations []Reservation
}

// Grid is the classified seat map of a location.  Locked is true when no
// time slot is chosen; every seat is then disabled.
type Grid struct {
	Location string
	Locked   bool
	Rows     [][]CellView
}

// SeatMap combines the layout table with an availability evaluator.
type SeatMap struct {
	layouts Layouts
	eval    *Evaluator
}

// New returns a SeatMap over the given static tables.
func New(layouts Layouts, slots TimeSlots) *SeatMap {
	return &SeatMap{layouts: layouts, eval: NewEvaluator(slots)}
}

// Layouts exposes the layout table the map was built with.
func (m *SeatMap) Layouts() Layouts { return m.layouts }

// Evaluator exposes the availability evaluator.
func (m *SeatMap) Evaluator() *Evaluator { return m.eval }

// Build resolves the location's layout and classifies every cell.  An
// unknown location yields ErrLayoutNotFound and an empty Grid.
func (m *SeatMap) Build(q Query) (Grid, error) {
	layout, err := m.layouts.Resolve(q.Location)
	if err != nil {
		return Grid{}, err
	}
	available := m.predicate(q)
	g := Grid{
		Location: q.Location,
		Locked:   q.TimeSlotID == "",
		Rows:     make([][]CellView, 0, len(layout)),
	}
	for _, row := range layout {
		views := make([]CellView, 0, len(row))
		for _, cell := range row {
			views = append(views, Classify(cell, q.SelectedSeat, q.TimeSlotID, available))
		}
		g.Rows = append(g.Rows, views)
	}
	return g, nil
}

// Select activates seat number under q and returns the seat string that the
// selection event carries.  q.SelectedSeat is ignored.
func (m *SeatMap) Select(q Query, number int) (string, error) {
	layout, err := m.layouts.Resolve(q.Location)
	if err != nil {
		return "", err
	}
	if !layout.HasSeat(number) {
		return "", ErrSeatNotFound
	}
	view := Classify(SeatCell{Number: number}, "", q.TimeSlotID, m.predicate(q))
	var picked string
	if !view.Seat.Activate(func(seat string) { picked = seat }) {
		return "", ErrSeatDisabled
	}
	return picked, nil
}

func (m *SeatMap) predicate(q Query) func(int) bool {
	return func(number int) bool {
		return m.eval.IsAvailable(number, q.Location, q.TimeSlotID, q.Reservations)
	}
}
