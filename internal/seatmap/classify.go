package seatmap

import "strconv"

// State is the derived selection state of a seat.
type State string

const (
	StateSelected    State = "selected"
	StateAvailable   State = "available"
	StateUnavailable State = "unavailable"
	StateLocked      State = "locked"
)

// SeatView is the classified state of one seat cell.
//
// Color is one of Selected, Available or Unavailable and never Locked: a
// missing time slot disables the control (Locked, Disabled) without changing
// which colour class applies underneath.
type SeatView struct {
	Number   int
	Color    State
	Locked   bool
	Disabled bool
}

// Status folds Locked into the colour class.  Locked overrides Available and
// Unavailable, Selected stays Selected.
func (v SeatView) Status() State {
	if v.Color == StateSelected {
		return StateSelected
	}
	if v.Locked {
		return StateLocked
	}
	return v.Color
}

// Activate delivers the seat number to onSelect when the control is enabled
// and reports whether it did.
func (v SeatView) Activate(onSelect func(seat string)) bool {
	if v.Disabled {
		return false
	}
	if onSelect != nil {
		onSelect(strconv.Itoa(v.Number))
	}
	return true
}

// CellView is a classified cell ready for rendering.  Seat is set only for
// seat cells, Text only for label cells.
type CellView struct {
	Kind CellKind
	Span int
	Text string
	Seat *SeatView
}

// Classify computes the view of a single cell.  available is consulted only
// for seat cells.
func Classify(cell Cell, selectedSeat, timeSlotID string, available func(number int) bool) CellView {
	view := CellView{Kind: cell.Kind(), Span: cell.Span()}
	switch c := cell.(type) {
	case SeatCell:
		free := available(c.Number)
		sv := SeatView{
			Number:   c.Number,
			Locked:   timeSlotID == "",
			Disabled: !free || timeSlotID == "",
		}
		switch {
		case selectedSeat == strconv.Itoa(c.Number):
			sv.Color = StateSelected
		case free:
			sv.Color = StateAvailable
		default:
			sv.Color = StateUnavailable
		}
		view.Seat = &sv
	case LabelCell:
		view.Text = c.Text
	}
	return view
}
