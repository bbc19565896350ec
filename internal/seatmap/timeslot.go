package seatmap

import "errors"

// ErrUnknownTimeSlot is returned by TimeSlots.Lookup for an id that is not
// in the table.
var ErrUnknownTimeSlot = errors.New("unknown time slot")

// TimeSlot is a reservable period.  ID is what clients send when they pick
// a slot; Label is what reservations record.
type TimeSlot struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// TimeSlots is the ordered, read-only time-slot table.
type TimeSlots struct {
	slots []TimeSlot
}

// NewTimeSlots copies slots into a new table, preserving order.
func NewTimeSlots(slots []TimeSlot) TimeSlots {
	cp := make([]TimeSlot, len(slots))
	copy(cp, slots)
	return TimeSlots{slots: cp}
}

// All returns a copy of the table in its configured order.
func (t TimeSlots) All() []TimeSlot {
	out := make([]TimeSlot, len(t.slots))
	copy(out, t.slots)
	return out
}

// Lookup finds the slot with the given id.
func (t TimeSlots) Lookup(id string) (TimeSlot, error) {
	for _, s := range t.slots {
		if s.ID == id {
			return s, nil
		}
	}
	return TimeSlot{}, ErrUnknownTimeSlot
}

// Label returns the label for id, or "" when id is not in the table.  The
// empty label matches no reservation, so an unknown id makes every seat read
// as free.  Use Lookup where a stale id has to be rejected.
func (t TimeSlots) Label(id string) string {
	s, err := t.Lookup(id)
	if err != nil {
		return ""
	}
	return s.Label
}
