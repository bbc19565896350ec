package seatmap

import "strconv"

// Reservation is one booking from the day's reservation feed.  Seat holds
// the seat number in decimal form and TimeSlot holds the slot's label, not
// its id.
type Reservation struct {
	Location string `json:"location"`
	Seat     string `json:"seat"`
	TimeSlot string `json:"time_slot"`
}

// Evaluator answers availability questions against a fixed time-slot table.
type Evaluator struct {
	slots TimeSlots
}

// NewEvaluator returns an Evaluator that resolves slot ids through slots.
func NewEvaluator(slots TimeSlots) *Evaluator {
	return &Evaluator{slots: slots}
}

// IsAvailable reports whether seat number can be selected at location during
// the slot identified by timeSlotID.  With no slot chosen nothing is
// selectable.  Otherwise the seat is free unless a reservation matches
// location, seat and slot label exactly.
func (e *Evaluator) IsAvailable(number int, location, timeSlotID string, reservations []Reservation) bool {
	if timeSlotID == "" {
		return false
	}
	label := e.slots.Label(timeSlotID)
	seat := strconv.Itoa(number)
	for _, r := range reservations {
		if r.Location == location && r.Seat == seat && r.TimeSlot == label {
			return false
		}
	}
	return true
}
