// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// SeatSelectedQueue is the durable queue carrying seat selection events.
const SeatSelectedQueue = "seat.selected"

// SeatSelectedEvent is published when a user activates an enabled seat.
// Seat carries the seat number as text, the same form the booking system
// stores in reservations.
type SeatSelectedEvent struct {
	Location   string `json:"location"`
	Seat       string `json:"seat"`
	TimeSlotID string `json:"time_slot_id"`
	TimeSlot   string `json:"time_slot"`
	UserID     string `json:"user_id"`
	SelectedAt string `json:"selected_at"`
}
