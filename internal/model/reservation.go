package model

import "time"

// Reservation is a row of the `reservations` table as written by the booking
// system.  The seat map only reads it: Seat holds the seat number in decimal
// form and TimeSlot the slot's label (e.g. "09:00-11:00"), not its id.
//
// Fields:
//  ID         – primary key identifier.
//  Location   – room name, matching a catalogue layout key.
//  Seat       – seat number as text.
//  TimeSlot   – time slot label.
//  ReservedOn – calendar day of the booking.
//  CreatedAt  – creation timestamp.
type Reservation struct {
	ID         uint64    // reservations.id
	Location   string    // reservations.location
	Seat       string    // reservations.seat
	TimeSlot   string    // reservations.time_slot
	ReservedOn time.Time // reservations.reserved_on (DATE)
	CreatedAt  time.Time // reservations.created_at
}
