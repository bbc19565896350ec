package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/room-seatmap/internal/model"
	"github.com/iliyamo/room-seatmap/internal/seatmap"
)

// ReservationRepo reads the day's bookings from the reservations table.  The
// seat map never writes to it; bookings are created by the booking system.
type ReservationRepo struct {
	db  *sql.DB
	loc *time.Location
	now func() time.Time
}

// NewReservationRepo returns a ReservationRepo whose notion of "today" is
// taken in loc.  A nil loc means UTC.
func NewReservationRepo(db *sql.DB, loc *time.Location) *ReservationRepo {
	if loc == nil {
		loc = time.UTC
	}
	return &ReservationRepo{db: db, loc: loc, now: time.Now}
}

// ListByDate returns every reservation made for the calendar day of day,
// ordered by location, time slot and seat.
func (r *ReservationRepo) ListByDate(ctx context.Context, day time.Time) ([]model.Reservation, error) {
	const q = `SELECT id, location, seat, time_slot, reserved_on, created_at
	           FROM reservations
	           WHERE reserved_on = ?
	           ORDER BY location, time_slot, seat`
	return r.query(ctx, q, day.Format("2006-01-02"))
}

// ListByLocationAndDate narrows ListByDate to one location.
func (r *ReservationRepo) ListByLocationAndDate(ctx context.Context, location string, day time.Time) ([]model.Reservation, error) {
	const q = `SELECT id, location, seat, time_slot, reserved_on, created_at
	           FROM reservations
	           WHERE reserved_on = ? AND location = ?
	           ORDER BY time_slot, seat`
	return r.query(ctx, q, day.Format("2006-01-02"), location)
}

// Today returns the current day's reservations for location in the form the
// seat map consumes.
func (r *ReservationRepo) Today(ctx context.Context, location string) ([]seatmap.Reservation, error) {
	rows, err := r.ListByLocationAndDate(ctx, location, r.now().In(r.loc))
	if err != nil {
		return nil, err
	}
	return ToSeatmap(rows), nil
}

// ToSeatmap converts table rows into seat map reservations.
func ToSeatmap(rows []model.Reservation) []seatmap.Reservation {
	out := make([]seatmap.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, seatmap.Reservation{Location: m.Location, Seat: m.Seat, TimeSlot: m.TimeSlot})
	}
	return out
}

func (r *ReservationRepo) query(ctx context.Context, q string, args ...interface{}) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		var m model.Reservation
		if err := rows.Scan(&m.ID, &m.Location, &m.Seat, &m.TimeSlot, &m.ReservedOn, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
