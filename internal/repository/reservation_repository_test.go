package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-seatmap/internal/seatmap"
)

var reservationColumns = []string{"id", "location", "seat", "time_slot", "reserved_on", "created_at"}

func TestReservationRepo_Today(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	seoul := time.FixedZone("KST", 9*3600)
	repo := NewReservationRepo(db, seoul)
	// 20:30 UTC on the 16th is already the 17th in Seoul
	repo.now = func() time.Time { return time.Date(2026, 10, 16, 20, 30, 0, 0, time.UTC) }

	day := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE reserved_on = ? AND location = ?")).
		WithArgs("2026-10-17", "Lab1").
		WillReturnRows(sqlmock.NewRows(reservationColumns).
			AddRow(1, "Lab1", "5", "09:00-11:00", day, day).
			AddRow(2, "Lab1", "6", "11:00-13:00", day, day))

	got, err := repo.Today(context.Background(), "Lab1")
	require.NoError(t, err)
	assert.Equal(t, []seatmap.Reservation{
		{Location: "Lab1", Seat: "5", TimeSlot: "09:00-11:00"},
		{Location: "Lab1", Seat: "6", TimeSlot: "11:00-13:00"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepo_ListByDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	day := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE reserved_on = ?")).
		WithArgs("2026-10-17").
		WillReturnRows(sqlmock.NewRows(reservationColumns).
			AddRow(9, "Lab2", "1", "13:00-15:00", day, day))

	got, err := NewReservationRepo(db, nil).ListByDate(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(9), got[0].ID)
	assert.Equal(t, "Lab2", got[0].Location)
	assert.True(t, got[0].ReservedOn.Equal(day))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepo_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT").WillReturnError(boom)

	_, err = NewReservationRepo(db, time.UTC).Today(context.Background(), "Lab1")
	assert.ErrorIs(t, err, boom)
}
