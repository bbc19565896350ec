// Package handler exposes the seat map over HTTP.  Handlers translate
// between request parameters, the reservation feed and the pure seatmap
// package; they hold no state of their own.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-seatmap/internal/middleware"
	"github.com/iliyamo/room-seatmap/internal/queue"
	"github.com/iliyamo/room-seatmap/internal/seatmap"
)

// User-facing messages for the two non-grid outcomes.
const (
	MsgNoLayout     = "no seat layout is available for this location"
	MsgPickTimeSlot = "select a time slot before choosing a seat"
)

// ReservationFeed supplies the current day's reservations for a location.
type ReservationFeed interface {
	Today(ctx context.Context, location string) ([]seatmap.Reservation, error)
}

// SelectionPublisher forwards seat selection events.
type SelectionPublisher interface {
	PublishSeatSelected(ctx context.Context, ev queue.SeatSelectedEvent) error
}

// SeatMapHandler serves layouts, time slots and classified seat maps.
type SeatMapHandler struct {
	Map       *seatmap.SeatMap
	TimeSlots seatmap.TimeSlots
	Feed      ReservationFeed
	Publisher SelectionPublisher // optional
	Now       func() time.Time
}

// NewSeatMapHandler wires a handler.  It panics on a missing map or feed,
// which are programming errors at startup.
func NewSeatMapHandler(m *seatmap.SeatMap, slots seatmap.TimeSlots, feed ReservationFeed, pub SelectionPublisher) *SeatMapHandler {
	if m == nil || feed == nil {
		panic("nil dependency passed to NewSeatMapHandler")
	}
	return &SeatMapHandler{Map: m, TimeSlots: slots, Feed: feed, Publisher: pub, Now: time.Now}
}

// CellResponse is one cell of the seat map.  Number, State, Status and
// Disabled are only present on seat cells; Text only on label cells.
type CellResponse struct {
	Type     seatmap.CellKind `json:"type"`
	Span     int              `json:"span"`
	Text     string           `json:"text,omitempty"`
	Number   int              `json:"number,omitempty"`
	State    seatmap.State    `json:"state,omitempty"`
	Status   seatmap.State    `json:"status,omitempty"`
	Disabled *bool            `json:"disabled,omitempty"`
}

// SeatMapResponse is the body of GET /v1/locations/:location/seatmap.
type SeatMapResponse struct {
	Location     string            `json:"location"`
	TimeSlot     *seatmap.TimeSlot `json:"time_slot"`
	SelectedSeat string            `json:"selected_seat,omitempty"`
	Locked       bool              `json:"locked"`
	Notice       string            `json:"notice,omitempty"`
	Rows         [][]CellResponse  `json:"rows"`
}

// ListTimeSlots handles GET /v1/time-slots.
func (h *SeatMapHandler) ListTimeSlots(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.TimeSlots.All()})
}

// ListLocations handles GET /v1/locations.
func (h *SeatMapHandler) ListLocations(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Map.Layouts().Locations()})
}

// GetSeatMap handles GET /v1/locations/:location/seatmap?time_slot=&seat=.
// Unknown locations answer 404 with MsgNoLayout; an unknown time_slot id is
// rejected with 400 rather than silently reading every seat as free.
func (h *SeatMapHandler) GetSeatMap(c echo.Context) error {
	location := pathParam(c, "location")
	if _, err := h.Map.Layouts().Resolve(location); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": MsgNoLayout})
	}
	slotID := strings.TrimSpace(c.QueryParam("time_slot"))
	slot, ok := h.lookupSlot(slotID)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown time_slot"})
	}

	reservations, err := h.Feed.Today(c.Request().Context(), location)
	if err != nil {
		log.Printf("seatmap: load reservations for %q: %v", location, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	grid, err := h.Map.Build(seatmap.Query{
		Location:     location,
		TimeSlotID:   slotID,
		SelectedSeat: strings.TrimSpace(c.QueryParam("seat")),
		Reservations: reservations,
	})
	if errors.Is(err, seatmap.ErrLayoutNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": MsgNoLayout})
	} else if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build seat map"})
	}

	resp := SeatMapResponse{
		Location:     location,
		TimeSlot:     slot,
		SelectedSeat: strings.TrimSpace(c.QueryParam("seat")),
		Locked:       grid.Locked,
		Rows:         make([][]CellResponse, 0, len(grid.Rows)),
	}
	if grid.Locked {
		resp.Notice = MsgPickTimeSlot
	}
	for _, row := range grid.Rows {
		out := make([]CellResponse, 0, len(row))
		for _, cell := range row {
			out = append(out, toCellResponse(cell))
		}
		resp.Rows = append(resp.Rows, out)
	}
	return c.JSON(http.StatusOK, resp)
}

// SelectSeat handles POST /v1/locations/:location/seats/:seat/select with a
// body of {"time_slot": "<id>"}.  An enabled seat answers 200 and emits a
// seat.selected event; a locked or taken seat answers 409.
func (h *SeatMapHandler) SelectSeat(c echo.Context) error {
	location := pathParam(c, "location")
	number, err := strconv.Atoi(c.Param("seat"))
	if err != nil || number <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat"})
	}
	var body struct {
		TimeSlot string `json:"time_slot"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	slotID := strings.TrimSpace(body.TimeSlot)
	slot, ok := h.lookupSlot(slotID)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown time_slot"})
	}
	if _, err := h.Map.Layouts().Resolve(location); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": MsgNoLayout})
	}

	ctx := c.Request().Context()
	reservations, err := h.Feed.Today(ctx, location)
	if err != nil {
		log.Printf("seatmap: load reservations for %q: %v", location, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	seat, err := h.Map.Select(seatmap.Query{Location: location, TimeSlotID: slotID, Reservations: reservations}, number)
	switch {
	case errors.Is(err, seatmap.ErrLayoutNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": MsgNoLayout})
	case errors.Is(err, seatmap.ErrSeatNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
	case errors.Is(err, seatmap.ErrSeatDisabled):
		msg := "seat is not available"
		if slotID == "" {
			msg = MsgPickTimeSlot
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": msg})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to select seat"})
	}

	if h.Publisher != nil {
		ev := queue.SeatSelectedEvent{
			Location:   location,
			Seat:       seat,
			TimeSlotID: slot.ID,
			TimeSlot:   slot.Label,
			UserID:     middleware.UserID(c),
			SelectedAt: h.Now().UTC().Format(time.RFC3339),
		}
		// the selection stands even when the broker is down
		_ = h.Publisher.PublishSeatSelected(ctx, ev)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"location":  location,
		"seat":      seat,
		"time_slot": slot,
	})
}

// lookupSlot resolves id; an empty id is valid and yields nil.
func (h *SeatMapHandler) lookupSlot(id string) (*seatmap.TimeSlot, bool) {
	if id == "" {
		return nil, true
	}
	s, err := h.TimeSlots.Lookup(id)
	if err != nil {
		return nil, false
	}
	return &s, true
}

func toCellResponse(v seatmap.CellView) CellResponse {
	out := CellResponse{Type: v.Kind, Span: v.Span, Text: v.Text}
	if v.Seat != nil {
		disabled := v.Seat.Disabled
		out.Number = v.Seat.Number
		out.State = v.Seat.Color
		out.Status = v.Seat.Status()
		out.Disabled = &disabled
	}
	return out
}

// pathParam returns a path parameter as Echo decoded it from the request
// path.  It must not be unescaped again: a location may itself contain '%'.
func pathParam(c echo.Context, name string) string {
	return c.Param(name)
}
