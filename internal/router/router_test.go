package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-seatmap/internal/catalog"
	"github.com/iliyamo/room-seatmap/internal/handler"
	"github.com/iliyamo/room-seatmap/internal/queue"
	"github.com/iliyamo/room-seatmap/internal/seatmap"
	"github.com/iliyamo/room-seatmap/internal/utils"
)

const secret = "router-secret"

type fakeFeed struct {
	res []seatmap.Reservation
	err error
}

func (f *fakeFeed) Today(_ context.Context, location string) ([]seatmap.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []seatmap.Reservation
	for _, r := range f.res {
		if r.Location == location {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakePublisher struct {
	events []queue.SeatSelectedEvent
	err    error
}

func (p *fakePublisher) PublishSeatSelected(_ context.Context, ev queue.SeatSelectedEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func noop(next echo.HandlerFunc) echo.HandlerFunc { return next }

func setup(t *testing.T, feed *fakeFeed, pub *fakePublisher) *echo.Echo {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	var sp handler.SelectionPublisher
	if pub != nil {
		sp = pub
	}
	h := handler.NewSeatMapHandler(seatmap.New(cat.Layouts, cat.TimeSlots), cat.TimeSlots, feed, sp)
	h.Now = func() time.Time { return time.Date(2026, 10, 17, 9, 1, 0, 0, time.UTC) }

	e := echo.New()
	RegisterRoutes(e)
	RegisterPublic(e, h, noop)
	RegisterMember(e, h, secret, noop)
	return e
}

func do(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func memberToken(t *testing.T) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, "42", "MEMBER", time.Minute)
	require.NoError(t, err)
	return tok.Token
}

func decodeSeatMap(t *testing.T, rec *httptest.ResponseRecorder) handler.SeatMapResponse {
	t.Helper()
	var resp handler.SeatMapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	rec := do(setup(t, &fakeFeed{}, nil), http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestListings(t *testing.T) {
	e := setup(t, &fakeFeed{}, nil)

	rec := do(e, http.MethodGet, "/v1/locations", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":["Lab1","Lab2","Seminar Room"]}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/v1/time-slots", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `{"id":"T1","label":"09:00-11:00"}`)
}

func TestGetSeatMap_Locked(t *testing.T) {
	rec := do(setup(t, &fakeFeed{}, nil), http.MethodGet, "/v1/locations/Lab1/seatmap?seat=5", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeSeatMap(t, rec)
	assert.True(t, resp.Locked)
	assert.Equal(t, handler.MsgPickTimeSlot, resp.Notice)
	assert.Nil(t, resp.TimeSlot)

	header := resp.Rows[0][0]
	assert.Equal(t, seatmap.KindLabel, header.Type)
	assert.Equal(t, "Whiteboard", header.Text)
	assert.Equal(t, 5, header.Span)
	assert.Nil(t, header.Disabled)

	seat5 := resp.Rows[2][0]
	assert.Equal(t, 5, seat5.Number)
	assert.Equal(t, seatmap.StateSelected, seat5.State)
	require.NotNil(t, seat5.Disabled)
	assert.True(t, *seat5.Disabled)

	seat6 := resp.Rows[2][1]
	assert.Equal(t, seatmap.StateLocked, seat6.Status)
	assert.True(t, *seat6.Disabled)
}

func TestGetSeatMap_WithReservations(t *testing.T) {
	feed := &fakeFeed{res: []seatmap.Reservation{
		{Location: "Lab1", Seat: "5", TimeSlot: "09:00-11:00"},
		{Location: "Lab2", Seat: "6", TimeSlot: "09:00-11:00"},
	}}
	rec := do(setup(t, feed, nil), http.MethodGet, "/v1/locations/Lab1/seatmap?time_slot=T1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeSeatMap(t, rec)
	assert.False(t, resp.Locked)
	assert.Empty(t, resp.Notice)
	assert.Equal(t, &seatmap.TimeSlot{ID: "T1", Label: "09:00-11:00"}, resp.TimeSlot)

	assert.Equal(t, seatmap.StateUnavailable, resp.Rows[2][0].State)
	assert.True(t, *resp.Rows[2][0].Disabled)
	assert.Equal(t, seatmap.StateAvailable, resp.Rows[2][1].State)
	assert.False(t, *resp.Rows[2][1].Disabled)
}

func TestGetSeatMap_EscapedLocation(t *testing.T) {
	rec := do(setup(t, &fakeFeed{}, nil), http.MethodGet, "/v1/locations/Seminar%20Room/seatmap?time_slot=T2", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Seminar Room", decodeSeatMap(t, rec).Location)
}

func TestGetSeatMap_Errors(t *testing.T) {
	e := setup(t, &fakeFeed{}, nil)

	rec := do(e, http.MethodGet, "/v1/locations/Unknown/seatmap", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), handler.MsgNoLayout)

	rec = do(e, http.MethodGet, "/v1/locations/Lab1/seatmap?time_slot=T99", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	e = setup(t, &fakeFeed{err: errors.New("db down")}, nil)
	rec = do(e, http.MethodGet, "/v1/locations/Lab1/seatmap?time_slot=T1", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSelectSeat(t *testing.T) {
	pub := &fakePublisher{}
	feed := &fakeFeed{res: []seatmap.Reservation{{Location: "Lab1", Seat: "5", TimeSlot: "09:00-11:00"}}}
	e := setup(t, feed, pub)

	rec := do(e, http.MethodPost, "/v1/locations/Lab1/seats/6/select", `{"time_slot":"T1"}`, memberToken(t))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"location":"Lab1","seat":"6","time_slot":{"id":"T1","label":"09:00-11:00"}}`, rec.Body.String())

	require.Len(t, pub.events, 1)
	assert.Equal(t, queue.SeatSelectedEvent{
		Location:   "Lab1",
		Seat:       "6",
		TimeSlotID: "T1",
		TimeSlot:   "09:00-11:00",
		UserID:     "42",
		SelectedAt: "2026-10-17T09:01:00Z",
	}, pub.events[0])
}

func TestSelectSeat_PublishFailureStillSelects(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	rec := do(setup(t, &fakeFeed{}, pub), http.MethodPost, "/v1/locations/Lab2/seats/1/select", `{"time_slot":"T3"}`, memberToken(t))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, pub.events, 1)
}

func TestSelectSeat_Rejections(t *testing.T) {
	pub := &fakePublisher{}
	feed := &fakeFeed{res: []seatmap.Reservation{{Location: "Lab1", Seat: "5", TimeSlot: "09:00-11:00"}}}
	e := setup(t, feed, pub)
	tok := memberToken(t)

	cases := []struct {
		name, target, body, token string
		code                      int
	}{
		{"no token", "/v1/locations/Lab1/seats/6/select", `{"time_slot":"T1"}`, "", http.StatusUnauthorized},
		{"taken", "/v1/locations/Lab1/seats/5/select", `{"time_slot":"T1"}`, tok, http.StatusConflict},
		{"locked", "/v1/locations/Lab1/seats/6/select", `{}`, tok, http.StatusConflict},
		{"unknown slot", "/v1/locations/Lab1/seats/6/select", `{"time_slot":"T0"}`, tok, http.StatusBadRequest},
		{"bad seat", "/v1/locations/Lab1/seats/x/select", `{"time_slot":"T1"}`, tok, http.StatusBadRequest},
		{"zero seat", "/v1/locations/Lab1/seats/0/select", `{"time_slot":"T1"}`, tok, http.StatusBadRequest},
		{"missing seat", "/v1/locations/Lab1/seats/99/select", `{"time_slot":"T1"}`, tok, http.StatusNotFound},
		{"unknown location", "/v1/locations/Nowhere/seats/1/select", `{"time_slot":"T1"}`, tok, http.StatusNotFound},
		{"bad body", "/v1/locations/Lab1/seats/6/select", `{`, tok, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, tc.target, tc.body, tc.token)
			assert.Equal(t, tc.code, rec.Code, rec.Body.String())
		})
	}
	assert.Empty(t, pub.events)
}

func TestSelectSeat_LockedMessage(t *testing.T) {
	rec := do(setup(t, &fakeFeed{}, nil), http.MethodPost, "/v1/locations/Lab1/seats/6/select", `{"time_slot":""}`, memberToken(t))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), handler.MsgPickTimeSlot)
}

func TestGetSeatMap_PercentInLocation(t *testing.T) {
	layouts := seatmap.NewLayouts(map[string]seatmap.Layout{
		"Room%41": {{seatmap.SeatCell{Number: 1}}},
	})
	slots := seatmap.NewTimeSlots([]seatmap.TimeSlot{{ID: "T1", Label: "09:00-11:00"}})
	h := handler.NewSeatMapHandler(seatmap.New(layouts, slots), slots, &fakeFeed{}, nil)

	e := echo.New()
	RegisterPublic(e, h, noop)
	RegisterMember(e, h, secret, noop)

	rec := do(e, http.MethodGet, "/v1/locations/Room%2541/seatmap?time_slot=T1", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Room%41", decodeSeatMap(t, rec).Location)

	rec = do(e, http.MethodPost, "/v1/locations/Room%2541/seats/1/select", `{"time_slot":"T1"}`, memberToken(t))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"location":"Room%41"`)

	rec = do(e, http.MethodGet, "/v1/locations/RoomA/seatmap", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownV1PathIsNotFound(t *testing.T) {
	e := setup(t, &fakeFeed{}, nil)

	rec := do(e, http.MethodGet, "/v1/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

	rec = do(e, http.MethodGet, "/v1/locations/Lab1/seats/6/select", "", "")
	assert.NotEqual(t, http.StatusUnauthorized, rec.Code)
}
