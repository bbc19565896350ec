package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-seatmap/internal/handler"
	"github.com/iliyamo/room-seatmap/internal/middleware"
)

// RegisterRoutes registers the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated read endpoints.  cache wraps
// only the catalogue listings; seat maps are rebuilt on every request from
// the live reservation feed.
func RegisterPublic(e *echo.Echo, h *handler.SeatMapHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.GET("/time-slots", h.ListTimeSlots, cache)
	g.GET("/locations", h.ListLocations, cache)
	g.GET("/locations/:location/seatmap", h.GetSeatMap)
}

// RegisterMember registers seat selection.  It requires a valid access token
// with the MEMBER or ADMIN role and is rate limited per user and route.
// Auth is attached per route so unknown /v1 paths still answer 404.
func RegisterMember(e *echo.Echo, h *handler.SeatMapHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	e.POST("/v1/locations/:location/seats/:seat/select", h.SelectSeat,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleMember, middleware.RoleAdmin),
		limiter,
	)
}
