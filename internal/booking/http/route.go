package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	bookings := g.Group("/bookings")
	bookings.Use(authMiddleware)
	{
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.POST("", h.Create)
		bookings.DELETE("/:id", h.Cancel)
	}

	// Room-scoped read endpoints live under /rooms but belong to the
	// booking module: they answer questions about the reservation set.
	rooms := g.Group("/rooms")
	rooms.Use(authMiddleware)
	{
		rooms.GET("/:id/availability", h.CheckAvailability)
		rooms.GET("/:id/free-slots", h.FreeSlots)
	}
}
