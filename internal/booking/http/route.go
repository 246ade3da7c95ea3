package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// Slot browsing is public so customers can shop before signing in.
	g.GET("/rooms/:id/slots", h.ListSlots)
	g.GET("/rooms/:id/bookable-dates", h.BookableDates)
	g.POST("/bookings/check", h.CheckAvailability)

	// === Authenticated Routes ===
	authed := g.Group("/bookings")
	authed.Use(authMiddleware)
	{
		authed.POST("/checkout", h.Checkout)
		authed.POST("/confirm", h.Confirm)
		authed.GET("/me", h.ListMine)
	}
}
