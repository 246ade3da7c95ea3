package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/rooms/:id/availability")

	// The weekly schedule is public so customers can see opening hours.
	group.GET("", h.GetSchedule)

	// === Authenticated Routes ===
	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.PUT("", h.SaveSchedule)
		authed.PATCH("", h.SetDay)
	}
}
