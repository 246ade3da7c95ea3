package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// Viewing photos is public.
	g.GET("/studios/:id/photos", h.ListByStudio)
	g.GET("/photos/:id", h.Serve)
	g.GET("/photos/:id/thumbnail", h.ServeThumbnail)

	// === Authenticated Routes ===
	authed := g.Group("")
	authed.Use(authMiddleware)
	{
		authed.POST("/studios/:id/photos", h.Upload)
		authed.DELETE("/photos/:id", h.Delete)
	}
}
