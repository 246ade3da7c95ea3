package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, sysAdminMiddleware gin.HandlerFunc) {
	group := g.Group("/room-types")

	group.GET("", h.List)

	// === System Admin Routes ===
	admin := group.Group("")
	admin.Use(authMiddleware, sysAdminMiddleware)
	{
		admin.POST("", h.Create)
		admin.DELETE("/:id", h.Delete)
	}
}
