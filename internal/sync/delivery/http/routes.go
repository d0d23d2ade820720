package http

import (
	"github.com/gin-gonic/gin"
)

// MapRoutes registers the sync routes on the given group.
func MapRoutes(r *gin.RouterGroup, h Handler) {
	r.GET("/status", h.Status)
	r.POST("/connectivity", h.SetConnectivity)
}
