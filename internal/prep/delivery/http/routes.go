package http

import (
	"github.com/gin-gonic/gin"
)

// MapRoutes registers the prep domain routes on the given group.
func MapRoutes(r *gin.RouterGroup, h Handler) {
	r.POST("/classify", h.Classify)
	r.GET("/events", h.Upcoming)
	r.GET("/events/:id/timeline", h.Timeline)
	r.GET("/events/:id/post-timeline", h.PostEvent)
	r.GET("/events/:id/suggestions", h.Suggestions)
	r.POST("/events/:id/actions", h.RecordActions)
	r.POST("/events/:id/template", h.SaveTemplate)
	r.DELETE("/templates", h.ClearTemplate)
}
