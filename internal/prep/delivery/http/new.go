package http

import (
	"github.com/gin-gonic/gin"

	"event-prep-engine/internal/prep"
	"event-prep-engine/pkg/log"
)

// Handler is the public interface for the prep HTTP delivery layer.
type Handler interface {
	Classify(c *gin.Context)
	Upcoming(c *gin.Context)
	Timeline(c *gin.Context)
	PostEvent(c *gin.Context)
	Suggestions(c *gin.Context)
	RecordActions(c *gin.Context)
	SaveTemplate(c *gin.Context)
	ClearTemplate(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc prep.UseCase
}

// New creates the HTTP handler for the prep domain.
func New(l log.Logger, uc prep.UseCase) Handler {
	return &handler{l: l, uc: uc}
}
