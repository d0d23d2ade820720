package http

import (
	"github.com/gin-gonic/gin"

	"event-prep-engine/internal/sync"
	"event-prep-engine/pkg/log"
)

// Handler exposes sync state over HTTP.
type Handler interface {
	Status(c *gin.Context)
	SetConnectivity(c *gin.Context)
}

type handler struct {
	l           log.Logger
	monitor     *sync.Monitor
	coordinator *sync.Coordinator
}

func New(l log.Logger, monitor *sync.Monitor, coordinator *sync.Coordinator) Handler {
	return &handler{l: l, monitor: monitor, coordinator: coordinator}
}
