package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"event-prep-engine/internal/middleware"
	"event-prep-engine/pkg/response"
)

type connectivityReq struct {
	Online *bool `json:"online" binding:"required"`
}

// Status godoc
// @Summary     Sync status
// @Description Reports connectivity, pending write count, and the last flush outcome.
// @Tags        Sync
// @Produce     json
// @Success     200 {object} sync.Status
// @Router      /api/v1/sync/status [GET]
func (h *handler) Status(c *gin.Context) {
	ctx := c.Request.Context()
	response.OK(c, h.coordinator.Status(ctx, middleware.GetScope(c)))
}

// SetConnectivity godoc
// @Summary     Report connectivity
// @Description Records a connectivity change. An offline-to-online transition triggers a flush of pending writes.
// @Tags        Sync
// @Accept      json
// @Produce     json
// @Param       body body connectivityReq true "Connectivity state"
// @Success     200 {object} sync.Status
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/sync/connectivity [POST]
func (h *handler) SetConnectivity(c *gin.Context) {
	ctx := c.Request.Context()

	var req connectivityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("invalid request: %v", err), nil)
		return
	}

	h.monitor.SetOnline(ctx, *req.Online)
	response.OK(c, h.coordinator.Status(ctx, middleware.GetScope(c)))
}
