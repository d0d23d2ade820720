package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"event-prep-engine/internal/middleware"
	"event-prep-engine/internal/model"
	"event-prep-engine/internal/prep"
	"event-prep-engine/pkg/response"
)

func (h *handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, prep.ErrEventNotFound):
		response.NotFound(c, "event not found")
	case errors.Is(err, prep.ErrInvalidInput),
		errors.Is(err, prep.ErrEventNotPreparable):
		response.Error(c, err, nil)
	default:
		response.InternalError(c, err)
	}
}

func scopeFrom(c *gin.Context) model.Scope {
	return middleware.GetScope(c)
}
