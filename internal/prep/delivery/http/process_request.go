package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

func (h *handler) processClassifyReq(c *gin.Context) (classifyReq, error) {
	var req classifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	return req, nil
}

func (h *handler) processRecordActionsReq(c *gin.Context) (recordActionsReq, error) {
	var req recordActionsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	return req, nil
}

func (h *handler) processSaveTemplateReq(c *gin.Context) (saveTemplateReq, error) {
	var req saveTemplateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	return req, nil
}

func (h *handler) processClearTemplateReq(c *gin.Context) (clearTemplateReq, error) {
	var req clearTemplateReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	return req, nil
}

func eventIDParam(c *gin.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", fmt.Errorf("%w: id is required", errInvalidRequest)
	}
	return id, nil
}
