package http

import (
	"github.com/gin-gonic/gin"

	"event-prep-engine/pkg/response"
)

// Classify godoc
// @Summary     Classify event text
// @Description Matches free text against the pattern table and returns the best pattern with a confidence score.
// @Tags        Prep
// @Accept      json
// @Produce     json
// @Param       body body classifyReq true "Event text"
// @Success     200 {object} classifyResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/prep/classify [POST]
func (h *handler) Classify(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processClassifyReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	match, err := h.uc.Classify(ctx, scopeFrom(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Classify: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newClassifyResp(match))
}

// Upcoming godoc
// @Summary     List upcoming events
// @Description Returns future events annotated with preparation state and the next event needing transport coordination.
// @Tags        Prep
// @Produce     json
// @Success     200 {object} prep.UpcomingOutput
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/prep/events [GET]
func (h *handler) Upcoming(c *gin.Context) {
	ctx := c.Request.Context()

	out, err := h.uc.Upcoming(ctx, scopeFrom(c))
	if err != nil {
		h.l.Errorf(ctx, "uc.Upcoming: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, out)
}

// Timeline godoc
// @Summary     Get preparation timeline
// @Description Returns the preparation timeline for an event, served from a learned template when one is confident enough.
// @Tags        Prep
// @Produce     json
// @Param       id path string true "Event ID"
// @Success     200 {object} prep.TimelineOutput
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     400 {object} response.Resp "Event not preparable"
// @Router      /api/v1/prep/events/{id}/timeline [GET]
func (h *handler) Timeline(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := eventIDParam(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.Timeline(ctx, scopeFrom(c), id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Timeline: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, out)
}

// PostEvent godoc
// @Summary     Get follow-up timeline
// @Description Returns the follow-up timeline counting forward from the event end.
// @Tags        Prep
// @Produce     json
// @Param       id path string true "Event ID"
// @Success     200 {object} prep.TimelineOutput
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/prep/events/{id}/post-timeline [GET]
func (h *handler) PostEvent(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := eventIDParam(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.PostEvent(ctx, scopeFrom(c), id)
	if err != nil {
		h.l.Errorf(ctx, "uc.PostEvent: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, out)
}

// Suggestions godoc
// @Summary     Get contextual suggestions
// @Description Returns preparation hints derived from the event's matched pattern.
// @Tags        Prep
// @Produce     json
// @Param       id path string true "Event ID"
// @Success     200 {array} prep.Suggestion
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/prep/events/{id}/suggestions [GET]
func (h *handler) Suggestions(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := eventIDParam(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.Suggestions(ctx, scopeFrom(c), id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Suggestions: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, out)
}

// RecordActions godoc
// @Summary     Record task outcomes
// @Description Feeds completed/skipped task outcomes into the learning engine and notifies the event room.
// @Tags        Prep
// @Accept      json
// @Produce     json
// @Param       id   path string           true "Event ID"
// @Param       body body recordActionsReq true "Task outcomes"
// @Success     200 {object} learning.Result
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/prep/events/{id}/actions [POST]
func (h *handler) RecordActions(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := eventIDParam(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	req, err := h.processRecordActionsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.RecordActions(ctx, scopeFrom(c), req.toInput(id))
	if err != nil {
		h.l.Errorf(ctx, "uc.RecordActions: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, out)
}

// SaveTemplate godoc
// @Summary     Save customized timeline
// @Description Persists a user-customized timeline as the template for the event's type and pattern. Succeeds offline with a temporary id.
// @Tags        Prep
// @Accept      json
// @Produce     json
// @Param       id   path string          true "Event ID"
// @Param       body body saveTemplateReq true "Customized tasks"
// @Success     200 {object} template.Template
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/prep/events/{id}/template [POST]
func (h *handler) SaveTemplate(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := eventIDParam(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	req, err := h.processSaveTemplateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.SaveTemplate(ctx, scopeFrom(c), req.toInput(id))
	if err != nil {
		h.l.Errorf(ctx, "uc.SaveTemplate: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, out)
}

// ClearTemplate godoc
// @Summary     Clear a template
// @Description Removes the learned template for an event type and pattern. Clearing an absent key succeeds.
// @Tags        Prep
// @Produce     json
// @Param       event_type    query string true "Event type"
// @Param       event_pattern query string true "Event pattern"
// @Success     200 {object} response.Resp "OK"
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/prep/templates [DELETE]
func (h *handler) ClearTemplate(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processClearTemplateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.ClearTemplate(ctx, scopeFrom(c), req.toInput()); err != nil {
		h.l.Errorf(ctx, "uc.ClearTemplate: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, nil)
}
