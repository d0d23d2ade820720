package http

import (
	"errors"

	"event-prep-engine/internal/model"
	"event-prep-engine/internal/pattern"
	"event-prep-engine/internal/prep"
	"event-prep-engine/internal/timeline"
)

type classifyReq struct {
	Text string `json:"text" binding:"required"`
}

func (r classifyReq) toInput() prep.ClassifyInput {
	return prep.ClassifyInput{Text: r.Text}
}

type classifyResp struct {
	Matched      bool     `json:"matched"`
	EventPattern string   `json:"event_pattern,omitempty"`
	Confidence   int      `json:"confidence,omitempty"`
	PrepTime     int      `json:"preparation_time,omitempty"`
	IsVirtual    bool     `json:"is_virtual,omitempty"`
	PackingList  []string `json:"packing_list,omitempty"`
}

func newClassifyResp(match *pattern.Match) classifyResp {
	if match == nil {
		return classifyResp{Matched: false}
	}
	return classifyResp{
		Matched:      true,
		EventPattern: match.PatternName,
		Confidence:   match.Confidence,
		PrepTime:     match.PreparationTime,
		IsVirtual:    match.IsVirtual,
		PackingList:  match.PackingList,
	}
}

type actionItem struct {
	TaskID          string `json:"task_id" binding:"required"`
	Action          string `json:"action" binding:"required,oneof=completed uncompleted skipped"`
	TimingOffsetMin int    `json:"timing_offset_min"`
	TaskType        string `json:"task_type"`
}

type recordActionsReq struct {
	Actions []actionItem `json:"actions" binding:"required,min=1,dive"`
}

func (r recordActionsReq) toInput(eventID string) prep.RecordActionsInput {
	in := prep.RecordActionsInput{EventID: eventID}
	for _, a := range r.Actions {
		in.Actions = append(in.Actions, model.TaskAction{
			TaskID:          a.TaskID,
			Action:          model.ActionType(a.Action),
			TimingOffsetMin: a.TimingOffsetMin,
			TaskType:        a.TaskType,
		})
	}
	return in
}

type saveTemplateReq struct {
	Tasks []timeline.Task `json:"tasks" binding:"required,min=1"`
}

func (r saveTemplateReq) toInput(eventID string) prep.SaveTemplateInput {
	return prep.SaveTemplateInput{EventID: eventID, Tasks: r.Tasks}
}

type clearTemplateReq struct {
	EventType    string `form:"event_type" binding:"required"`
	EventPattern string `form:"event_pattern" binding:"required"`
}

func (r clearTemplateReq) toInput() prep.ClearTemplateInput {
	return prep.ClearTemplateInput{EventType: r.EventType, EventPattern: r.EventPattern}
}

var errInvalidRequest = errors.New("invalid request")
