package icsfeed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"event-prep-engine/internal/model"
	"event-prep-engine/pkg/log"
)

const maxOccurrencesPerEvent = 100

// Source pulls events from a published ICS feed. Recurring events are
// expanded into concrete instances inside the requested window; all-day
// entries are skipped since they carry no start time to prepare for.
type Source struct {
	l          log.Logger
	url        string
	httpClient *http.Client
}

func New(l log.Logger, url string, timeout time.Duration) *Source {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Source{
		l:          l,
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *Source) Name() string { return "icsfeed" }

func (s *Source) List(ctx context.Context, from, to time.Time) ([]model.EventRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ics feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ics feed error: %d", resp.StatusCode)
	}

	cal, err := ical.ParseCalendar(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ics feed: %w", err)
	}

	var records []model.EventRecord
	for _, ve := range cal.Events() {
		recs, err := s.expand(ve, from, to)
		if err != nil {
			// one broken VEVENT must not sink the whole feed
			s.l.Warnf(ctx, "skipping ics event: %v", err)
			continue
		}
		records = append(records, recs...)
	}
	return records, nil
}

func (s *Source) expand(ve *ical.VEvent, from, to time.Time) ([]model.EventRecord, error) {
	uid := ""
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		uid = p.Value
	}
	if uid == "" {
		return nil, fmt.Errorf("missing UID")
	}

	if allDay(ve) {
		return nil, nil
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", uid, err)
	}
	end, err := ve.GetEndAt()
	if err != nil || end.Before(start) {
		end = start.Add(time.Hour)
	}

	base := model.EventRecord{
		ID:        uid,
		Title:     propValue(ve, ical.ComponentPropertySummary),
		Location:  propValue(ve, ical.ComponentPropertyLocation),
		StartTime: start,
		EndTime:   end,
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		base.Description = p.Value
	}

	rawRule := ""
	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		rawRule = p.Value
	}
	if rawRule == "" {
		if start.Before(from) || start.After(to) {
			return nil, nil
		}
		return []model.EventRecord{base}, nil
	}

	r, err := rrule.StrToRRule(rawRule)
	if err != nil {
		return nil, fmt.Errorf("event %s: bad RRULE: %w", uid, err)
	}
	r.DTStart(start)

	duration := end.Sub(start)
	occurrences := r.Between(from.In(start.Location()), to.In(start.Location()), true)
	if len(occurrences) > maxOccurrencesPerEvent {
		occurrences = occurrences[:maxOccurrencesPerEvent]
	}

	records := make([]model.EventRecord, 0, len(occurrences))
	for _, occ := range occurrences {
		rec := base
		rec.ID = fmt.Sprintf("%s-%s", uid, occ.Format("20060102T150405"))
		rec.StartTime = occ
		rec.EndTime = occ.Add(duration)
		records = append(records, rec)
	}
	return records, nil
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		return p.Value
	}
	return ""
}

// allDay reports whether DTSTART is date-only (VALUE=DATE or no time part).
func allDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}
