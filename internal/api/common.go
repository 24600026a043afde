package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/recurrence"
)

type ruleReq struct {
	Frequency  string     `json:"frequency"`
	Interval   int        `json:"interval,omitempty"`
	Count      *int       `json:"count,omitempty"`
	Until      *time.Time `json:"until,omitempty"`
	ByWeekday  []string   `json:"by_weekday,omitempty"`
	ByMonthDay []int      `json:"by_month_day,omitempty"`
	ByMonth    []int      `json:"by_month,omitempty"`
	BySetPos   []int      `json:"by_set_pos,omitempty"`
}

var frequencies = map[string]recurrence.Frequency{
	"daily":   recurrence.Daily,
	"weekly":  recurrence.Weekly,
	"monthly": recurrence.Monthly,
	"yearly":  recurrence.Yearly,
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

func mapToRule(req *ruleReq) (recurrence.Rule, error) {
	freq, ok := frequencies[strings.ToLower(req.Frequency)]
	if !ok {
		return recurrence.Rule{}, fmt.Errorf("unknown frequency %q", req.Frequency)
	}

	rule := recurrence.Rule{
		Freq:       freq,
		Interval:   req.Interval,
		Count:      req.Count,
		Until:      req.Until,
		ByMonthDay: req.ByMonthDay,
		BySetPos:   req.BySetPos,
	}

	for _, d := range req.ByWeekday {
		day, ok := weekdays[strings.ToLower(d)]
		if !ok {
			return recurrence.Rule{}, fmt.Errorf("unknown weekday %q", d)
		}
		rule.ByWeekday = append(rule.ByWeekday, day)
	}
	for _, m := range req.ByMonth {
		rule.ByMonth = append(rule.ByMonth, time.Month(m))
	}

	return rule, nil
}

func mapFromRule(rule recurrence.Rule) *ruleReq {
	res := &ruleReq{
		Frequency:  strings.ToLower(rule.Freq.String()),
		Interval:   rule.Interval,
		Count:      rule.Count,
		Until:      rule.Until,
		ByMonthDay: rule.ByMonthDay,
		BySetPos:   rule.BySetPos,
	}
	for _, d := range rule.ByWeekday {
		res.ByWeekday = append(res.ByWeekday, strings.ToLower(d.String()))
	}
	for _, m := range rule.ByMonth {
		res.ByMonth = append(res.ByMonth, int(m))
	}
	return res
}

type overridesReq struct {
	Location        *string  `json:"location,omitempty"`
	Capacity        *int     `json:"capacity,omitempty"`
	RequireApproval *bool    `json:"require_approval,omitempty"`
	Categories      []string `json:"categories,omitempty"`
}

func mapToOverrides(req *overridesReq) *model.EventOverrides {
	if req == nil {
		return nil
	}
	return &model.EventOverrides{
		Location:        req.Location,
		Capacity:        req.Capacity,
		RequireApproval: req.RequireApproval,
		Categories:      req.Categories,
	}
}

type seriesResp struct {
	Slug            string        `json:"slug"`
	Name            string        `json:"name"`
	Description     string        `json:"description,omitempty"`
	UserID          int64         `json:"user_id"`
	GroupID         *int64        `json:"group_id,omitempty"`
	Rule            *ruleReq      `json:"rule"`
	RuleDescription string        `json:"rule_description"`
	TemplateEvent   *string       `json:"template_event,omitempty"`
	Timezone        string        `json:"timezone"`
	Overrides       *overridesReq `json:"overrides,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

func (a *Api) mapToSeriesResp(series *model.Series) *seriesResp {
	var overrides *overridesReq
	if series.Overrides != nil {
		overrides = &overridesReq{
			Location:        series.Overrides.Location,
			Capacity:        series.Overrides.Capacity,
			RequireApproval: series.Overrides.RequireApproval,
			Categories:      series.Overrides.Categories,
		}
	}

	return &seriesResp{
		Slug:            series.Slug,
		Name:            series.Name,
		Description:     series.Description,
		UserID:          series.UserID,
		GroupID:         series.GroupID,
		Rule:            mapFromRule(series.Rule),
		RuleDescription: a.seriesService.Describe(series.Rule),
		TemplateEvent:   series.TemplateEventSlug,
		Timezone:        series.Timezone,
		Overrides:       overrides,
		CreatedAt:       series.CreatedAt,
	}
}

type eventResp struct {
	Slug            string    `json:"slug"`
	SeriesSlug      *string   `json:"series_slug,omitempty"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Location        string    `json:"location,omitempty"`
	Capacity        int       `json:"capacity,omitempty"`
	RequireApproval bool      `json:"require_approval"`
	Categories      []string  `json:"categories,omitempty"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Timezone        string    `json:"timezone"`
}

func mapToEventResp(event *model.Event) *eventResp {
	return &eventResp{
		Slug:            event.Slug,
		SeriesSlug:      event.SeriesSlug,
		Name:            event.Name,
		Description:     event.Description,
		Location:        event.Location,
		Capacity:        event.Capacity,
		RequireApproval: event.RequireApproval,
		Categories:      event.Categories,
		StartDate:       event.StartDate,
		EndDate:         event.EndDate,
		Timezone:        event.Timezone,
	}
}

type occurrenceResp struct {
	Date         time.Time  `json:"date"`
	Materialized bool       `json:"materialized"`
	Event        *eventResp `json:"event,omitempty"`
}

type occurrenceListResp struct {
	Occurrences  []*occurrenceResp `json:"occurrences"`
	AnchorSource string            `json:"anchor_source"`
}

func mapToOccurrenceListResp(list *model.OccurrenceList) *occurrenceListResp {
	res := &occurrenceListResp{
		Occurrences:  make([]*occurrenceResp, len(list.Occurrences)),
		AnchorSource: list.AnchorSource.String(),
	}
	for i, occ := range list.Occurrences {
		o := &occurrenceResp{
			Date:         occ.Date,
			Materialized: occ.Materialized,
		}
		if occ.Event != nil {
			o.Event = mapToEventResp(occ.Event)
		}
		res.Occurrences[i] = o
	}
	return res
}
