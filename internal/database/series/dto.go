package series

import (
	"time"

	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/recurrence"
)

type seriesDTO struct {
	Slug              string
	Name              string
	Description       string
	UserID            int64
	GroupID           *int64
	Frequency         int
	RepeatInterval    int
	RepeatCount       *int
	RepeatUntil       *time.Time
	ByWeekday         []int
	ByMonthDay        []int
	ByMonth           []int
	BySetPos          []int
	TemplateEventSlug *string
	Timezone          string
	Overrides         *overridesDTO
	CreatedAt         time.Time
}

type overridesDTO struct {
	Location        *string  `json:"location,omitempty"`
	Capacity        *int     `json:"capacity,omitempty"`
	RequireApproval *bool    `json:"require_approval,omitempty"`
	Categories      []string `json:"categories,omitempty"`
}

func mapToSeries(dto *seriesDTO) *model.Series {
	weekdays := make([]time.Weekday, len(dto.ByWeekday))
	for i, d := range dto.ByWeekday {
		weekdays[i] = time.Weekday(d)
	}
	if len(weekdays) == 0 {
		weekdays = nil
	}

	months := make([]time.Month, len(dto.ByMonth))
	for i, m := range dto.ByMonth {
		months[i] = time.Month(m)
	}
	if len(months) == 0 {
		months = nil
	}

	var overrides *model.EventOverrides
	if dto.Overrides != nil {
		overrides = &model.EventOverrides{
			Location:        dto.Overrides.Location,
			Capacity:        dto.Overrides.Capacity,
			RequireApproval: dto.Overrides.RequireApproval,
			Categories:      dto.Overrides.Categories,
		}
	}

	return &model.Series{
		CreatedAt: dto.CreatedAt,
		SeriesCreate: model.SeriesCreate{
			Slug:        dto.Slug,
			Name:        dto.Name,
			Description: dto.Description,
			UserID:      dto.UserID,
			GroupID:     dto.GroupID,
			Rule: recurrence.Rule{
				Freq:       recurrence.Frequency(dto.Frequency),
				Interval:   dto.RepeatInterval,
				Count:      dto.RepeatCount,
				Until:      dto.RepeatUntil,
				ByWeekday:  weekdays,
				ByMonthDay: emptyToNil(dto.ByMonthDay),
				ByMonth:    months,
				BySetPos:   emptyToNil(dto.BySetPos),
			},
			TemplateEventSlug: dto.TemplateEventSlug,
			Timezone:          dto.Timezone,
			Overrides:         overrides,
		},
	}
}

func mapFromOverrides(o *model.EventOverrides) *overridesDTO {
	if o == nil {
		return nil
	}
	return &overridesDTO{
		Location:        o.Location,
		Capacity:        o.Capacity,
		RequireApproval: o.RequireApproval,
		Categories:      o.Categories,
	}
}

func mapRuleColumns(r recurrence.Rule) (weekdays, months []int) {
	for _, d := range r.ByWeekday {
		weekdays = append(weekdays, int(d))
	}
	for _, m := range r.ByMonth {
		months = append(months, int(m))
	}
	return weekdays, months
}

func emptyToNil(s []int) []int {
	if len(s) == 0 {
		return nil
	}
	return s
}
