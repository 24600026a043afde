package model

import (
	"time"

	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/recurrence"
)

type SeriesCreate struct {
	Slug              string
	Name              string
	Description       string
	UserID            int64
	GroupID           *int64
	Rule              recurrence.Rule
	TemplateEventSlug *string
	Timezone          string
	Overrides         *EventOverrides
}

type Series struct {
	CreatedAt time.Time
	SeriesCreate
}

// EventOverrides are series-level property overrides layered on top of the
// template event when an occurrence is materialized.
type EventOverrides struct {
	Location        *string
	Capacity        *int
	RequireApproval *bool
	Categories      []string
}

// Apply overlays the set overrides onto the event.
func (o *EventOverrides) Apply(e *Event) {
	if o == nil {
		return
	}
	if o.Location != nil {
		e.Location = *o.Location
	}
	if o.Capacity != nil {
		e.Capacity = *o.Capacity
	}
	if o.RequireApproval != nil {
		e.RequireApproval = *o.RequireApproval
	}
	if o.Categories != nil {
		e.Categories = o.Categories
	}
}

type SeriesUpdate struct {
	Name        *string
	Description *string
	Rule        *recurrence.Rule
	Timezone    *string
	Overrides   *EventOverrides
}

// DeleteMode selects what happens to materialized occurrences when their
// series is deleted.
type DeleteMode int

const (
	// DeleteModeCascade removes the series together with every linked event.
	DeleteModeCascade DeleteMode = iota
	// DeleteModeDetach keeps linked events as standalone records.
	DeleteModeDetach
)
