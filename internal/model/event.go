package model

import "time"

type EventCreate struct {
	SeriesSlug      *string
	UserID          int64
	GroupID         *int64
	Name            string
	Description     string
	Location        string
	Capacity        int
	RequireApproval bool
	Categories      []string
	StartDate       time.Time
	EndDate         time.Time
	Timezone        string
}

type Event struct {
	Slug      string
	CreatedAt time.Time
	EventCreate
}

// EventUpdate carries the properties that may change on a template event and
// be propagated to its occurrences. Nil fields are left untouched.
type EventUpdate struct {
	Name            *string
	Description     *string
	Location        *string
	Capacity        *int
	RequireApproval *bool
	Categories      []string
}

// Apply copies the set fields onto the event.
func (u *EventUpdate) Apply(e *Event) {
	if u.Name != nil {
		e.Name = *u.Name
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	if u.Capacity != nil {
		e.Capacity = *u.Capacity
	}
	if u.RequireApproval != nil {
		e.RequireApproval = *u.RequireApproval
	}
	if u.Categories != nil {
		e.Categories = u.Categories
	}
}

// Empty reports whether the update would change nothing.
func (u *EventUpdate) Empty() bool {
	return u.Name == nil &&
		u.Description == nil &&
		u.Location == nil &&
		u.Capacity == nil &&
		u.RequireApproval == nil &&
		u.Categories == nil
}

type EventsFilter struct {
	SeriesSlug string
	Limit      uint64
	Offset     uint64
}
