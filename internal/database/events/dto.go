package events

import (
	"time"

	"github.com/SergeyKozhin/events-platform-backend/internal/model"
)

type eventDTO struct {
	Slug            string
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
	CreatedAt       time.Time
}

func mapToEvent(dto *eventDTO) *model.Event {
	return &model.Event{
		Slug:      dto.Slug,
		CreatedAt: dto.CreatedAt,
		EventCreate: model.EventCreate{
			SeriesSlug:      dto.SeriesSlug,
			UserID:          dto.UserID,
			GroupID:         dto.GroupID,
			Name:            dto.Name,
			Description:     dto.Description,
			Location:        dto.Location,
			Capacity:        dto.Capacity,
			RequireApproval: dto.RequireApproval,
			Categories:      dto.Categories,
			StartDate:       dto.StartDate,
			EndDate:         dto.EndDate,
			Timezone:        dto.Timezone,
		},
	}
}
