package series

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/timeutil"
	"github.com/google/uuid"
)

// Create validates the rule and timezone, persists the series, and
// establishes the series↔template-event link inside one transaction, so the
// link is never observable as one-sided. When no template event is named, a
// minimal one is synthesized.
func (s *Service) Create(ctx context.Context, info *model.SeriesCreate) (*model.Series, error) {
	if err := validateRule(info.Rule); err != nil {
		return nil, err
	}

	loc, err := timeutil.LoadLocation(info.Timezone)
	if err != nil {
		return nil, err
	}
	if info.Timezone == "" {
		info.Timezone = "UTC"
	}

	if info.Slug == "" {
		info.Slug = uuid.NewString()
	}

	series := &model.Series{SeriesCreate: *info}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Template link is established after the insert; the slug column must
	// exist before the event can reference it.
	templateSlug := series.TemplateEventSlug
	series.TemplateEventSlug = nil

	if err := s.seriesRepository.CreateSeries(ctx, tx, series); err != nil {
		return nil, fmt.Errorf("seriesRepository.CreateSeries: %w", err)
	}

	var template *model.Event
	if templateSlug != nil {
		template, err = s.eventsRepository.GetEventBySlug(ctx, tx, *templateSlug)
		if err != nil {
			if errors.Is(err, model.ErrNoRecord) {
				return nil, fmt.Errorf("%w: %q", model.ErrTemplateNotFound, *templateSlug)
			}
			return nil, fmt.Errorf("eventsRepository.GetEventBySlug: %w", err)
		}
		template.SeriesSlug = &series.Slug
		if err := s.eventsRepository.UpdateEvent(ctx, tx, template); err != nil {
			return nil, fmt.Errorf("eventsRepository.UpdateEvent: %w", err)
		}
	} else {
		template = s.defaultTemplate(series, loc)
		if err := s.eventsRepository.CreateEvent(ctx, tx, template); err != nil {
			return nil, fmt.Errorf("eventsRepository.CreateEvent: %w", err)
		}
	}

	if err := s.seriesRepository.SetTemplateEvent(ctx, tx, series.Slug, &template.Slug); err != nil {
		return nil, fmt.Errorf("seriesRepository.SetTemplateEvent: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	series.TemplateEventSlug = &template.Slug

	s.logger.Infow("created series",
		"series", series.Slug, "template", template.Slug, "rule", series.Rule.Describe())

	return series, nil
}

func (s *Service) defaultTemplate(series *model.Series, loc *time.Location) *model.Event {
	start := time.Now().In(loc)
	template := &model.Event{
		Slug: uuid.NewString(),
		EventCreate: model.EventCreate{
			SeriesSlug: &series.Slug,
			UserID:     series.UserID,
			GroupID:    series.GroupID,
			Name:       series.Name,
			StartDate:  start,
			EndDate:    start.Add(time.Hour),
			Timezone:   series.Timezone,
		},
	}
	series.Overrides.Apply(template)

	return template
}
