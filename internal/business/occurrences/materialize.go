package occurrences

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/timeutil"
	"github.com/google/uuid"
)

// GetOrCreate returns the materialized occurrence of the series on the local
// calendar day of date, materializing it first if it is still virtual. The
// date string is either "2006-01-02" (a calendar date in the series
// timezone) or a full RFC3339 instant, decomposed timezone-aware.
func (s *Service) GetOrCreate(ctx context.Context, seriesSlug, date string) (*model.Event, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	series, loc, err := s.resolveSeries(ctx, seriesSlug)
	if err != nil {
		return nil, err
	}

	t, err := timeutil.ParseDate(date, loc)
	if err != nil {
		return nil, err
	}

	events, err := s.listSeriesEvents(ctx, series)
	if err != nil {
		return nil, err
	}
	if existing := findEventOnDay(events, t, loc); existing != nil {
		return existing, nil
	}

	return s.materializeAt(ctx, series, loc, t)
}

// Materialize creates the concrete event record for one occurrence date.
// Calling it twice for the same date returns the existing record both times.
func (s *Service) Materialize(ctx context.Context, seriesSlug, date string) (*model.Event, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	series, loc, err := s.resolveSeries(ctx, seriesSlug)
	if err != nil {
		return nil, err
	}

	t, err := timeutil.ParseDate(date, loc)
	if err != nil {
		return nil, err
	}

	return s.materializeAt(ctx, series, loc, t)
}

func (s *Service) materializeAt(ctx context.Context, series *model.Series, loc *time.Location, date time.Time) (*model.Event, error) {
	template, err := s.resolveOrSynthesizeTemplate(ctx, series, loc)
	if err != nil {
		return nil, err
	}

	// The rule is defined in local wall-clock terms: the candidate is pinned
	// to the template's time-of-day before validation, so an instant like
	// 2026-03-12T03:00:00Z handed in for a 19:00 America/Vancouver series
	// lands on local day 2026-03-11, not 2026-03-12.
	tmplStart := template.StartDate
	valid, err := series.Rule.IsValidOccurrence(date, template.StartDate, loc, &tmplStart)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidOccurrenceDate,
			timeutil.Format(date, loc, "2006-01-02"))
	}

	events, err := s.listSeriesEvents(ctx, series)
	if err != nil {
		return nil, err
	}
	if existing := findEventOnDay(events, date, loc); existing != nil {
		return existing, nil
	}

	start := timeutil.AtLocalTime(date, template.StartDate, loc)
	event := s.newOccurrenceEvent(series, template, start, loc)

	if err := s.eventsRepository.CreateEvent(ctx, s.db, event); err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			// A concurrent materialization won the unique constraint on
			// (series, occurrence day); return its record.
			return s.findExistingOnDay(ctx, series, loc, date)
		}
		return nil, timeoutErr(fmt.Errorf("eventsRepository.CreateEvent: %w", err))
	}

	s.logger.Infow("materialized occurrence",
		"series", series.Slug,
		"event", event.Slug,
		"date", timeutil.Format(start, loc, "2006-01-02"))

	return event, nil
}

// newOccurrenceEvent copies the template's properties onto a record for the
// new start, preserving the template's duration and layering any
// series-level overrides on top.
func (s *Service) newOccurrenceEvent(series *model.Series, template *model.Event, start time.Time, loc *time.Location) *model.Event {
	event := &model.Event{
		Slug: uuid.NewString(),
		EventCreate: model.EventCreate{
			SeriesSlug:      &series.Slug,
			UserID:          series.UserID,
			GroupID:         series.GroupID,
			Name:            template.Name,
			Description:     template.Description,
			Location:        template.Location,
			Capacity:        template.Capacity,
			RequireApproval: template.RequireApproval,
			Categories:      template.Categories,
			StartDate:       start,
			EndDate:         start.Add(template.EndDate.Sub(template.StartDate)),
			Timezone:        series.Timezone,
		},
	}
	series.Overrides.Apply(event)

	return event
}

func (s *Service) findExistingOnDay(ctx context.Context, series *model.Series, loc *time.Location, date time.Time) (*model.Event, error) {
	events, err := s.listSeriesEvents(ctx, series)
	if err != nil {
		return nil, err
	}
	if existing := findEventOnDay(events, date, loc); existing != nil {
		return existing, nil
	}

	return nil, fmt.Errorf("%w: conflicting occurrence disappeared", model.ErrNoRecord)
}

// resolveOrSynthesizeTemplate resolves the template event; when the series
// has no linked events at all it persists a minimal default template and
// links it, so materialization always has a source of truth.
func (s *Service) resolveOrSynthesizeTemplate(ctx context.Context, series *model.Series, loc *time.Location) (*model.Event, error) {
	template, err := s.resolveTemplate(ctx, s.db, series)
	if err != nil {
		return nil, err
	}
	if template != nil {
		return template, nil
	}

	s.logger.Warnw("series has no linked events, synthesizing default template", "series", series.Slug)

	start := timeutil.AtLocalTime(series.CreatedAt, series.CreatedAt, loc)
	template = &model.Event{
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

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, timeoutErr(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx)

	if err := s.eventsRepository.CreateEvent(ctx, tx, template); err != nil {
		return nil, timeoutErr(fmt.Errorf("eventsRepository.CreateEvent: %w", err))
	}
	if err := s.seriesRepository.SetTemplateEvent(ctx, tx, series.Slug, &template.Slug); err != nil {
		return nil, timeoutErr(fmt.Errorf("seriesRepository.SetTemplateEvent: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, timeoutErr(fmt.Errorf("commit tx: %w", err))
	}

	series.TemplateEventSlug = &template.Slug
	return template, nil
}
