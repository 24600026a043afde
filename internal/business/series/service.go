// Package series owns the lifecycle of event series: creation with eager
// rule validation, linkage to the template event, update, and deletion.
package series

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyKozhin/events-platform-backend/internal/database"
	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/recurrence"
	"go.uber.org/zap"
)

type Service struct {
	db     database.PGX
	logger *zap.SugaredLogger

	seriesRepository seriesRepository
	eventsRepository eventsRepository
}

type seriesRepository interface {
	CreateSeries(ctx context.Context, q database.Queryable, series *model.Series) error
	GetSeriesBySlug(ctx context.Context, q database.Queryable, slug string) (*model.Series, error)
	UpdateSeries(ctx context.Context, q database.Queryable, series *model.Series) error
	DeleteSeries(ctx context.Context, q database.Queryable, slug string) error
	SetTemplateEvent(ctx context.Context, q database.Queryable, slug string, eventSlug *string) error
}

type eventsRepository interface {
	CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) error
	GetEventBySlug(ctx context.Context, q database.Queryable, slug string) (*model.Event, error)
	UpdateEvent(ctx context.Context, q database.Queryable, event *model.Event) error
	DeleteEventsBySeries(ctx context.Context, q database.Queryable, seriesSlug string) error
	DetachEventsFromSeries(ctx context.Context, q database.Queryable, seriesSlug string) error
}

func NewService(db database.PGX, logger *zap.SugaredLogger, seriesRepo seriesRepository, eventsRepo eventsRepository) *Service {
	return &Service{
		db:               db,
		logger:           logger,
		seriesRepository: seriesRepo,
		eventsRepository: eventsRepo,
	}
}

func (s *Service) Get(ctx context.Context, slug string) (*model.Series, error) {
	series, err := s.seriesRepository.GetSeriesBySlug(ctx, s.db, slug)
	if err != nil {
		if errors.Is(err, model.ErrNoRecord) {
			return nil, fmt.Errorf("%w: %q", model.ErrSeriesNotFound, slug)
		}
		return nil, fmt.Errorf("seriesRepository.GetSeriesBySlug: %w", err)
	}

	return series, nil
}

// Describe renders the series' recurrence rule as human-readable text.
func (s *Service) Describe(rule recurrence.Rule) string {
	return rule.Describe()
}

func validateRule(rule recurrence.Rule) error {
	if err := rule.Validate(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidRecurrenceRule, err)
	}
	return nil
}
