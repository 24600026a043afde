// Package occurrences coordinates the projection of a recurrence rule onto
// concrete event records: merging persisted occurrences with generated
// virtual dates, materializing occurrences lazily and idempotently, and
// propagating template edits forward in time.
package occurrences

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyKozhin/events-platform-backend/internal/config"
	"github.com/SergeyKozhin/events-platform-backend/internal/database"
	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/timeutil"
	"go.uber.org/zap"
)

type Service struct {
	db     database.PGX
	logger *zap.SugaredLogger

	seriesRepository seriesRepository
	eventsRepository eventsRepository

	// now is replaceable in tests.
	now func() time.Time
}

type seriesRepository interface {
	GetSeriesBySlug(ctx context.Context, q database.Queryable, slug string) (*model.Series, error)
	SetTemplateEvent(ctx context.Context, q database.Queryable, slug string, eventSlug *string) error
}

type eventsRepository interface {
	CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) error
	GetEventBySlug(ctx context.Context, q database.Queryable, slug string) (*model.Event, error)
	GetEventsBySeries(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error)
	UpdateEvent(ctx context.Context, q database.Queryable, event *model.Event) error
}

func NewService(db database.PGX, logger *zap.SugaredLogger, seriesRepo seriesRepository, eventsRepo eventsRepository) *Service {
	return &Service{
		db:               db,
		logger:           logger,
		seriesRepository: seriesRepo,
		eventsRepository: eventsRepo,
		now:              time.Now,
	}
}

// opContext bounds collaborator calls when the caller supplied no deadline of
// its own. Expiry surfaces as model.ErrTimeout, never as a hang.
func (s *Service) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, config.CollaboratorTimeout())
}

func timeoutErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", model.ErrTimeout, err)
	}
	return err
}

func (s *Service) resolveSeries(ctx context.Context, slug string) (*model.Series, *time.Location, error) {
	series, err := s.seriesRepository.GetSeriesBySlug(ctx, s.db, slug)
	if err != nil {
		if errors.Is(err, model.ErrNoRecord) {
			return nil, nil, fmt.Errorf("%w: %q", model.ErrSeriesNotFound, slug)
		}
		return nil, nil, timeoutErr(fmt.Errorf("seriesRepository.GetSeriesBySlug: %w", err))
	}

	loc, err := timeutil.LoadLocation(series.Timezone)
	if err != nil {
		return nil, nil, err
	}

	return series, loc, nil
}

// resolveTemplate finds the event record whose properties seed new
// occurrences: the series' declared template, or, when that record is gone,
// any event still linked to the series. A nil result with nil error means
// the series has no linked events at all.
func (s *Service) resolveTemplate(ctx context.Context, q database.Queryable, series *model.Series) (*model.Event, error) {
	if series.TemplateEventSlug != nil {
		template, err := s.eventsRepository.GetEventBySlug(ctx, q, *series.TemplateEventSlug)
		if err == nil {
			return template, nil
		}
		if !errors.Is(err, model.ErrNoRecord) {
			return nil, timeoutErr(fmt.Errorf("eventsRepository.GetEventBySlug: %w", err))
		}
		s.logger.Warnw("declared template event missing, falling back to linked events",
			"series", series.Slug, "template", *series.TemplateEventSlug)
	}

	linked, err := s.eventsRepository.GetEventsBySeries(ctx, q, model.EventsFilter{SeriesSlug: series.Slug, Limit: 1})
	if err != nil {
		return nil, timeoutErr(fmt.Errorf("eventsRepository.GetEventsBySeries: %w", err))
	}
	if len(linked) == 0 {
		return nil, nil
	}

	return linked[0], nil
}

// listSeriesEvents pages through every event linked to the series.
func (s *Service) listSeriesEvents(ctx context.Context, series *model.Series) ([]*model.Event, error) {
	pageSize := config.EventsPageSize()

	var res []*model.Event
	for offset := uint64(0); ; offset += pageSize {
		page, err := s.eventsRepository.GetEventsBySeries(ctx, s.db, model.EventsFilter{
			SeriesSlug: series.Slug,
			Limit:      pageSize,
			Offset:     offset,
		})
		if err != nil {
			return nil, timeoutErr(fmt.Errorf("eventsRepository.GetEventsBySeries: %w", err))
		}

		res = append(res, page...)
		if uint64(len(page)) < pageSize {
			return res, nil
		}
	}
}

func findEventOnDay(events []*model.Event, date time.Time, loc *time.Location) *model.Event {
	for _, e := range events {
		if timeutil.SameLocalDay(e.StartDate, date, loc) {
			return e
		}
	}
	return nil
}
