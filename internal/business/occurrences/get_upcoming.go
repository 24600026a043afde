package occurrences

import (
	"context"
	"time"

	"github.com/SergeyKozhin/events-platform-backend/internal/config"
	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/recurrence"
	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/timeutil"
)

// GetUpcoming merges the series' persisted events with the dates generated
// from its rule. Each result is either materialized (event attached) or
// virtual; matching is by local calendar day in the series timezone, because
// a materialized record may store a time that drifted from the generated
// instant. With includePast the window opens at the generation anchor
// instead of today.
func (s *Service) GetUpcoming(ctx context.Context, seriesSlug string, count int, includePast bool) (*model.OccurrenceList, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	series, loc, err := s.resolveSeries(ctx, seriesSlug)
	if err != nil {
		return nil, err
	}

	if count <= 0 {
		count = config.UpcomingDefaultCount()
	}

	anchor, source, err := s.generationAnchor(ctx, series)
	if err != nil {
		return nil, err
	}

	var startAfter *time.Time
	if !includePast {
		// Local midnight today, exclusive bound shifted so today itself
		// still qualifies.
		sa := timeutil.StartOfDay(s.now(), loc).Add(-time.Nanosecond)
		startAfter = &sa
	}

	dates, err := series.Rule.Generate(anchor, recurrence.Options{
		Location:   loc,
		Count:      count,
		StartAfter: startAfter,
	})
	if err != nil {
		return nil, err
	}

	events, err := s.listSeriesEvents(ctx, series)
	if err != nil {
		return nil, err
	}

	res := &model.OccurrenceList{AnchorSource: source}
	for _, d := range dates {
		occ := &model.Occurrence{Date: d}
		if e := findEventOnDay(events, d, loc); e != nil {
			occ.Materialized = true
			occ.Event = e
		}
		res.Occurrences = append(res.Occurrences, occ)
	}

	return res, nil
}

// generationAnchor prefers the template event's start. Falling back to the
// series creation time still works but loses the template's wall-clock
// time-of-day, so the degraded path is logged and reported in the result.
func (s *Service) generationAnchor(ctx context.Context, series *model.Series) (time.Time, model.AnchorSource, error) {
	template, err := s.resolveTemplate(ctx, s.db, series)
	if err != nil {
		return time.Time{}, model.AnchorSeriesCreated, err
	}
	if template == nil {
		s.logger.Warnw("no template event resolvable, anchoring on series creation time",
			"series", series.Slug)
		return series.CreatedAt, model.AnchorSeriesCreated, nil
	}

	return template.StartDate, model.AnchorTemplateEvent, nil
}
