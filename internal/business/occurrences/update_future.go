package occurrences

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/timeutil"
)

// PropertyChanges is the accepted input of UpdateFutureOccurrences. The
// Template* fields are deprecated aliases still sent by older clients; they
// are collapsed onto the canonical fields here, at the entry boundary, so
// the propagation algorithm only ever sees one spelling.
// TODO: drop the aliases once the mobile clients are off the v1 payload.
type PropertyChanges struct {
	model.EventUpdate

	// Deprecated: use Location.
	TemplateLocation *string
	// Deprecated: use Capacity.
	TemplateCapacity *int
}

func (c PropertyChanges) normalize() model.EventUpdate {
	res := c.EventUpdate
	if res.Location == nil {
		res.Location = c.TemplateLocation
	}
	if res.Capacity == nil {
		res.Capacity = c.TemplateCapacity
	}
	return res
}

// UpdateFutureOccurrences applies the changes to the series' template event
// first, reloads it, and then propagates the reloaded template's values onto
// every materialized occurrence whose start falls on or after fromDate
// (boundary inclusive). Updating the template first means all affected
// occurrences converge on one consistent value even when the input used a
// deprecated field alias. Returns the number of occurrences updated.
func (s *Service) UpdateFutureOccurrences(ctx context.Context, seriesSlug, fromDate string, changes PropertyChanges) (int, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	update := changes.normalize()
	if update.Empty() {
		return 0, nil
	}

	series, loc, err := s.resolveSeries(ctx, seriesSlug)
	if err != nil {
		return 0, err
	}

	from, err := timeutil.ParseDate(fromDate, loc)
	if err != nil {
		return 0, err
	}

	template, err := s.resolveTemplate(ctx, s.db, series)
	if err != nil {
		return 0, err
	}
	if template == nil {
		return 0, fmt.Errorf("%w: series %q has no linked events", model.ErrTemplateNotFound, seriesSlug)
	}

	update.Apply(template)
	if err := s.eventsRepository.UpdateEvent(ctx, s.db, template); err != nil {
		return 0, timeoutErr(fmt.Errorf("eventsRepository.UpdateEvent: %w", err))
	}

	// Reload: propagation copies what the store now holds, not the raw
	// input.
	template, err = s.eventsRepository.GetEventBySlug(ctx, s.db, template.Slug)
	if err != nil {
		return 0, timeoutErr(fmt.Errorf("eventsRepository.GetEventBySlug: %w", err))
	}
	propagated := propagatedUpdate(template, update)

	events, err := s.listSeriesEvents(ctx, series)
	if err != nil {
		return 0, err
	}

	fromDay := timeutil.StartOfDay(from, loc)
	updated := 0
	for _, e := range events {
		if e.Slug == template.Slug {
			continue
		}
		if timeutil.StartOfDay(e.StartDate, loc).Before(fromDay) {
			continue
		}

		propagated.Apply(e)
		if err := s.eventsRepository.UpdateEvent(ctx, s.db, e); err != nil {
			s.logger.Errorw("failed to propagate update to occurrence, skipping",
				"series", seriesSlug, "event", e.Slug, "err", err)
			continue
		}
		updated++
	}

	return updated, nil
}

// propagatedUpdate restates the changed fields with the reloaded template's
// values.
func propagatedUpdate(template *model.Event, update model.EventUpdate) model.EventUpdate {
	res := model.EventUpdate{}
	if update.Name != nil {
		res.Name = &template.Name
	}
	if update.Description != nil {
		res.Description = &template.Description
	}
	if update.Location != nil {
		res.Location = &template.Location
	}
	if update.Capacity != nil {
		res.Capacity = &template.Capacity
	}
	if update.RequireApproval != nil {
		res.RequireApproval = &template.RequireApproval
	}
	if update.Categories != nil {
		res.Categories = template.Categories
	}
	return res
}
