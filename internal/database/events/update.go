package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/events-platform-backend/internal/database"
	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/timeutil"
)

func (*Repository) UpdateEvent(ctx context.Context, q database.Queryable, event *model.Event) error {
	loc, err := timeutil.LoadLocation(event.Timezone)
	if err != nil {
		return err
	}

	var occurrenceDate *string
	if event.SeriesSlug != nil {
		d := timeutil.Format(event.StartDate, loc, "2006-01-02")
		occurrenceDate = &d
	}

	qb := database.PSQL.
		Update(database.EventsTable).
		SetMap(map[string]interface{}{
			"series_slug":      event.SeriesSlug,
			"occurrence_date":  occurrenceDate,
			"user_id":          event.UserID,
			"group_id":         event.GroupID,
			"name":             event.Name,
			"description":      event.Description,
			"location":         event.Location,
			"capacity":         event.Capacity,
			"require_approval": event.RequireApproval,
			"categories":       event.Categories,
			"start_date":       event.StartDate,
			"end_date":         event.EndDate,
			"timezone":         event.Timezone,
		}).
		Where(sq.Eq{"slug": event.Slug})

	if _, err := q.Exec(ctx, qb); err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

// DetachEventsFromSeries отвязывает все события серии, оставляя их
// как самостоятельные записи.
func (*Repository) DetachEventsFromSeries(ctx context.Context, q database.Queryable, seriesSlug string) error {
	qb := database.PSQL.
		Update(database.EventsTable).
		SetMap(map[string]interface{}{
			"series_slug":     nil,
			"occurrence_date": nil,
		}).
		Where(sq.Eq{"series_slug": seriesSlug})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
