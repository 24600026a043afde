package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/events-platform-backend/internal/database"
	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/timeutil"
)

func (*Repository) CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) error {
	loc, err := timeutil.LoadLocation(event.Timezone)
	if err != nil {
		return err
	}

	// occurrence_date поддерживает уникальность (series_slug, occurrence_date):
	// одна материализация на локальный календарный день серии.
	var occurrenceDate *string
	if event.SeriesSlug != nil {
		d := timeutil.Format(event.StartDate, loc, "2006-01-02")
		occurrenceDate = &d
	}

	qb := database.PSQL.
		Insert(database.EventsTable).
		Columns(
			"slug",
			"series_slug",
			"occurrence_date",
			"user_id",
			"group_id",
			"name",
			"description",
			"location",
			"capacity",
			"require_approval",
			"categories",
			"start_date",
			"end_date",
			"timezone",
		).
		Values(
			event.Slug,
			event.SeriesSlug,
			occurrenceDate,
			event.UserID,
			event.GroupID,
			event.Name,
			event.Description,
			event.Location,
			event.Capacity,
			event.RequireApproval,
			event.Categories,
			event.StartDate,
			event.EndDate,
			event.Timezone,
		).
		Suffix("returning created_at")

	if err := q.Get(ctx, &event.CreatedAt, qb); err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
