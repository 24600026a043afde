package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/events-platform-backend/internal/database"
)

func (*Repository) DeleteEvent(ctx context.Context, q database.Queryable, slug string) error {
	qb := database.PSQL.
		Delete(database.EventsTable).
		Where(sq.Eq{"slug": slug})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) DeleteEventsBySeries(ctx context.Context, q database.Queryable, seriesSlug string) error {
	qb := database.PSQL.
		Delete(database.EventsTable).
		Where(sq.Eq{"series_slug": seriesSlug})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
