package series

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/events-platform-backend/internal/database"
)

func (*Repository) DeleteSeries(ctx context.Context, q database.Queryable, slug string) error {
	qb := database.PSQL.
		Delete(database.SeriesTable).
		Where(sq.Eq{"slug": slug})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
