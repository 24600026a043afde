package series

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/events-platform-backend/internal/database"
	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/jackc/pgx/v4"
)

func (*Repository) GetSeriesBySlug(ctx context.Context, q database.Queryable, slug string) (*model.Series, error) {
	qb := baseQuery.
		Where(sq.Eq{"slug": slug})

	dto := &seriesDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToSeries(dto), nil
}
