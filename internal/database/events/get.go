package events

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/events-platform-backend/internal/database"
	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/jackc/pgx/v4"
)

func (*Repository) GetEventBySlug(ctx context.Context, q database.Queryable, slug string) (*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"slug": slug})

	dto := &eventDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToEvent(dto), nil
}

func (*Repository) GetEventsBySeries(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"series_slug": filter.SeriesSlug}).
		OrderBy("start_date")

	if filter.Limit != 0 {
		qb = qb.Limit(filter.Limit).Offset(filter.Offset)
	}

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		res[i] = mapToEvent(d)
	}

	return res, nil
}
