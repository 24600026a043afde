package series

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/events-platform-backend/internal/database"
	"github.com/SergeyKozhin/events-platform-backend/internal/model"
)

func (*Repository) UpdateSeries(ctx context.Context, q database.Queryable, series *model.Series) error {
	weekdays, months := mapRuleColumns(series.Rule)

	qb := database.PSQL.
		Update(database.SeriesTable).
		SetMap(map[string]interface{}{
			"name":                series.Name,
			"description":         series.Description,
			"frequency":           int(series.Rule.Freq),
			"repeat_interval":     series.Rule.Interval,
			"repeat_count":        series.Rule.Count,
			"repeat_until":        series.Rule.Until,
			"by_weekday":          weekdays,
			"by_month_day":        series.Rule.ByMonthDay,
			"by_month":            months,
			"by_set_pos":          series.Rule.BySetPos,
			"template_event_slug": series.TemplateEventSlug,
			"timezone":            series.Timezone,
			"overrides":           mapFromOverrides(series.Overrides),
		}).
		Where(sq.Eq{"slug": series.Slug})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

// SetTemplateEvent обновляет только ссылку на шаблонное событие.
func (*Repository) SetTemplateEvent(ctx context.Context, q database.Queryable, slug string, eventSlug *string) error {
	qb := database.PSQL.
		Update(database.SeriesTable).
		Set("template_event_slug", eventSlug).
		Where(sq.Eq{"slug": slug})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
