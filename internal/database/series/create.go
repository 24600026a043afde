package series

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/events-platform-backend/internal/database"
	"github.com/SergeyKozhin/events-platform-backend/internal/model"
)

func (*Repository) CreateSeries(ctx context.Context, q database.Queryable, series *model.Series) error {
	weekdays, months := mapRuleColumns(series.Rule)

	qb := database.PSQL.
		Insert(database.SeriesTable).
		Columns(
			"slug",
			"name",
			"description",
			"user_id",
			"group_id",
			"frequency",
			"repeat_interval",
			"repeat_count",
			"repeat_until",
			"by_weekday",
			"by_month_day",
			"by_month",
			"by_set_pos",
			"template_event_slug",
			"timezone",
			"overrides",
		).
		Values(
			series.Slug,
			series.Name,
			series.Description,
			series.UserID,
			series.GroupID,
			int(series.Rule.Freq),
			series.Rule.Interval,
			series.Rule.Count,
			series.Rule.Until,
			weekdays,
			series.Rule.ByMonthDay,
			months,
			series.Rule.BySetPos,
			series.TemplateEventSlug,
			series.Timezone,
			mapFromOverrides(series.Overrides),
		).
		Suffix("returning created_at")

	if err := q.Get(ctx, &series.CreatedAt, qb); err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
