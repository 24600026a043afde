package series

import "github.com/SergeyKozhin/events-platform-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("slug",
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
		"created_at",
	).
	From(database.SeriesTable)
