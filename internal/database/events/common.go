package events

import "github.com/SergeyKozhin/events-platform-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("slug",
		"series_slug",
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
		"created_at",
	).
	From(database.EventsTable)
