package database

import (
	"errors"

	"github.com/jackc/pgconn"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation проверяет, является ли ошибка нарушением
// уникального ограничения.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
