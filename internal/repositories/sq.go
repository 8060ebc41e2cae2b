package repositories

import (
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
)

var SqBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var ErrBadQuery = errors.New("bad query")

// UniqueViolation is the postgres SQLSTATE for a unique constraint failure.
const UniqueViolation = "23505"

// FormatTime renders database timestamps the way the API returns them.
func FormatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
