package sqlutil

import (
	"database/sql"

	"github.com/google/uuid"
)

// Helpers for reading sqlc's sql.Null* columns into domain types.
// Scoring columns stay nil until the feed reports them.

// FromSqlInt32 converts sql.NullInt32 to Go int pointer
func FromSqlInt32(val sql.NullInt32) *int {
	if !val.Valid {
		return nil
	}
	i := int(val.Int32)
	return &i
}

// FromSqlInt16 converts sql.NullInt16 to Go int, zero when unset
func FromSqlInt16(val sql.NullInt16) int {
	if !val.Valid {
		return 0
	}
	return int(val.Int16)
}

// FromSqlString converts sql.NullString to Go string with default
func FromSqlString(val sql.NullString, defaultVal string) string {
	if !val.Valid {
		return defaultVal
	}
	return val.String
}

// FromNullUUID converts uuid.NullUUID to Go UUID pointer
func FromNullUUID(val uuid.NullUUID) *uuid.UUID {
	if !val.Valid {
		return nil
	}
	return &val.UUID
}
