package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err was caused by a unique constraint.
// The accrual and reminder jobs rely on this to treat a duplicate insert as
// already-processed work. GORM translates driver duplicates to
// ErrDuplicatedKey; the pgconn check covers raw Exec paths that bypass the
// translation.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}
