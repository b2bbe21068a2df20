package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Normalized unique-constraint keys, "table.column[,table.column]".
const (
	keyUserID       = "users.id"
	keyUserEmail    = "users.email"
	keyCategoryID   = "categories.id"
	keyCategoryName = "categories.name"
	keyLinkID       = "links.id"
	keyShareID      = "shares.id"
	keySharePair    = "shares.link_id,shares.user_id"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// pgConstraints maps the named Postgres constraints to normalized keys.
var pgConstraints = map[string]string{
	"users_pkey":                 keyUserID,
	"users_email_key":            keyUserEmail,
	"categories_pkey":            keyCategoryID,
	"categories_name_key":        keyCategoryName,
	"links_pkey":                 keyLinkID,
	"shares_pkey":                keyShareID,
	"shares_link_id_user_id_key": keySharePair,
}

// uniqueViolation returns the normalized key of the unique constraint err
// violated, or "" when err is not a unique violation.
func uniqueViolation(err error) string {
	if err == nil {
		return ""
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique &&
			sqliteErr.ExtendedCode != sqlite3.ErrConstraintPrimaryKey {
			return ""
		}
		// "UNIQUE constraint failed: shares.link_id, shares.user_id"
		_, cols, ok := strings.Cut(sqliteErr.Error(), "constraint failed: ")
		if !ok {
			return ""
		}
		return strings.ReplaceAll(cols, " ", "")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgConstraints[pgErr.ConstraintName]
	}

	return ""
}
