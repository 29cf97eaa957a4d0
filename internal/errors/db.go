package errors

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// "Key (username)=(alice) already exists."
	reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)
	// `... is still referenced from table "sessions".`
	reReferencedFrom = regexp.MustCompile(`is still referenced from table "?([^"]+)"?`)
	// `... is not present in table "users".`
	reNotPresent = regexp.MustCompile(`is not present in table "?([^"]+)"?`)
)

// tableNouns maps table names to the noun used in client messages.
var tableNouns = map[string]string{
	"users":    "user",
	"cars":     "car",
	"sessions": "session",
}

// MapDBError maps database errors to AppError instances:
//   - context deadline/cancellation → Timeout/Canceled
//   - pgx.ErrNoRows → NotFound
//   - unique violation → Conflict (with Field when it can be determined)
//   - foreign key violation → ForeignKey
//   - check and NOT NULL violations → Validation
//
// Unrecognized errors are returned unchanged.
func MapDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, ErrCodeTimeout, "Request timed out. Please try again.")
	case errors.Is(err, context.Canceled):
		return Wrap(err, ErrCodeCanceled, "Request was canceled.")
	case errors.Is(err, pgx.ErrNoRows):
		return Wrap(err, ErrCodeNotFound, "Resource not found")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		e := Wrap(pgErr, ErrCodeConflict, "This value already exists. Please choose a different one.")
		e.Field = uniqueField(pgErr)
		return e
	case pgerrcode.ForeignKeyViolation:
		return Wrap(pgErr, ErrCodeForeignKey, foreignKeyMessage(pgErr))
	case pgerrcode.CheckViolation:
		e := Wrap(pgErr, ErrCodeValidation, "Invalid data. Please check your input.")
		if pgErr.ColumnName != "" {
			e.Message, e.Field = "This field has an invalid value.", pgErr.ColumnName
		}
		return e
	case pgerrcode.NotNullViolation:
		e := Wrap(pgErr, ErrCodeValidation, "Required field is missing. Please check your input.")
		if pgErr.ColumnName != "" {
			e.Message, e.Field = "This field is required.", pgErr.ColumnName
		}
		return e
	default:
		return Wrap(pgErr, ErrCodeInternal, "A database error occurred. Please try again.")
	}
}

// uniqueField resolves the violating column from metadata, then the detail
// text, then a "<table>_<column>_key" constraint name.
func uniqueField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return m[1]
	}
	parts := strings.Split(pgErr.ConstraintName, "_")
	if len(parts) == 3 && (parts[2] == "key" || parts[2] == "unique") && !isFunctionName(parts[1]) {
		return parts[1]
	}
	return ""
}

func foreignKeyMessage(pgErr *pgconn.PgError) string {
	if m := reReferencedFrom.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return "Cannot delete because this item is in use by a " + tableNoun(m[1]) + "."
	}
	if m := reNotPresent.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return "Cannot complete operation because the referenced " + tableNoun(m[1]) + " does not exist."
	}
	if pgErr.TableName != "" {
		return "Cannot complete operation because this item is in use by a " + tableNoun(pgErr.TableName) + "."
	}
	return "Cannot complete operation because this item is in use."
}

func tableNoun(table string) string {
	table = strings.ToLower(strings.TrimSpace(table))
	if n, ok := tableNouns[table]; ok {
		return n
	}
	return strings.ReplaceAll(table, "_", " ")
}

// isFunctionName reports names that show up in expression-index constraint names.
func isFunctionName(s string) bool {
	switch strings.ToLower(s) {
	case "lower", "upper", "trim", "ltrim", "rtrim", "md5":
		return true
	}
	return false
}
