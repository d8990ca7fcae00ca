package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/JoeWHoward/DockerPlayground/internal/errs"
)

var (
	uniqueConstraintRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	sqliteColumnRe     = regexp.MustCompile(`constraint failed: ([A-Za-z0-9_]+)\.([A-Za-z0-9_]+)`)
	sqliteCheckRe      = regexp.MustCompile(`CHECK constraint failed: ([A-Za-z0-9_]+)`)
)

// tablePrefix marks the table an error belongs to, as in
// "table:address: record not found".
const tablePrefix = "table:"

// ErrCode reports the mapped sqlerr.Code for a given error, or Other when
// err was never converted into *Error.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into our custom sqlerr.Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// ConvertSQLiteError converts a modernc sqlite error into our custom sqlerr.Error.
//
// SQLite does not report table and column as fields, so they are parsed from
// messages such as "NOT NULL constraint failed: address.email_address".
// Check failures only name the constraint. Foreign key failures carry
// neither.
func ConvertSQLiteError(src *msqlite.Error) *Error {
	msg := src.Error()

	out := &Error{
		Code:         mapSQLiteCode(src.Code(), msg),
		Severity:     SeverityError,
		DatabaseCode: fmt.Sprintf("SQLITE_%d", src.Code()),
		Message:      msg,
		driverErr:    src,
	}

	if m := sqliteColumnRe.FindStringSubmatch(msg); len(m) == 3 {
		out.TableName = m[1]
		out.ColumnName = m[2]
	}
	if m := sqliteCheckRe.FindStringSubmatch(msg); len(m) == 2 {
		out.ConstraintName = m[1]
	}

	return out
}

func mapSQLiteCode(code int, msg string) Code {
	switch code {
	case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ForeignKeyViolation
	case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
		return UniqueViolation
	case sqlite3lib.SQLITE_CONSTRAINT_NOTNULL:
		return NotNullViolation
	case sqlite3lib.SQLITE_CONSTRAINT_CHECK:
		return CheckViolation
	}

	// Connections without extended result codes only say SQLITE_CONSTRAINT.
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ForeignKeyViolation
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return UniqueViolation
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return NotNullViolation
	case strings.Contains(msg, "CHECK constraint failed"):
		return CheckViolation
	}
	return Other
}

// singularize strips a plural "s", leaving words like "address" alone.
func singularize(word string) string {
	lower := strings.ToLower(word)
	if len(word) > 1 && strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") {
		return word[:len(word)-1]
	}
	return word
}

// generateErrorCode creates consistent "application error codes" from DB errors,
// in the form <DOMAIN>_<ACTION>, e.g. address + NotNullViolation => ADDRESS_REQUIRED.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := singularize(strings.ToUpper(tableName))

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, StringDataRightTruncation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces the client-facing message for sqlErr.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced when the column can be inferred.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case StringDataRightTruncation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value is too long", fieldName)
		}
		return "One or more values are too long"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name: a "<name>_id" column wins, then the
// singular table name, then "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		return humanizeText(singularize(tableName))
	}

	return "record"
}

// humanizeText converts snake_case into Title Case: "first_name" -> "First Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column from a constraint named
// "unique_<table>_<column>" or "<table>_<column>_(key|ukey)".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueConstraintRe.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - If already *errs.HTTPError: returned unchanged
//   - If a Postgres or SQLite constraint error: errs.NewBadRequestError
//   - If a missing row: errs.NewNotFoundError, naming the entity when the
//     error carries a "table:<name>:" prefix
//   - Otherwise: errs.NewInternalServerError
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return constraintError(ConvertPgError(pgerr))
	}

	var liteErr *msqlite.Error
	if errors.As(err, &liteErr) {
		sqlErr := ConvertSQLiteError(liteErr)
		if sqlErr.Code == CheckViolation && sqlErr.TableName == "" {
			sqlErr.TableName = tableFromError(err)
			sqlErr.ColumnName = checkColumn(sqlErr.ConstraintName, sqlErr.TableName)
		}
		return constraintError(sqlErr)
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		if table := tableFromError(err); table != "" {
			entityName := getEntityName(table, "")
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", entityName), true, nil)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}

// tableFromError returns the table named by a "table:<name>:" prefix in
// err's message, or "".
func tableFromError(err error) string {
	msg := err.Error()
	i := strings.Index(msg, tablePrefix)
	if i < 0 {
		return ""
	}
	table, _, _ := strings.Cut(msg[i+len(tablePrefix):], ":")
	return table
}

// checkColumn reads the column out of a constraint named
// "chk_<table>_<column>".
func checkColumn(constraintName, tableName string) string {
	if tableName == "" {
		return ""
	}
	column, ok := strings.CutPrefix(constraintName, "chk_"+tableName+"_")
	if !ok {
		return ""
	}
	return column
}

func constraintError(sqlErr *Error) error {
	errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
	userMessage := formatUserFriendlyMessage(sqlErr)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)

	case UniqueViolation:
		columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
		if columnName == "" {
			columnName = sqlErr.ColumnName
		}
		if columnName != "" {
			userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

	case NotNullViolation:
		fieldErrors := []errs.FieldError{
			{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: "is required",
			},
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

	case CheckViolation, StringDataRightTruncation:
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

	default:
		return errs.NewInternalServerError()
	}
}
