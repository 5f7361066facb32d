package security

import (
	"regexp"
	"strings"
)

// mutatingPatterns catch statements that change data or schema, including ones
// chained after a leading SELECT.
var mutatingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i);\s*DROP\s+`),
	regexp.MustCompile(`(?i);\s*DELETE\s+`),
	regexp.MustCompile(`(?i);\s*INSERT\s+`),
	regexp.MustCompile(`(?i);\s*UPDATE\s+`),
	regexp.MustCompile(`(?i);\s*ALTER\s+`),
	regexp.MustCompile(`(?i);\s*CREATE\s+`),
	regexp.MustCompile(`(?i);\s*REPLACE\s+`),
	regexp.MustCompile(`(?i);\s*VACUUM\b`),
	regexp.MustCompile(`(?i);\s*PRAGMA\s+`),
	regexp.MustCompile(`(?i)\bATTACH\s+(DATABASE\s+)?'`),
	regexp.MustCompile(`(?i)\bDETACH\s+`),
	regexp.MustCompile(`(?i)\bINTO\s+OUTFILE\b`),
	regexp.MustCompile(`(?i)\bload_extension\s*\(`),
}

// SQLValidator decides whether generated SQL is read-only. It never rewrites SQL.
type SQLValidator struct{}

func NewSQLValidator() *SQLValidator {
	return &SQLValidator{}
}

// CheckReadOnly returns an empty string for a read-only statement, otherwise the reason
// it is not.
func (v *SQLValidator) CheckReadOnly(sql string) string {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return "SQL is empty"
	}

	upperSQL := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upperSQL, "SELECT") && !strings.HasPrefix(upperSQL, "WITH") {
		return "statement is not a SELECT: " + firstWord(upperSQL)
	}

	for _, pattern := range mutatingPatterns {
		if pattern.MatchString(trimmed) {
			return "mutating pattern detected: " + pattern.String()
		}
	}
	return ""
}

func firstWord(s string) string {
	if i := strings.IndexAny(s, " \t\r\n("); i > 0 {
		return s[:i]
	}
	return s
}
