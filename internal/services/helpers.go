package services

import (
	"errors"
	"strings"
	"time"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	dateLayout      = "2006-01-02"
)

// ErrDateFormat is returned when a date field is not YYYY-MM-DD.
var ErrDateFormat = errors.New("invalid date format, please use YYYY-MM-DD")

// NormalizePage applies the default page size and caps it at maxPageSize.
func NormalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// parseDate parses a calendar date. Dates are stored without a zone, so they
// are anchored at UTC midnight. A full RFC 3339 timestamp is accepted and
// truncated to its date.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if d, err := time.Parse(dateLayout, value); err == nil {
		return d, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, ErrDateFormat
}
