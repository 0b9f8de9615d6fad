package models

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is how due dates are typed and shown in forms
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date (want YYYY-MM-DD)")

// ParseDueDate parses a YYYY-MM-DD date as local midnight. An empty string
// means no due date.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

// ParseTags splits a comma-separated tag list
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// FormatDueDate is the inverse of ParseDueDate
func FormatDueDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
