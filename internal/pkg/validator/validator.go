package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidDateTime checks if a string is a valid ISO8601 timestamp.
// Accepts formats like: "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00+05:30"
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, dateTimeStr)
	if err == nil {
		return t, true
	}

	t, err = time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}

// Time-of-day validation, "HH:MM" 24h clock.
var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func IsValidTimeOfDay(s string) bool {
	return timeOfDayRegex.MatchString(s)
}

// Employee code validation: "EMP-" followed by 4 digits.
var employeeCodeRegex = regexp.MustCompile(`^EMP-\d{4}$`)

func IsValidEmployeeCode(code string) bool {
	return employeeCodeRegex.MatchString(code)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
