// Package validation implements the field-level business rules for book
// records. Validators are pure functions of their input and the current
// date; failures are values with human-readable reasons, never errors.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Field length bounds.
const (
	maxTitleLen  = 80
	maxAuthorLen = 30
)

// Validator checks candidate record fields. The clock is injectable so
// the publication-year bound can be pinned in tests.
type Validator struct {
	now func() time.Time
}

// New returns a Validator using the wall clock.
func New() *Validator {
	return &Validator{now: time.Now}
}

// NewWithClock returns a Validator with a fixed clock.
func NewWithClock(now func() time.Time) *Validator {
	return &Validator{now: now}
}

// Title checks that a title is non-empty after trimming and at most 80
// characters.
func (v *Validator) Title(title string) (bool, string) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return false, "title must not be empty"
	}
	if len([]rune(trimmed)) > maxTitleLen {
		return false, fmt.Sprintf("title must be at most %d characters", maxTitleLen)
	}
	return true, ""
}

// Author checks that an author name is non-empty after trimming and at
// most 30 characters.
func (v *Validator) Author(author string) (bool, string) {
	trimmed := strings.TrimSpace(author)
	if trimmed == "" {
		return false, "author must not be empty"
	}
	if len([]rune(trimmed)) > maxAuthorLen {
		return false, fmt.Sprintf("author must be at most %d characters", maxAuthorLen)
	}
	return true, ""
}

// Year checks that the raw value parses as an integer no greater than
// the current calendar year plus one. There is deliberately no lower
// bound; arbitrarily old (even negative) years are accepted.
func (v *Validator) Year(raw string) (bool, string) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return false, "publication year must be a valid integer"
	}
	limit := v.now().Year() + 1
	if year > limit {
		return false, fmt.Sprintf("publication year must not be greater than %d", limit)
	}
	return true, ""
}

// Price checks that the raw value parses as a non-negative real number.
func (v *Validator) Price(raw string) (bool, string) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return false, "price must be a valid number"
	}
	if price < 0 {
		return false, "price must not be negative"
	}
	return true, ""
}

// ID checks that the raw value parses as an integer greater than zero.
func (v *Validator) ID(raw string) (bool, string) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return false, "id must be a valid integer"
	}
	if id < 1 {
		return false, "id must be a positive number"
	}
	return true, ""
}

// Book runs all four business-field validators against raw candidate
// values and collects every failing reason. It never short-circuits:
// import needs the full list of problems per row, not just the first.
func (v *Validator) Book(title, author, year, price string) (bool, []string) {
	var reasons []string

	if ok, reason := v.Title(title); !ok {
		reasons = append(reasons, reason)
	}
	if ok, reason := v.Author(author); !ok {
		reasons = append(reasons, reason)
	}
	if ok, reason := v.Year(year); !ok {
		reasons = append(reasons, reason)
	}
	if ok, reason := v.Price(price); !ok {
		reasons = append(reasons, reason)
	}

	return len(reasons) == 0, reasons
}
