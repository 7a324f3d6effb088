package validation

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skillsenselab/authflow/errors"
)

// FieldError names one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Checker accumulates field problems across a chain of checks and reports
// them all at once, so a caller fixing a config file sees every mistake in
// one pass instead of one per run.
type Checker struct {
	problems []FieldError
}

// New returns an empty Checker.
func New() *Checker {
	return &Checker{}
}

// Add records a problem directly.
func (c *Checker) Add(field, message string) {
	c.problems = append(c.problems, FieldError{Field: field, Message: message})
}

// Problems returns everything recorded so far.
func (c *Checker) Problems() []FieldError {
	return c.problems
}

// Err collapses the recorded problems into a single Validation error, or
// returns nil when every check passed.
func (c *Checker) Err() error {
	if len(c.problems) == 0 {
		return nil
	}

	parts := make([]string, len(c.problems))
	for i, p := range c.problems {
		parts[i] = p.Field + " " + p.Message
	}

	appErr := errors.Validation(strings.Join(parts, "; "))
	appErr.Details = map[string]any{"fields": c.problems}
	return appErr
}

// Require records a problem when value is empty or whitespace.
func (c *Checker) Require(field, value string) *Checker {
	if strings.TrimSpace(value) == "" {
		c.Add(field, "is required")
	}
	return c
}

// URL records a problem when a non-empty value is not an absolute URL.
// Empty values pass; combine with Require when the field is mandatory.
func (c *Checker) URL(field, value string) *Checker {
	if value == "" {
		return c
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		c.Add(field, "must be an absolute URL")
	}
	return c
}

// OneOf records a problem when a non-empty value is not in allowed.
func (c *Checker) OneOf(field, value string, allowed ...string) *Checker {
	if value == "" {
		return c
	}
	for _, a := range allowed {
		if value == a {
			return c
		}
	}
	c.Add(field, "must be one of "+strings.Join(allowed, ", "))
	return c
}

// MaxLen records a problem when value exceeds n bytes.
func (c *Checker) MaxLen(field, value string, n int) *Checker {
	if len(value) > n {
		c.Add(field, fmt.Sprintf("must be at most %d characters", n))
	}
	return c
}

// Check records message against field when ok is false, for conditions the
// named checks do not cover.
func (c *Checker) Check(ok bool, field, message string) *Checker {
	if !ok {
		c.Add(field, message)
	}
	return c
}
