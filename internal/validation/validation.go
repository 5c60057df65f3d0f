// Package validation holds the field validators shared by the API handlers.
// Period IDs are deliberately not validated here: malformed IDs degrade to
// the plan root by design, so the ID codec stays fail-open.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hyperengineering/lifegrid/internal/types"
)

// MaxContentLength bounds item content, goals, mottos and record text.
const MaxContentLength = 2000

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Collector accumulates validation errors without failing on first.
type Collector struct {
	errors []ValidationError
}

// Add appends a validation error to the collector if non-nil.
func (c *Collector) Add(err *ValidationError) {
	if err != nil {
		c.errors = append(c.errors, *err)
	}
}

// HasErrors returns true if the collector has accumulated any errors.
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns all accumulated validation errors.
func (c *Collector) Errors() []ValidationError {
	return c.errors
}

// ValidateRequired returns an error if the value is empty after trimming.
func ValidateRequired(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// ValidateUTF8 returns an error if the value is not valid UTF-8.
func ValidateUTF8(field, value string) *ValidationError {
	if !utf8.ValidString(value) {
		return &ValidationError{Field: field, Message: "must be valid UTF-8"}
	}
	return nil
}

// ValidateMaxLength returns an error if the value exceeds max runes.
func ValidateMaxLength(field, value string, max int) *ValidationError {
	if utf8.RuneCountInString(value) > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("exceeds maximum length of %d characters", max),
		}
	}
	return nil
}

// ValidateItemType returns an error unless the value is todo or routine.
func ValidateItemType(field string, value types.ItemType) *ValidationError {
	if value != types.ItemTypeTodo && value != types.ItemTypeRoutine {
		return &ValidationError{Field: field, Message: "must be todo or routine"}
	}
	return nil
}

// ValidateCategory returns an error for an unknown non-empty category.
func ValidateCategory(field string, value types.Category) *ValidationError {
	if value != "" && !value.Valid() {
		return &ValidationError{Field: field, Message: "unknown category"}
	}
	return nil
}

// ValidateTodoCategory returns an error for an unknown non-empty todo
// category.
func ValidateTodoCategory(field string, value types.TodoCategory) *ValidationError {
	if value != "" && !value.Valid() {
		return &ValidationError{Field: field, Message: "unknown todo category"}
	}
	return nil
}

// ValidateMood returns an error for an unknown non-empty mood.
func ValidateMood(field string, value types.Mood) *ValidationError {
	if value != "" && !value.Valid() {
		return &ValidationError{Field: field, Message: "unknown mood"}
	}
	return nil
}

// ValidateLevel returns an error for an unknown level tag.
func ValidateLevel(field string, value types.Level) *ValidationError {
	if !value.Valid() {
		return &ValidationError{Field: field, Message: "unknown level"}
	}
	return nil
}

// ValidateMonthDay returns errors for calendar-impossible event dates.
// Day 1-31 is accepted for every month; annual events are date templates,
// not concrete dates.
func ValidateMonthDay(c *Collector, month, day int) {
	if month < 1 || month > 12 {
		c.Add(&ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if day < 1 || day > 31 {
		c.Add(&ValidationError{Field: "day", Message: "must be between 1 and 31"})
	}
}

// ValidateAddItemRequest validates the addItem payload.
func ValidateAddItemRequest(req types.AddItemRequest) []ValidationError {
	var c Collector
	c.Add(ValidateRequired("content", req.Content))
	c.Add(ValidateUTF8("content", req.Content))
	c.Add(ValidateMaxLength("content", req.Content, MaxContentLength))
	c.Add(ValidateItemType("type", req.Type))
	c.Add(ValidateCategory("category", req.Category))
	c.Add(ValidateTodoCategory("todo_category", req.TodoCategory))
	return c.Errors()
}

// ValidateUpdateRecordRequest validates the updateRecord payload.
func ValidateUpdateRecordRequest(req types.UpdateRecordRequest) []ValidationError {
	var c Collector
	c.Add(ValidateUTF8("content", req.Content))
	c.Add(ValidateMaxLength("content", req.Content, MaxContentLength))
	c.Add(ValidateMood("mood", req.Mood))
	return c.Errors()
}

// ValidateAddEventRequest validates the addEvent payload.
func ValidateAddEventRequest(req types.AddEventRequest) []ValidationError {
	var c Collector
	c.Add(ValidateRequired("name", req.Name))
	c.Add(ValidateUTF8("name", req.Name))
	c.Add(ValidateMaxLength("name", req.Name, MaxContentLength))
	ValidateMonthDay(&c, req.Month, req.Day)
	return c.Errors()
}
