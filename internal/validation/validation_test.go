package validation

import (
	"strings"
	"testing"

	"github.com/hyperengineering/lifegrid/internal/types"
)

func TestValidateAddItemRequest_Valid(t *testing.T) {
	errs := ValidateAddItemRequest(types.AddItemRequest{
		Content:  "read a chapter",
		Type:     types.ItemTypeTodo,
		Category: types.CategoryGrowth,
	})
	if len(errs) != 0 {
		t.Errorf("errors = %v", errs)
	}
}

func TestValidateAddItemRequest_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		req   types.AddItemRequest
		field string
	}{
		{"empty content", types.AddItemRequest{Type: types.ItemTypeTodo}, "content"},
		{"whitespace content", types.AddItemRequest{Content: "   ", Type: types.ItemTypeTodo}, "content"},
		{"bad type", types.AddItemRequest{Content: "x", Type: "habit"}, "type"},
		{"bad category", types.AddItemRequest{Content: "x", Type: types.ItemTypeTodo, Category: "fun"}, "category"},
		{"bad todo category", types.AddItemRequest{Content: "x", Type: types.ItemTypeTodo, TodoCategory: "other"}, "todo_category"},
		{
			"over length",
			types.AddItemRequest{Content: strings.Repeat("a", MaxContentLength+1), Type: types.ItemTypeTodo},
			"content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateAddItemRequest(tt.req)
			if len(errs) == 0 {
				t.Fatal("expected validation errors")
			}
			found := false
			for _, e := range errs {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %q in %v", tt.field, errs)
			}
		})
	}
}

func TestValidateAddEventRequest(t *testing.T) {
	if errs := ValidateAddEventRequest(types.AddEventRequest{Name: "solstice", Month: 6, Day: 21}); len(errs) != 0 {
		t.Errorf("errors = %v", errs)
	}

	errs := ValidateAddEventRequest(types.AddEventRequest{Name: "", Month: 13, Day: 0})
	if len(errs) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(errs), errs)
	}
}

func TestValidateUpdateRecordRequest(t *testing.T) {
	if errs := ValidateUpdateRecordRequest(types.UpdateRecordRequest{Content: "fine", Mood: types.MoodGood}); len(errs) != 0 {
		t.Errorf("errors = %v", errs)
	}
	if errs := ValidateUpdateRecordRequest(types.UpdateRecordRequest{Mood: "ecstatic"}); len(errs) != 1 {
		t.Errorf("errors = %v", errs)
	}
}

func TestCollector(t *testing.T) {
	var c Collector
	if c.HasErrors() {
		t.Error("new collector should have no errors")
	}
	c.Add(nil)
	if c.HasErrors() {
		t.Error("nil adds should be ignored")
	}
	c.Add(&ValidationError{Field: "x", Message: "bad"})
	if !c.HasErrors() || len(c.Errors()) != 1 {
		t.Errorf("errors = %v", c.Errors())
	}
}
