package types

// AddItemRequest creates a new item in a period's todos or routines list.
type AddItemRequest struct {
	Content      string       `json:"content"`
	Type         ItemType     `json:"type"`
	Category     Category     `json:"category,omitempty"`
	TodoCategory TodoCategory `json:"todo_category,omitempty"`
	TargetCount  int          `json:"target_count,omitempty"`
	Note         string       `json:"note,omitempty"`
	Color        string       `json:"color,omitempty"`
}

// AddItemResponse returns the ID of the newly created item.
type AddItemResponse struct {
	Success bool   `json:"success"`
	ItemID  string `json:"item_id"`
}

// UpdateItemRequest patches mutable item fields. Nil pointers leave the
// corresponding field untouched.
type UpdateItemRequest struct {
	Content *string `json:"content,omitempty"`
	Note    *string `json:"note,omitempty"`
	Color   *string `json:"color,omitempty"`
}

// SuccessResponse is the uniform envelope for write operations that carry
// no further payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// DeleteItemResponse reports how many items the deletion cascade removed,
// including the targeted item itself.
type DeleteItemResponse struct {
	Success      bool `json:"success"`
	DeletedCount int  `json:"deleted_count"`
}

// ToggleResponse reports the item's completion state after the cascade
// settled.
type ToggleResponse struct {
	Success   bool `json:"success"`
	Completed bool `json:"completed"`
}

// AssignRequest copies an item into a descendant slot. Exactly one of
// TargetPeriodID or TimeSlot must be set.
type AssignRequest struct {
	TargetPeriodID string    `json:"target_period_id,omitempty"`
	TimeSlot       TimeOfDay `json:"time_slot,omitempty"`
	SubContent     string    `json:"sub_content,omitempty"`
}

// AssignResponse returns the ID of the linked copy created in the target
// slot.
type AssignResponse struct {
	Success bool   `json:"success"`
	ItemID  string `json:"item_id"`
}

// UpdateHeaderRequest patches a period's goal and motto.
type UpdateHeaderRequest struct {
	Goal  *string `json:"goal,omitempty"`
	Motto *string `json:"motto,omitempty"`
}

// UpdateRecordRequest replaces the daily record of a DAY period.
type UpdateRecordRequest struct {
	Content    string   `json:"content"`
	Mood       Mood     `json:"mood,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
	Gratitude  []string `json:"gratitude,omitempty"`
}

// AddEventRequest creates a recurring annual event.
type AddEventRequest struct {
	Name  string `json:"name"`
	Month int    `json:"month"`
	Day   int    `json:"day"`
	Lunar bool   `json:"lunar,omitempty"`
}

// AddEventResponse returns the ID of the newly created event.
type AddEventResponse struct {
	Success bool   `json:"success"`
	EventID string `json:"event_id"`
}

// CurrentPeriodResponse resolves "today" at the requested level.
type CurrentPeriodResponse struct {
	PeriodID string  `json:"period_id"`
	Period   *Period `json:"period"`
}

// ChildPeriodsResponse lists a period's children with per-child summaries.
type ChildPeriodsResponse struct {
	PeriodID string         `json:"period_id"`
	Children []ChildSummary `json:"children"`
}

// SearchResponse lists item search matches.
type SearchResponse struct {
	Matches []SearchMatch `json:"matches"`
}

// EventsResponse lists annual events.
type EventsResponse struct {
	Events []AnnualEvent `json:"events"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	PeriodCount int64  `json:"period_count"`
}
