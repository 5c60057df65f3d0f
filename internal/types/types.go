package types

import "time"

// Level identifies one of the seven calendar granularities, from the
// 30-year plan down to a single day.
type Level string

const (
	LevelThirtyYear Level = "30y"
	LevelFiveYear   Level = "5y"
	LevelYear       Level = "y"
	LevelQuarter    Level = "q"
	LevelMonth      Level = "m"
	LevelWeek       Level = "w"
	LevelDay        Level = "d"
)

// levelOrder fixes the top-down ordering of levels.
var levelOrder = []Level{
	LevelThirtyYear,
	LevelFiveYear,
	LevelYear,
	LevelQuarter,
	LevelMonth,
	LevelWeek,
	LevelDay,
}

// Levels returns all levels ordered from THIRTY_YEAR to DAY.
func Levels() []Level {
	out := make([]Level, len(levelOrder))
	copy(out, levelOrder)
	return out
}

// Valid reports whether l is one of the seven known levels.
func (l Level) Valid() bool {
	for _, lv := range levelOrder {
		if l == lv {
			return true
		}
	}
	return false
}

// Depth returns the zero-based position of the level in the hierarchy,
// or -1 for an unknown level.
func (l Level) Depth() int {
	for i, lv := range levelOrder {
		if l == lv {
			return i
		}
	}
	return -1
}

// Child returns the next level down, or the empty string for DAY and
// unknown levels.
func (l Level) Child() Level {
	d := l.Depth()
	if d < 0 || d == len(levelOrder)-1 {
		return ""
	}
	return levelOrder[d+1]
}

// ItemType distinguishes the two item collections a period owns directly.
type ItemType string

const (
	ItemTypeTodo    ItemType = "todo"
	ItemTypeRoutine ItemType = "routine"
)

// Category classifies goal and routine items.
type Category string

const (
	CategoryHealth        Category = "health"
	CategoryCareer        Category = "career"
	CategoryFinance       Category = "finance"
	CategoryRelationships Category = "relationships"
	CategoryGrowth        Category = "growth"
	CategoryLeisure       Category = "leisure"
)

// Categories lists every item category.
func Categories() []Category {
	return []Category{
		CategoryHealth,
		CategoryCareer,
		CategoryFinance,
		CategoryRelationships,
		CategoryGrowth,
		CategoryLeisure,
	}
}

// Valid reports whether c is one of the six categories.
func (c Category) Valid() bool {
	for _, cat := range Categories() {
		if c == cat {
			return true
		}
	}
	return false
}

// TodoCategory is the coarser classification for todo items.
type TodoCategory string

const (
	TodoCategoryWork     TodoCategory = "work"
	TodoCategoryPersonal TodoCategory = "personal"
	TodoCategoryErrand   TodoCategory = "errand"
)

// Valid reports whether t is one of the three todo categories.
func (t TodoCategory) Valid() bool {
	switch t {
	case TodoCategoryWork, TodoCategoryPersonal, TodoCategoryErrand:
		return true
	}
	return false
}

// TimeOfDay names one of the eight fixed time slots of a DAY period.
type TimeOfDay string

const (
	TimeDawn      TimeOfDay = "dawn"
	TimeMorning   TimeOfDay = "morning"
	TimeForenoon  TimeOfDay = "forenoon"
	TimeNoon      TimeOfDay = "noon"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
	TimeMidnight  TimeOfDay = "midnight"
)

// TimesOfDay lists the eight time slots in day order.
func TimesOfDay() []TimeOfDay {
	return []TimeOfDay{
		TimeDawn,
		TimeMorning,
		TimeForenoon,
		TimeNoon,
		TimeAfternoon,
		TimeEvening,
		TimeNight,
		TimeMidnight,
	}
}

// Valid reports whether t is one of the eight time slots.
func (t TimeOfDay) Valid() bool {
	for _, tod := range TimesOfDay() {
		if t == tod {
			return true
		}
	}
	return false
}

// Mood is the five-value mood scale of a daily record.
type Mood string

const (
	MoodGreat   Mood = "great"
	MoodGood    Mood = "good"
	MoodNeutral Mood = "neutral"
	MoodBad     Mood = "bad"
	MoodAwful   Mood = "awful"
)

// Valid reports whether m is one of the five moods.
func (m Mood) Valid() bool {
	switch m {
	case MoodGreat, MoodGood, MoodNeutral, MoodBad, MoodAwful:
		return true
	}
	return false
}

// Item is a unit of work or habit. The same logical item may appear as a
// value copy in more than one period document: the origin entry in a
// parent's todos/routines list, and linked copies in descendant slots,
// connected through ParentID/ChildIDs.
type Item struct {
	ID             string       `json:"id"`
	Content        string       `json:"content"`
	Completed      bool         `json:"completed"`
	Color          string       `json:"color,omitempty"`
	Category       Category     `json:"category,omitempty"`
	TodoCategory   TodoCategory `json:"todo_category,omitempty"`
	TargetCount    int          `json:"target_count,omitempty"`
	CurrentCount   int          `json:"current_count,omitempty"`
	Note           string       `json:"note,omitempty"`
	ParentID       string       `json:"parent_id,omitempty"`
	ChildIDs       []string     `json:"child_ids,omitempty"`
	OriginPeriodID string       `json:"origin_period_id,omitempty"`
	OriginType     ItemType     `json:"origin_type,omitempty"`
}

// Memo is one structured memo entry on a period.
type Memo struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// Period is the container of goals and items for one level + coordinate.
// Slots is keyed by child period ID; TimeSlots is populated only for DAY
// periods. Revision is the optimistic concurrency stamp assigned by the
// store: 0 for a period that has never been persisted.
type Period struct {
	ID        string               `json:"id"`
	Level     Level                `json:"level"`
	Goal      string               `json:"goal,omitempty"`
	Motto     string               `json:"motto,omitempty"`
	Memo      string               `json:"memo,omitempty"`
	Memos     []Memo               `json:"memos,omitempty"`
	Todos     []Item               `json:"todos"`
	Routines  []Item               `json:"routines"`
	Slots     map[string][]Item    `json:"slots,omitempty"`
	TimeSlots map[TimeOfDay][]Item `json:"time_slots,omitempty"`
	Revision  int64                `json:"-"`
	CreatedAt time.Time            `json:"-"`
	UpdatedAt time.Time            `json:"-"`
}

// NewPeriod returns an empty period for the given ID and level.
func NewPeriod(id string, level Level) *Period {
	return &Period{
		ID:       id,
		Level:    level,
		Todos:    []Item{},
		Routines: []Item{},
	}
}

// DailyRecord is the journal entry of one DAY period. It is an independent
// aggregate, not part of the item forest.
type DailyRecord struct {
	PeriodID   string    `json:"period_id"`
	Content    string    `json:"content"`
	Mood       Mood      `json:"mood,omitempty"`
	Highlights []string  `json:"highlights,omitempty"`
	Gratitude  []string  `json:"gratitude,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AnnualEvent is a recurring yearly date, independent of the period
// hierarchy. Lunar marks dates tracked on the lunar calendar.
type AnnualEvent struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Month     int       `json:"month"`
	Day       int       `json:"day"`
	Lunar     bool      `json:"lunar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary is the read-side completion roll-up of one period.
type Summary struct {
	PeriodID          string `json:"period_id"`
	Level             Level  `json:"level"`
	TodoCount         int    `json:"todo_count"`
	TodoCompleted     int    `json:"todo_completed"`
	RoutineCount      int    `json:"routine_count"`
	RoutineCompleted  int    `json:"routine_completed"`
	SlotItemCount     int    `json:"slot_item_count"`
	SlotItemCompleted int    `json:"slot_item_completed"`
	TotalCount        int    `json:"total_count"`
	TotalCompleted    int    `json:"total_completed"`
	CompletionRate    int    `json:"completion_rate"`
}

// ChildSummary pairs a child period ID with its summary for the
// child-periods listing.
type ChildSummary struct {
	PeriodID string  `json:"period_id"`
	Summary  Summary `json:"summary"`
}

// SearchMatch is one hit from an item search, carrying enough context to
// locate the item inside its period document.
type SearchMatch struct {
	PeriodID string `json:"period_id"`
	Level    Level  `json:"level"`
	List     string `json:"list"`
	SlotKey  string `json:"slot_key,omitempty"`
	Item     Item   `json:"item"`
}
