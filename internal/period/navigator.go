package period

import (
	"time"

	"github.com/hyperengineering/lifegrid/internal/types"
)

// Plan geometry: six 5-year blocks per plan, five years per block.
const (
	blocksPerPlan = 6
	yearsPerBlock = 5
)

// WeekSpan is one Monday..Sunday span produced by the month-week
// computation.
type WeekSpan struct {
	Index  int // 1-based week-of-month
	Monday time.Time
	Sunday time.Time
}

// Contains reports whether the span covers the given date.
func (w WeekSpan) Contains(t time.Time) bool {
	d := dateOnly(t)
	return !d.Before(w.Monday) && !d.After(w.Sunday)
}

// Children returns the ordered child period IDs of id. baseYear anchors the
// FIVE_YEAR blocks. DAY periods have no children. Out-of-range calendar
// coordinates are not rejected; they normalize through time.Date overflow,
// matching the permissive ID handling throughout this package.
func Children(id string, baseYear int) []string {
	ident := Decode(id)
	c := ident.Coords

	switch ident.Level {
	case types.LevelThirtyYear:
		out := make([]string, 0, blocksPerPlan)
		for i := 0; i < blocksPerPlan; i++ {
			out = append(out, Encode(types.LevelFiveYear, Coords{BlockIndex: i}))
		}
		return out

	case types.LevelFiveYear:
		idx := clamp(c.BlockIndex, 0, blocksPerPlan-1)
		start := baseYear + idx*yearsPerBlock
		out := make([]string, 0, yearsPerBlock)
		for y := start; y < start+yearsPerBlock; y++ {
			out = append(out, Encode(types.LevelYear, Coords{Year: y}))
		}
		return out

	case types.LevelYear:
		out := make([]string, 0, 4)
		for q := 1; q <= 4; q++ {
			out = append(out, Encode(types.LevelQuarter, Coords{Year: c.Year, Quarter: q}))
		}
		return out

	case types.LevelQuarter:
		q := defaultOne(c.Quarter)
		first := (q-1)*3 + 1
		out := make([]string, 0, 3)
		for m := first; m < first+3; m++ {
			out = append(out, Encode(types.LevelMonth, Coords{Year: c.Year, Month: m}))
		}
		return out

	case types.LevelMonth:
		weeks := MonthWeeks(c.Year, defaultOne(c.Month))
		out := make([]string, 0, len(weeks))
		for _, w := range weeks {
			out = append(out, Encode(types.LevelWeek, Coords{
				Year:        c.Year,
				Month:       defaultOne(c.Month),
				WeekOfMonth: w.Index,
			}))
		}
		return out

	case types.LevelWeek:
		monday := weekMonday(c)
		out := make([]string, 0, 7)
		for i := 0; i < 7; i++ {
			d := monday.AddDate(0, 0, i)
			out = append(out, Encode(types.LevelDay, Coords{
				Year:  d.Year(),
				Month: int(d.Month()),
				Day:   d.Day(),
			}))
		}
		return out
	}
	return nil
}

// Parent returns the parent period ID of id, or ok=false for the plan root.
// For an ISO-form WEEK the parent month is the month containing the ISO
// week's Monday; weeks straddling a month boundary resolve to the Monday's
// month, an approximation inherent to the ambiguous ID form.
func Parent(id string, baseYear int) (string, bool) {
	ident := Decode(id)
	c := ident.Coords

	switch ident.Level {
	case types.LevelThirtyYear:
		return "", false

	case types.LevelFiveYear:
		return ThirtyYearID, true

	case types.LevelYear:
		idx := clamp((c.Year-baseYear)/yearsPerBlock, 0, blocksPerPlan-1)
		return Encode(types.LevelFiveYear, Coords{BlockIndex: idx}), true

	case types.LevelQuarter:
		return Encode(types.LevelYear, Coords{Year: c.Year}), true

	case types.LevelMonth:
		q := (defaultOne(c.Month) + 2) / 3
		return Encode(types.LevelQuarter, Coords{Year: c.Year, Quarter: q}), true

	case types.LevelWeek:
		if c.Month != 0 {
			return Encode(types.LevelMonth, Coords{Year: c.Year, Month: c.Month}), true
		}
		monday := ISOWeekMonday(c.Year, defaultOne(c.ISOWeek))
		return Encode(types.LevelMonth, Coords{
			Year:  monday.Year(),
			Month: int(monday.Month()),
		}), true

	case types.LevelDay:
		month := defaultOne(c.Month)
		w := weekForDay(c.Year, month, defaultOne(c.Day))
		return Encode(types.LevelWeek, Coords{
			Year:        c.Year,
			Month:       month,
			WeekOfMonth: w,
		}), true
	}
	return "", false
}

// Current resolves the period ID containing now at the requested level.
func Current(level types.Level, baseYear int, now time.Time) string {
	y, m, d := now.Date()

	switch level {
	case types.LevelThirtyYear:
		return ThirtyYearID
	case types.LevelFiveYear:
		idx := clamp((y-baseYear)/yearsPerBlock, 0, blocksPerPlan-1)
		return Encode(types.LevelFiveYear, Coords{BlockIndex: idx})
	case types.LevelYear:
		return Encode(types.LevelYear, Coords{Year: y})
	case types.LevelQuarter:
		return Encode(types.LevelQuarter, Coords{Year: y, Quarter: (int(m)-1)/3 + 1})
	case types.LevelMonth:
		return Encode(types.LevelMonth, Coords{Year: y, Month: int(m)})
	case types.LevelWeek:
		w := weekForDay(y, int(m), d)
		return Encode(types.LevelWeek, Coords{Year: y, Month: int(m), WeekOfMonth: w})
	case types.LevelDay:
		return Encode(types.LevelDay, Coords{Year: y, Month: int(m), Day: d})
	}
	return ThirtyYearID
}

// MonthWeeks computes the Monday-start weeks overlapping a month. The first
// week is anchored to the Monday on or before the 1st; the list continues
// until a week's Sunday reaches or passes the month's last day.
func MonthWeeks(year, month int) []WeekSpan {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1)

	monday := first.AddDate(0, 0, -mondayOffset(first))

	var weeks []WeekSpan
	for i := 1; ; i++ {
		sunday := monday.AddDate(0, 0, 6)
		weeks = append(weeks, WeekSpan{Index: i, Monday: monday, Sunday: sunday})
		if !sunday.Before(lastDay) {
			break
		}
		monday = sunday.AddDate(0, 0, 1)
	}
	return weeks
}

// ISOWeekMonday returns the Monday of the given ISO week, using the rule
// that week 1 is the week containing January 4th.
func ISOWeekMonday(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	week1Monday := jan4.AddDate(0, 0, -mondayOffset(jan4))
	return week1Monday.AddDate(0, 0, (week-1)*7)
}

// weekMonday resolves the Monday of a WEEK coordinate in either form.
func weekMonday(c Coords) time.Time {
	if c.Month != 0 {
		weeks := MonthWeeks(c.Year, c.Month)
		idx := defaultOne(c.WeekOfMonth)
		if idx > len(weeks) {
			idx = len(weeks)
		}
		return weeks[idx-1].Monday
	}
	return ISOWeekMonday(c.Year, defaultOne(c.ISOWeek))
}

// weekForDay locates the week-of-month containing the given day. A valid
// day always falls inside one of its month's weeks; the week-1 fallback
// covers coordinates mangled by date overflow.
func weekForDay(year, month, day int) int {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	for _, w := range MonthWeeks(d.Year(), int(d.Month())) {
		if w.Contains(d) {
			return w.Index
		}
	}
	return 1
}

// mondayOffset returns how many days t is past the most recent Monday.
func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
