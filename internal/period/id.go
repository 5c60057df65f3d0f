// Package period implements the calendar hierarchy: canonical period IDs
// and the parent/child navigation between the seven plan levels.
package period

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hyperengineering/lifegrid/internal/types"
)

// Coords holds the calendar coordinates of a period. A zero field means the
// coordinate is absent from the ID; consumers substitute 1 where a value is
// required. BlockIndex is the zero-based FIVE_YEAR block, so it uses -1 as
// its absent marker.
type Coords struct {
	BlockIndex  int // FIVE_YEAR: 0..5, -1 when absent
	Year        int
	Quarter     int // 1..4
	Month       int // 1..12
	ISOWeek     int // WEEK in iso form
	WeekOfMonth int // WEEK in month form, 1-based
	Day         int // 1..31
}

// Identity is the decoded form of a period ID.
type Identity struct {
	Level  types.Level
	Coords Coords
}

// ThirtyYearID is the single ID of the plan root.
const ThirtyYearID = "30y"

// Encode renders the canonical string ID for a level and its coordinates.
// Only the coordinate fields the level uses contribute to the ID.
func Encode(level types.Level, c Coords) string {
	switch level {
	case types.LevelThirtyYear:
		return ThirtyYearID
	case types.LevelFiveYear:
		idx := c.BlockIndex
		if idx < 0 {
			idx = 0
		}
		return fmt.Sprintf("5y-%d", idx)
	case types.LevelYear:
		return fmt.Sprintf("y-%d", c.Year)
	case types.LevelQuarter:
		return fmt.Sprintf("q-%d-%d", c.Year, defaultOne(c.Quarter))
	case types.LevelMonth:
		return fmt.Sprintf("m-%d-%02d", c.Year, defaultOne(c.Month))
	case types.LevelWeek:
		if c.Month != 0 {
			return fmt.Sprintf("w-%d-%02d-%d", c.Year, c.Month, defaultOne(c.WeekOfMonth))
		}
		return fmt.Sprintf("w-%d-%02d", c.Year, defaultOne(c.ISOWeek))
	case types.LevelDay:
		return fmt.Sprintf("d-%d-%02d-%02d", c.Year, defaultOne(c.Month), defaultOne(c.Day))
	}
	return ThirtyYearID
}

// Decode parses a canonical period ID. An unrecognized prefix decodes to the
// THIRTY_YEAR level rather than failing: malformed IDs degrade to the plan
// root instead of crashing a caller that only needs a level. Malformed
// numeric fields decode as absent coordinates.
func Decode(id string) Identity {
	parts := strings.Split(id, "-")
	coords := Coords{BlockIndex: -1}

	switch parts[0] {
	case "30y":
		return Identity{Level: types.LevelThirtyYear, Coords: coords}
	case "5y":
		coords.BlockIndex = num(parts, 1)
		if len(parts) < 2 {
			coords.BlockIndex = -1
		}
		return Identity{Level: types.LevelFiveYear, Coords: coords}
	case "y":
		coords.Year = num(parts, 1)
		return Identity{Level: types.LevelYear, Coords: coords}
	case "q":
		coords.Year = num(parts, 1)
		coords.Quarter = num(parts, 2)
		return Identity{Level: types.LevelQuarter, Coords: coords}
	case "m":
		coords.Year = num(parts, 1)
		coords.Month = num(parts, 2)
		return Identity{Level: types.LevelMonth, Coords: coords}
	case "w":
		coords.Year = num(parts, 1)
		if len(parts) >= 4 {
			coords.Month = num(parts, 2)
			coords.WeekOfMonth = num(parts, 3)
		} else {
			coords.ISOWeek = num(parts, 2)
		}
		return Identity{Level: types.LevelWeek, Coords: coords}
	case "d":
		coords.Year = num(parts, 1)
		coords.Month = num(parts, 2)
		coords.Day = num(parts, 3)
		return Identity{Level: types.LevelDay, Coords: coords}
	}
	return Identity{Level: types.LevelThirtyYear, Coords: coords}
}

// LevelOf is a convenience wrapper returning only the decoded level.
func LevelOf(id string) types.Level {
	return Decode(id).Level
}

// num parses parts[i] as an integer, returning 0 for a missing or
// malformed field.
func num(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(parts[i])
	if err != nil {
		return 0
	}
	return n
}

// defaultOne substitutes 1 for an absent coordinate.
func defaultOne(n int) int {
	if n == 0 {
		return 1
	}
	return n
}
