package period

import (
	"testing"

	"github.com/hyperengineering/lifegrid/internal/types"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		level types.Level
		c     Coords
		want  string
	}{
		{"thirty year", types.LevelThirtyYear, Coords{}, "30y"},
		{"five year block 0", types.LevelFiveYear, Coords{BlockIndex: 0}, "5y-0"},
		{"five year block 5", types.LevelFiveYear, Coords{BlockIndex: 5}, "5y-5"},
		{"year", types.LevelYear, Coords{Year: 2026}, "y-2026"},
		{"quarter", types.LevelQuarter, Coords{Year: 2026, Quarter: 3}, "q-2026-3"},
		{"month zero padded", types.LevelMonth, Coords{Year: 2026, Month: 7}, "m-2026-07"},
		{"iso week", types.LevelWeek, Coords{Year: 2026, ISOWeek: 5}, "w-2026-05"},
		{"month week", types.LevelWeek, Coords{Year: 2026, Month: 7, WeekOfMonth: 2}, "w-2026-07-2"},
		{"day", types.LevelDay, Coords{Year: 2026, Month: 1, Day: 9}, "d-2026-01-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.level, tt.c); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	ids := []string{
		"30y",
		"5y-0",
		"5y-3",
		"y-2026",
		"q-2026-1",
		"q-2026-4",
		"m-2026-01",
		"m-2026-12",
		"w-2026-09",
		"w-2026-33",
		"w-2026-02-1",
		"w-2026-11-5",
		"d-2026-02-28",
		"d-2026-12-31",
	}

	for _, id := range ids {
		ident := Decode(id)
		if got := Encode(ident.Level, ident.Coords); got != id {
			t.Errorf("Encode(Decode(%q)) = %q", id, got)
		}
	}
}

func TestDecode_Levels(t *testing.T) {
	tests := []struct {
		id   string
		want types.Level
	}{
		{"30y", types.LevelThirtyYear},
		{"5y-2", types.LevelFiveYear},
		{"y-2026", types.LevelYear},
		{"q-2026-2", types.LevelQuarter},
		{"m-2026-06", types.LevelMonth},
		{"w-2026-24", types.LevelWeek},
		{"w-2026-06-3", types.LevelWeek},
		{"d-2026-06-15", types.LevelDay},
	}

	for _, tt := range tests {
		if got := LevelOf(tt.id); got != tt.want {
			t.Errorf("LevelOf(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestDecode_UnknownPrefixFallsBackToThirtyYear(t *testing.T) {
	for _, id := range []string{"", "bogus", "x-2026-01", "year-2026", "---"} {
		ident := Decode(id)
		if ident.Level != types.LevelThirtyYear {
			t.Errorf("Decode(%q).Level = %q, want %q", id, ident.Level, types.LevelThirtyYear)
		}
	}
}

func TestDecode_MalformedNumbersDecodeAsAbsent(t *testing.T) {
	ident := Decode("q-2026-bad")
	if ident.Coords.Year != 2026 {
		t.Errorf("Year = %d, want 2026", ident.Coords.Year)
	}
	if ident.Coords.Quarter != 0 {
		t.Errorf("Quarter = %d, want 0 (absent)", ident.Coords.Quarter)
	}

	// Absent coordinates default to 1 on re-encode.
	if got := Encode(ident.Level, ident.Coords); got != "q-2026-1" {
		t.Errorf("re-encode = %q, want %q", got, "q-2026-1")
	}
}
