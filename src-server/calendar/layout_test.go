package calendar_test

import (
	"testing"
	"time"

	"caldeck/src-server/calendar"
)

var testMetrics = calendar.Metrics{
	StartHour:      0,
	CellHeight:     72,
	MinEventHeight: 12,
}

func TestLayoutDisjointEventsAllInColumnZero(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	events := []calendar.Event{
		mkEvent("a", day.Add(8*time.Hour), day.Add(9*time.Hour), false),
		mkEvent("b", day.Add(10*time.Hour), day.Add(11*time.Hour), false),
		mkEvent("c", day.Add(12*time.Hour), day.Add(13*time.Hour), false),
	}

	for _, p := range calendar.LayoutDay(events, day, testMetrics) {
		if p.Column != 0 {
			t.Error("disjoint event landed in column", p.Column, "event", p.Event.ID)
		}
		if p.WidthFraction != 1.0 || p.Left != 0 {
			t.Error("column 0 should get full width, got", p.WidthFraction, p.Left)
		}
		if p.ZIndex != 10 {
			t.Error("column 0 z-index should be 10, got", p.ZIndex)
		}
	}
}

func TestLayoutOverlappingEventsNeverShareColumn(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	events := []calendar.Event{
		mkEvent("a", day.Add(9*time.Hour), day.Add(10*time.Hour), false),
		// touching endpoint: still a collision
		mkEvent("b", day.Add(10*time.Hour), day.Add(11*time.Hour), false),
		mkEvent("c", day.Add(9*time.Hour+30*time.Minute), day.Add(9*time.Hour+45*time.Minute), false),
	}

	placed := calendar.LayoutDay(events, day, testMetrics)
	byID := map[string]calendar.Positioned{}
	for _, p := range placed {
		byID[p.Event.ID] = p
	}
	for _, pair := range [][2]string{{"a", "b"}, {"a", "c"}} {
		if byID[pair[0]].Column == byID[pair[1]].Column {
			t.Error("overlapping events share column:", pair[0], pair[1])
		}
	}
}

// Day view, StartHour=0, 72px cells; 09:00-10:30 plus 09:30-09:45. The
// long event keeps column 0 at full width, the short one cascades into
// column 1.
func TestLayoutDayScenario(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	events := []calendar.Event{
		mkEvent("long", day.Add(9*time.Hour), day.Add(10*time.Hour+30*time.Minute), false),
		mkEvent("short", day.Add(9*time.Hour+30*time.Minute), day.Add(9*time.Hour+45*time.Minute), false),
	}

	placed := calendar.LayoutDay(events, day, testMetrics)
	if len(placed) != 2 {
		t.Fatal("expected 2 positioned events, got", len(placed))
	}
	byID := map[string]calendar.Positioned{}
	for _, p := range placed {
		byID[p.Event.ID] = p
	}

	long := byID["long"]
	if long.Column != 0 || long.WidthFraction != 1.0 || long.Left != 0 {
		t.Error("long event should own column 0 at full width:", long)
	}
	if long.Top != 9*72 {
		t.Error("long event top should be 648, got", long.Top)
	}
	if long.Height != 1.5*72 {
		t.Error("long event height should be 108, got", long.Height)
	}

	short := byID["short"]
	if short.Column != 1 {
		t.Error("short event should land in column 1, got", short.Column)
	}
	if short.WidthFraction != 0.9 || short.Left != 0.1 {
		t.Error("column 1 should cascade with 0.9 width at 0.1 left:", short)
	}
	if short.ZIndex != 11 {
		t.Error("column 1 z-index should be 11, got", short.ZIndex)
	}
}

func TestLayoutLongestFirstClaimsColumnZero(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	// same start: the longer event must win column 0 regardless of
	// input order
	events := []calendar.Event{
		mkEvent("short", day.Add(9*time.Hour), day.Add(9*time.Hour+15*time.Minute), false),
		mkEvent("long", day.Add(9*time.Hour), day.Add(12*time.Hour), false),
	}

	for _, p := range calendar.LayoutDay(events, day, testMetrics) {
		switch p.Event.ID {
		case "long":
			if p.Column != 0 {
				t.Error("long event should claim column 0, got", p.Column)
			}
		case "short":
			if p.Column != 1 {
				t.Error("short event should be displaced to column 1, got", p.Column)
			}
		}
	}
}

func TestLayoutZeroDurationFloorsHeight(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	instant := day.Add(9 * time.Hour)
	placed := calendar.LayoutDay([]calendar.Event{mkEvent("zero", instant, instant, false)}, day, testMetrics)
	if len(placed) != 1 {
		t.Fatal("expected 1 positioned event, got", len(placed))
	}
	if placed[0].Height != testMetrics.MinEventHeight {
		t.Error("zero-duration event should floor at minimum height, got", placed[0].Height)
	}
}

func TestLayoutSkipsAllDayAndMultiDay(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	events := []calendar.Event{
		mkEvent("all-day", day, day, true),
		mkEvent("spanning", day.Add(20*time.Hour), day.AddDate(0, 0, 2), false),
		mkEvent("timed", day.Add(9*time.Hour), day.Add(10*time.Hour), false),
	}
	placed := calendar.LayoutDay(events, day, testMetrics)
	if len(placed) != 1 || placed[0].Event.ID != "timed" {
		t.Error("only the timed single-day event should be packed, got", len(placed))
	}
}

func TestLayoutAllDayRowFlags(t *testing.T) {
	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day1.AddDate(0, 0, 2)
	span := calendar.Event{
		ID: "span", Title: "span", AllDay: true,
		Start: day1, End: day3,
	}
	events := []calendar.Event{span}

	first := calendar.LayoutAllDayRow(events, day1)
	if len(first) != 1 || !first[0].IsFirstDay || first[0].IsLastDay {
		t.Error("day1 cell should be first-day only:", first)
	}
	middle := calendar.LayoutAllDayRow(events, day2)
	if len(middle) != 1 || middle[0].IsFirstDay || middle[0].IsLastDay {
		t.Error("day2 cell should be a continuation:", middle)
	}
	last := calendar.LayoutAllDayRow(events, day3)
	if len(last) != 1 || last[0].IsFirstDay || !last[0].IsLastDay {
		t.Error("day3 cell should be last-day only:", last)
	}
}
