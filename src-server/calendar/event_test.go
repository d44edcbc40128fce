package calendar_test

import (
	"testing"
	"time"

	"caldeck/src-server/calendar"
)

func mkEvent(id string, start, end time.Time, allDay bool) calendar.Event {
	return calendar.Event{ID: id, Title: id, Start: start, End: end, AllDay: allDay}
}

func TestIsMultiDay(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)

	// case: timed event within one day
	if calendar.IsMultiDay(mkEvent("a", day.Add(9*time.Hour), day.Add(10*time.Hour), false)) {
		t.Error("single-day timed event should not be multi-day")
	}

	// case: timed event crossing midnight
	if !calendar.IsMultiDay(mkEvent("b", day.Add(23*time.Hour), day.Add(25*time.Hour), false)) {
		t.Error("event crossing midnight should be multi-day")
	}

	// case: all-day event covering a single date is still multi-day
	if !calendar.IsMultiDay(mkEvent("c", day, day, true)) {
		t.Error("single-date all-day event should be multi-day")
	}
}

func TestOverlapsTouchingEndpoints(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	a := mkEvent("a", day.Add(9*time.Hour), day.Add(10*time.Hour), false)
	b := mkEvent("b", day.Add(10*time.Hour), day.Add(11*time.Hour), false)
	c := mkEvent("c", day.Add(11*time.Hour+time.Minute), day.Add(12*time.Hour), false)

	if !calendar.Overlaps(a, b) {
		t.Error("touching endpoints should count as overlapping")
	}
	if calendar.Overlaps(a, c) {
		t.Error("disjoint intervals should not overlap")
	}
	if !calendar.Overlaps(b, a) {
		t.Error("overlap should be symmetric")
	}
}

func TestNormalizeAllDayIdempotent(t *testing.T) {
	start := time.Date(2024, 3, 1, 14, 30, 0, 0, time.Local)
	end := time.Date(2024, 3, 2, 9, 0, 0, 0, time.Local)
	e := mkEvent("a", start, end, true)

	once := calendar.NormalizeAllDay(e)
	twice := calendar.NormalizeAllDay(once)

	wantStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	wantEnd := time.Date(2024, 3, 2, 23, 59, 59, 999000000, time.Local)
	if !once.Start.Equal(wantStart) || !once.End.Equal(wantEnd) {
		t.Error("normalized span is wrong", once.Start, once.End)
	}
	if !twice.Start.Equal(once.Start) || !twice.End.Equal(once.End) {
		t.Error("normalization should be idempotent")
	}
}

func TestDayBuckets(t *testing.T) {
	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day1.AddDate(0, 0, 2)

	spanning := mkEvent("span", day1.Add(20*time.Hour), day3.Add(10*time.Hour), false)
	timed := mkEvent("timed", day1.Add(9*time.Hour), day1.Add(10*time.Hour), false)
	events := []calendar.Event{spanning, timed}

	// case: start day surfaces through EventsForDay, not SpanningEventsForDay
	if got := calendar.EventsForDay(events, day1); len(got) != 2 {
		t.Error("expected both events to start on day1, got", len(got))
	}
	if got := calendar.SpanningEventsForDay(events, day1); len(got) != 0 {
		t.Error("start day should not be reported as spanning, got", len(got))
	}

	// case: interior and end days are spanning
	for _, day := range []time.Time{day2, day3} {
		got := calendar.SpanningEventsForDay(events, day)
		if len(got) != 1 || got[0].ID != "span" {
			t.Error("expected spanning event on", day)
		}
	}

	// case: union view
	for _, day := range []time.Time{day1, day2, day3} {
		got := calendar.AllVisibleForDay(events, day)
		found := false
		for _, e := range got {
			if e.ID == "span" {
				found = true
			}
		}
		if !found {
			t.Error("spanning event should be visible on", day)
		}
	}
}

func TestSortForDisplay(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	early := mkEvent("early", day.Add(8*time.Hour), day.Add(9*time.Hour), false)
	late := mkEvent("late", day.Add(15*time.Hour), day.Add(16*time.Hour), false)
	allDay := mkEvent("all-day", day, day, true)

	got := calendar.SortForDisplay([]calendar.Event{late, early, allDay})
	if got[0].ID != "all-day" || got[1].ID != "early" || got[2].ID != "late" {
		t.Error("wrong display order:", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestParseColor(t *testing.T) {
	for _, name := range []string{"blue", "orange", "violet", "rose", "emerald"} {
		c, err := calendar.ParseColor(name)
		if err != nil {
			t.Error("known color rejected:", name, err)
		}
		if c.String() != name {
			t.Error("round trip mismatch:", name, c.String())
		}
	}
	if _, err := calendar.ParseColor("chartreuse"); err == nil {
		t.Error("unknown color should be rejected")
	}
}

func TestEventValid(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	if err := mkEvent("a", day.Add(10*time.Hour), day.Add(9*time.Hour), false).Valid(); err == nil {
		t.Error("inverted interval should be rejected")
	}
	if err := mkEvent("b", day.Add(9*time.Hour), day.Add(9*time.Hour), false).Valid(); err != nil {
		t.Error("zero-duration instant should be allowed:", err)
	}
}
