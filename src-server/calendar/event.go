package calendar

import (
	"fmt"
	"sort"
	"time"
)

// Color is the closed set of event accent colors the web client knows
// how to render.
type Color int

const (
	ColorBlue Color = iota
	ColorOrange
	ColorViolet
	ColorRose
	ColorEmerald
)

var colorNames = [...]string{
	ColorBlue:    "blue",
	ColorOrange:  "orange",
	ColorViolet:  "violet",
	ColorRose:    "rose",
	ColorEmerald: "emerald",
}

var colorCSSVars = [...]string{
	ColorBlue:    "--event-blue",
	ColorOrange:  "--event-orange",
	ColorViolet:  "--event-violet",
	ColorRose:    "--event-rose",
	ColorEmerald: "--event-emerald",
}

func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return "blue"
	}
	return colorNames[c]
}

func (c Color) CSSVar() string {
	if c < 0 || int(c) >= len(colorCSSVars) {
		return colorCSSVars[ColorBlue]
	}
	return colorCSSVars[c]
}

func ParseColor(s string) (Color, error) {
	for i, name := range colorNames {
		if name == s {
			return Color(i), nil
		}
	}
	return ColorBlue, fmt.Errorf("ParseColor: unknown color %q", s)
}

// Event is the value the layout engine and drag machine operate on. All
// times are naive local wall-clock values; an empty ID means the event
// has not been persisted yet.
type Event struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Color       Color
	Location    string
}

// Valid rejects inverted intervals before they can reach the layout
// engine. Equal start and end is allowed (a zero-duration instant).
func (e Event) Valid() error {
	if e.End.Before(e.Start) {
		return fmt.Errorf("(Event).Valid: end %s is before start %s", e.End, e.Start)
	}
	return nil
}

// DayOf truncates t to midnight in its own location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// NormalizeAllDay expands an all-day event to span the full clock range
// of its calendar day(s). Calling it twice returns the same interval.
func NormalizeAllDay(e Event) Event {
	if !e.AllDay {
		return e
	}
	start := DayOf(e.Start)
	end := DayOf(e.End).Add(24*time.Hour - time.Millisecond)
	e.Start = start
	e.End = end
	return e
}

// IsMultiDay reports whether the event's visible span crosses a
// calendar-day boundary. All all-day events count as multi-day, even
// ones covering a single date.
func IsMultiDay(e Event) bool {
	return e.AllDay || !SameDay(e.Start, e.End)
}

// Overlaps treats both intervals as closed, so touching endpoints
// overlap: an event ending at 10:00 collides with one starting at
// 10:00. The layout engine relies on this to keep them in separate
// columns instead of stacking them flush.
func Overlaps(a, b Event) bool {
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}

// EventsForDay returns the events whose start falls on day, ascending
// by start time.
func EventsForDay(events []Event, day time.Time) []Event {
	out := make([]Event, 0)
	for _, e := range events {
		if SameDay(e.Start, day) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// SpanningEventsForDay returns multi-day events that continue onto day:
// day is strictly between start and end, or is the end day. The start
// day is excluded; those occurrences surface through EventsForDay.
func SpanningEventsForDay(events []Event, day time.Time) []Event {
	out := make([]Event, 0)
	for _, e := range events {
		if !IsMultiDay(e) || SameDay(e.Start, day) {
			continue
		}
		if SameDay(e.End, day) {
			out = append(out, e)
			continue
		}
		d := DayOf(day)
		if d.After(DayOf(e.Start)) && d.Before(DayOf(e.End)) {
			out = append(out, e)
		}
	}
	return out
}

// AllVisibleForDay returns every event that starts on, ends on, or
// spans across day.
func AllVisibleForDay(events []Event, day time.Time) []Event {
	out := make([]Event, 0)
	for _, e := range events {
		if SameDay(e.Start, day) || SameDay(e.End, day) {
			out = append(out, e)
			continue
		}
		d := DayOf(day)
		if d.After(DayOf(e.Start)) && d.Before(DayOf(e.End)) {
			out = append(out, e)
		}
	}
	return out
}

// SortForDisplay orders multi-day and all-day events first (stable),
// then the rest by ascending start time.
func SortForDisplay(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := IsMultiDay(out[i]), IsMultiDay(out[j])
		if ai != aj {
			return ai
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}
