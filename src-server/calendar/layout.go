package calendar

import (
	"sort"
	"time"
)

// Metrics describes the vertical geometry of a day or week column.
type Metrics struct {
	// First hour rendered at the top of the column.
	StartHour float64
	// Pixel height of one hour.
	CellHeight float64
	// Floor for zero-duration events so they stay visible.
	MinEventHeight float64
}

// Positioned is the ephemeral output of one layout pass. It carries no
// identity beyond the render; callers recompute it whenever the event
// list, container size, view or date changes.
type Positioned struct {
	Event         Event
	Top           float64
	Height        float64
	Column        int
	WidthFraction float64
	Left          float64
	ZIndex        int
}

// SpanCell is one date cell of a multi-day event in the all-day header
// row. IsFirstDay/IsLastDay drive border-radius and continuation
// styling on the client.
type SpanCell struct {
	Event      Event
	IsFirstDay bool
	IsLastDay  bool
}

// LayoutDay packs a single day's timed events into cascading columns.
//
// Events are sorted by start ascending, ties broken longer-first so
// long events claim column 0 before short ones contest it. Placement is
// greedy first-fit over the ordered column list; this is deliberately
// not a minimum-coloring solution, and correctness is defined against
// the greedy policy. Intervals are clamped to the day before overlap
// checks and geometry. The engine never clips: events outside the
// visible hour range come back with negative or over-range offsets.
func LayoutDay(events []Event, day time.Time, m Metrics) []Positioned {
	dayStart := DayOf(day)
	dayEnd := dayStart.Add(24 * time.Hour)

	type clamped struct {
		event      Event
		start, end time.Time
	}

	candidates := make([]clamped, 0, len(events))
	for _, e := range events {
		if e.AllDay || IsMultiDay(e) {
			continue
		}
		if e.End.Before(dayStart) || e.Start.After(dayEnd) {
			continue
		}
		c := clamped{event: e, start: e.Start, end: e.End}
		if c.start.Before(dayStart) {
			c.start = dayStart
		}
		if c.end.After(dayEnd) {
			c.end = dayEnd
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].start.Equal(candidates[j].start) {
			return candidates[i].start.Before(candidates[j].start)
		}
		return candidates[i].end.Sub(candidates[i].start) > candidates[j].end.Sub(candidates[j].start)
	})

	columns := make([][]clamped, 0)
	placed := make([]Positioned, 0, len(candidates))
	for _, c := range candidates {
		col := -1
		for i := range columns {
			free := true
			for _, occupant := range columns[i] {
				if !c.start.After(occupant.end) && !occupant.start.After(c.end) {
					free = false
					break
				}
			}
			if free {
				col = i
				break
			}
		}
		if col == -1 {
			columns = append(columns, nil)
			col = len(columns) - 1
		}
		columns[col] = append(columns[col], c)

		startFrac := c.start.Sub(dayStart).Hours()
		endFrac := c.end.Sub(dayStart).Hours()
		height := (endFrac - startFrac) * m.CellHeight
		if height < m.MinEventHeight {
			height = m.MinEventHeight
		}

		p := Positioned{
			Event:  c.event,
			Top:    (startFrac - m.StartHour) * m.CellHeight,
			Height: height,
			Column: col,
			ZIndex: 10 + col,
		}
		// Column 0 keeps full width; later columns cascade-overlap with
		// a fixed indent so the earliest event stays maximally visible.
		if col == 0 {
			p.WidthFraction = 1.0
			p.Left = 0
		} else {
			p.WidthFraction = 0.9
			p.Left = float64(col) * 0.1
		}
		placed = append(placed, p)
	}

	return placed
}

// LayoutAllDayRow lays out the all-day/multi-day header row for one
// date: no overlap packing, the events simply stack one per row slot,
// multi-day and all-day events first.
func LayoutAllDayRow(events []Event, day time.Time) []SpanCell {
	visible := make([]Event, 0)
	for _, e := range AllVisibleForDay(events, day) {
		if IsMultiDay(e) {
			visible = append(visible, NormalizeAllDay(e))
		}
	}
	visible = SortForDisplay(visible)

	cells := make([]SpanCell, 0, len(visible))
	for _, e := range visible {
		cells = append(cells, SpanCell{
			Event:      e,
			IsFirstDay: SameDay(e.Start, day),
			IsLastDay:  SameDay(e.End, day),
		})
	}
	return cells
}
