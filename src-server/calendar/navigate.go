package calendar

import (
	"fmt"
	"time"
)

type Direction int

const (
	Previous Direction = iota
	Next
)

// Agenda pages advance by a fixed window.
const AgendaWindowDays = 30

// StartOfWeek truncates to the Sunday that begins t's week.
func StartOfWeek(t time.Time) time.Time {
	d := DayOf(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// Navigate advances or retreats the reference date by one page of the
// given view.
func Navigate(ref time.Time, view View, dir Direction) time.Time {
	step := 1
	if dir == Previous {
		step = -1
	}
	switch view {
	case MonthView:
		return ref.AddDate(0, step, 0)
	case WeekView:
		return ref.AddDate(0, 0, 7*step)
	case DayView:
		return ref.AddDate(0, 0, step)
	case AgendaView:
		return ref.AddDate(0, 0, AgendaWindowDays*step)
	default:
		return ref
	}
}

// Today resets the reference date to the current moment regardless of
// the active view.
func Today(now time.Time) time.Time {
	return now
}

func monthRangeLabel(from, to time.Time) string {
	switch {
	case from.Year() != to.Year():
		return fmt.Sprintf("%s %d – %s %d", from.Month().String()[:3], from.Year(), to.Month().String()[:3], to.Year())
	case from.Month() != to.Month():
		return fmt.Sprintf("%s – %s %d", from.Month().String()[:3], to.Month().String()[:3], from.Year())
	default:
		return from.Format("January 2006")
	}
}

// Title formats the navigation bar label for a reference date. The
// exact strings are display-only; correctness lives in Navigate.
func Title(ref time.Time, view View) string {
	switch view {
	case MonthView:
		return ref.Format("January 2006")
	case WeekView:
		start := StartOfWeek(ref)
		return monthRangeLabel(start, start.AddDate(0, 0, 6))
	case DayView:
		return ref.Format("Monday, January 2, 2006")
	case AgendaView:
		return monthRangeLabel(ref, ref.AddDate(0, 0, AgendaWindowDays-1))
	default:
		return ref.Format("January 2006")
	}
}

// ModeForKey maps the single-letter view shortcuts (m/w/d/a) to a
// view. The mapping is suppressed entirely while a text input or modal
// editor has focus so typing a title can never flip the view.
func ModeForKey(key rune, textInputFocused bool) (View, bool) {
	if textInputFocused {
		return MonthView, false
	}
	switch key {
	case 'm', 'M':
		return MonthView, true
	case 'w', 'W':
		return WeekView, true
	case 'd', 'D':
		return DayView, true
	case 'a', 'A':
		return AgendaView, true
	default:
		return MonthView, false
	}
}
