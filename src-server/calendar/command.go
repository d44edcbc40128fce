package calendar

import (
	"fmt"
	"time"
)

// Default creation window for a click that carries no time-of-day
// (month cells): 09:00 for one hour.
const (
	DefaultCreationHour     = 9
	DefaultCreationDuration = time.Hour
)

// CommandKind is the closed set of actions the surrounding views can
// ask for. One dispatcher replaces the per-dialog callback chains.
type CommandKind int

const (
	CreateManual CommandKind = iota
	CreateFromSuggestion
	SelectEvent
	DeleteEvent
)

// Suggestion is a finalized AI suggestion, already validated by the
// caller (the fallback policy for a failed fetch lives outside this
// package).
type Suggestion struct {
	Title       string
	Description string
	Location    string
	Color       Color
}

type Command struct {
	Kind CommandKind

	// CreateManual
	Day          time.Time
	HourFraction *float64

	// CreateFromSuggestion
	Suggestion Suggestion

	// SelectEvent / DeleteEvent
	EventID string
}

// Dispatcher routes commands to the host callbacks. Created events
// carry an empty ID; assigning one is the persistence layer's job.
type Dispatcher struct {
	OnCreate func(Event)
	OnSelect func(eventID string)
	OnDelete func(eventID string)
}

// NewProvisional builds the provisional event a creation dialog opens
// with. A click with an hour fraction snaps to the 10-minute grid,
// half rounding up; a date-only click lands on the default hour.
func NewProvisional(day time.Time, hourFraction *float64) Event {
	var start time.Time
	if hourFraction != nil {
		start = SnapTime(day, *hourFraction, CreationBucketMinutes)
	} else {
		start = time.Date(day.Year(), day.Month(), day.Day(), DefaultCreationHour, 0, 0, 0, day.Location())
	}
	return Event{
		Start: start,
		End:   start.Add(DefaultCreationDuration),
	}
}

func (d *Dispatcher) Dispatch(cmd Command) error {
	switch cmd.Kind {
	case CreateManual:
		if cmd.Day.IsZero() {
			return fmt.Errorf("(*Dispatcher).Dispatch: create-manual command has no day")
		}
		if d.OnCreate != nil {
			d.OnCreate(NewProvisional(cmd.Day, cmd.HourFraction))
		}
	case CreateFromSuggestion:
		if cmd.Day.IsZero() {
			return fmt.Errorf("(*Dispatcher).Dispatch: create-from-suggestion command has no day")
		}
		if cmd.Suggestion.Title == "" {
			return fmt.Errorf("(*Dispatcher).Dispatch: suggestion has no title")
		}
		e := NewProvisional(cmd.Day, cmd.HourFraction)
		e.Title = cmd.Suggestion.Title
		e.Description = cmd.Suggestion.Description
		e.Location = cmd.Suggestion.Location
		e.Color = cmd.Suggestion.Color
		if d.OnCreate != nil {
			d.OnCreate(e)
		}
	case SelectEvent:
		if cmd.EventID == "" {
			return fmt.Errorf("(*Dispatcher).Dispatch: select command has no event id")
		}
		if d.OnSelect != nil {
			d.OnSelect(cmd.EventID)
		}
	case DeleteEvent:
		if cmd.EventID == "" {
			return fmt.Errorf("(*Dispatcher).Dispatch: delete command has no event id")
		}
		if d.OnDelete != nil {
			d.OnDelete(cmd.EventID)
		}
	default:
		return fmt.Errorf("(*Dispatcher).Dispatch: unknown command kind %d", cmd.Kind)
	}
	return nil
}
