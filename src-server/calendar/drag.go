package calendar

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

// View is the calendar surface a gesture originates from.
type View int

const (
	MonthView View = iota
	WeekView
	DayView
	AgendaView
)

var viewNames = [...]string{
	MonthView:  "month",
	WeekView:   "week",
	DayView:    "day",
	AgendaView: "agenda",
}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return "month"
	}
	return viewNames[v]
}

func ParseView(s string) (View, error) {
	for i, name := range viewNames {
		if name == s {
			return View(i), nil
		}
	}
	return MonthView, fmt.Errorf("ParseView: unknown view %q", s)
}

const (
	// Pointer devices activate a drag after moving this far; below it
	// the gesture is still a click.
	DragActivationDistancePx = 5.0
	// Touch devices additionally require a hold, with the same distance
	// as slop, so a plain tap never starts a drag.
	TouchActivationDelay = 250 * time.Millisecond
)

// ShouldActivate decides whether pointer movement has crossed the
// pick-up threshold for the device class.
func ShouldActivate(dx, dy float64, held time.Duration, touch bool) bool {
	distance := math.Hypot(dx, dy)
	if touch {
		return held >= TouchActivationDelay && distance <= DragActivationDistancePx
	}
	return distance > DragActivationDistancePx
}

// PickupPayload is what a drag source must supply when a gesture
// crosses the activation threshold.
type PickupPayload struct {
	Event             Event
	OriginView        View
	HeightHint        float64
	IsMultiDay        bool
	MultiDayWidthHint float64
	HandleOffsetX     float64
	HandleOffsetY     float64
}

// DropTarget is what a drop target supplies on every hover and on the
// drop itself. A nil HourFraction means the target only carries a date
// (month cells, all-day rows).
type DropTarget struct {
	Date         time.Time
	HourFraction *float64
}

// DragSession is the mutable state of one in-flight gesture. Only the
// active gesture's handlers mutate it; the ghost overlay just reads the
// latest committed values between handler turns.
type DragSession struct {
	Subject       Event
	OriginView    View
	Provisional   time.Time
	IsMultiDay    bool
	WidthHint     float64
	HandleOffsetX float64
	HandleOffsetY float64
}

type DragState int

const (
	DragIdle DragState = iota
	DragActive
)

// DragMachine serializes one drag gesture at a time:
// Idle -> Dragging -> commit/cancel -> Idle. Malformed payloads cancel
// the session instead of propagating an error to the caller.
type DragMachine struct {
	state    DragState
	session  *DragSession
	onUpdate func(Event)
	onCancel func()
}

func NewDragMachine(onUpdate func(Event)) *DragMachine {
	return &DragMachine{onUpdate: onUpdate}
}

// SetCancelHook registers an observer for cancelled sessions (metrics).
func (m *DragMachine) SetCancelHook(fn func()) {
	m.onCancel = fn
}

func (m *DragMachine) State() DragState {
	return m.state
}

// Session returns the live session, or nil while idle.
func (m *DragMachine) Session() *DragSession {
	return m.session
}

// Pickup opens a session for the subject event. Starting a second drag
// while one is active is not a defined operation; the transport layer
// is responsible for serializing gestures, so this just refuses.
func (m *DragMachine) Pickup(p PickupPayload) error {
	if m.state != DragIdle {
		return fmt.Errorf("(*DragMachine).Pickup: a drag session is already active")
	}
	if p.Event.Start.IsZero() {
		return fmt.Errorf("(*DragMachine).Pickup: subject event has no start time")
	}
	m.session = &DragSession{
		Subject:       p.Event,
		OriginView:    p.OriginView,
		Provisional:   p.Event.Start,
		IsMultiDay:    p.IsMultiDay || IsMultiDay(p.Event),
		WidthHint:     p.MultiDayWidthHint,
		HandleOffsetX: p.HandleOffsetX,
		HandleOffsetY: p.HandleOffsetY,
	}
	m.state = DragActive
	return nil
}

// resolve maps a target payload to a candidate start time. Month-origin
// drags and date-only targets keep the provisional time-of-day and move
// only the date; timed targets snap to the 15-minute grid.
func (m *DragMachine) resolve(t DropTarget) (time.Time, bool) {
	if t.Date.IsZero() {
		return time.Time{}, false
	}
	if t.HourFraction != nil && m.session.OriginView != MonthView {
		return SnapTime(t.Date, *t.HourFraction, DragBucketMinutes), true
	}
	p := m.session.Provisional
	return time.Date(
		t.Date.Year(), t.Date.Month(), t.Date.Day(),
		p.Hour(), p.Minute(), 0, 0, t.Date.Location(),
	), true
}

// Hover updates the provisional time from a target. Redundant hovers
// that resolve to the current provisional value are suppressed so
// observers see no churn.
func (m *DragMachine) Hover(t DropTarget) {
	if m.state != DragActive {
		return
	}
	candidate, ok := m.resolve(t)
	if !ok {
		slog.Debug("drag hover with no date, cancelling session")
		m.Cancel()
		return
	}
	if !candidate.Equal(m.session.Provisional) {
		m.session.Provisional = candidate
	}
}

// Drop commits the gesture. The new start is recomputed from the drop
// payload itself, never from the last hover, and the duration always
// comes from the original subject so a drag can never stretch an
// event. A drop that lands on the original start minute emits nothing.
func (m *DragMachine) Drop(t DropTarget) (Event, bool) {
	if m.state != DragActive {
		return Event{}, false
	}
	newStart, ok := m.resolve(t)
	if !ok {
		slog.Debug("drop with no date, cancelling session")
		m.Cancel()
		return Event{}, false
	}

	subject := m.session.Subject
	m.reset()

	if newStart.Truncate(time.Minute).Equal(subject.Start.Truncate(time.Minute)) {
		return Event{}, false
	}

	updated := subject
	updated.Start = newStart
	updated.End = newStart.Add(subject.End.Sub(subject.Start))
	if m.onUpdate != nil {
		m.onUpdate(updated)
	}
	return updated, true
}

// Cancel aborts the session without invoking the update callback.
func (m *DragMachine) Cancel() {
	if m.state != DragActive {
		return
	}
	m.reset()
	if m.onCancel != nil {
		m.onCancel()
	}
}

func (m *DragMachine) reset() {
	m.session = nil
	m.state = DragIdle
}
