package calendar_test

import (
	"testing"
	"time"

	"caldeck/src-server/calendar"
)

func hourPtr(f float64) *float64 { return &f }

// Drag a 10:00-11:00 event onto a week-view target at hour fraction
// 14.583 (14:35) on another day: snaps to 14:30 and keeps the 1h
// duration.
func TestDragWeekViewRescheduleScenario(t *testing.T) {
	subject := calendar.Event{
		ID:    "ev",
		Title: "meeting",
		Start: time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local),
		End:   time.Date(2024, 3, 1, 11, 0, 0, 0, time.Local),
	}

	var emitted []calendar.Event
	m := calendar.NewDragMachine(func(e calendar.Event) { emitted = append(emitted, e) })

	if err := m.Pickup(calendar.PickupPayload{Event: subject, OriginView: calendar.WeekView}); err != nil {
		t.Fatal(err)
	}
	if m.State() != calendar.DragActive {
		t.Fatal("machine should be dragging after pickup")
	}
	if !m.Session().Provisional.Equal(subject.Start) {
		t.Error("provisional time should initialize to the subject's start")
	}

	target := calendar.DropTarget{
		Date:         time.Date(2024, 3, 3, 0, 0, 0, 0, time.Local),
		HourFraction: hourPtr(14.583),
	}
	m.Hover(target)
	wantProvisional := time.Date(2024, 3, 3, 14, 30, 0, 0, time.Local)
	if !m.Session().Provisional.Equal(wantProvisional) {
		t.Error("hover should snap to 14:30, got", m.Session().Provisional)
	}

	updated, ok := m.Drop(target)
	if !ok {
		t.Fatal("drop should emit an update")
	}
	if !updated.Start.Equal(wantProvisional) {
		t.Error("new start should be 14:30, got", updated.Start)
	}
	if !updated.End.Equal(wantProvisional.Add(time.Hour)) {
		t.Error("duration should be preserved, got end", updated.End)
	}
	if len(emitted) != 1 || emitted[0].ID != "ev" {
		t.Error("update callback should fire exactly once")
	}
	if m.State() != calendar.DragIdle || m.Session() != nil {
		t.Error("machine should reset to idle after drop")
	}
}

func TestDragPreservesDurationForOddIntervals(t *testing.T) {
	durations := []time.Duration{
		0,
		25 * time.Minute,
		90 * time.Minute,
		7*time.Hour + 45*time.Minute,
	}
	for _, d := range durations {
		start := time.Date(2024, 3, 1, 8, 15, 0, 0, time.Local)
		subject := calendar.Event{ID: "ev", Start: start, End: start.Add(d)}

		m := calendar.NewDragMachine(nil)
		if err := m.Pickup(calendar.PickupPayload{Event: subject, OriginView: calendar.DayView}); err != nil {
			t.Fatal(err)
		}
		updated, ok := m.Drop(calendar.DropTarget{
			Date:         time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local),
			HourFraction: hourPtr(13.25),
		})
		if !ok {
			t.Fatal("drop should emit an update for duration", d)
		}
		if updated.End.Sub(updated.Start) != d {
			t.Error("duration changed during drag:", d, "->", updated.End.Sub(updated.Start))
		}
	}
}

func TestDragNoOpDropEmitsNothing(t *testing.T) {
	subject := calendar.Event{
		ID:    "ev",
		Start: time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local),
		End:   time.Date(2024, 3, 1, 11, 0, 0, 0, time.Local),
	}
	calls := 0
	m := calendar.NewDragMachine(func(calendar.Event) { calls++ })

	if err := m.Pickup(calendar.PickupPayload{Event: subject, OriginView: calendar.WeekView}); err != nil {
		t.Fatal(err)
	}
	// resolves to the exact original start minute
	if _, ok := m.Drop(calendar.DropTarget{
		Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		HourFraction: hourPtr(10.0),
	}); ok {
		t.Error("no-op move should not report an update")
	}
	if calls != 0 {
		t.Error("no-op move should not invoke the callback")
	}
	if m.State() != calendar.DragIdle {
		t.Error("machine should still reset to idle")
	}
}

func TestDragMonthOriginKeepsTimeOfDay(t *testing.T) {
	subject := calendar.Event{
		ID:    "ev",
		Start: time.Date(2024, 3, 1, 9, 40, 0, 0, time.Local),
		End:   time.Date(2024, 3, 1, 10, 10, 0, 0, time.Local),
	}
	m := calendar.NewDragMachine(nil)
	if err := m.Pickup(calendar.PickupPayload{Event: subject, OriginView: calendar.MonthView}); err != nil {
		t.Fatal(err)
	}

	// month-origin drags ignore the target's hour fraction entirely
	updated, ok := m.Drop(calendar.DropTarget{
		Date:         time.Date(2024, 3, 8, 0, 0, 0, 0, time.Local),
		HourFraction: hourPtr(14.0),
	})
	if !ok {
		t.Fatal("drop should emit an update")
	}
	want := time.Date(2024, 3, 8, 9, 40, 0, 0, time.Local)
	if !updated.Start.Equal(want) {
		t.Error("time-of-day should carry over unchanged, got", updated.Start)
	}
}

func TestDragDateOnlyTargetKeepsTimeOfDay(t *testing.T) {
	subject := calendar.Event{
		ID:    "ev",
		Start: time.Date(2024, 3, 1, 16, 20, 0, 0, time.Local),
		End:   time.Date(2024, 3, 1, 17, 0, 0, 0, time.Local),
	}
	m := calendar.NewDragMachine(nil)
	if err := m.Pickup(calendar.PickupPayload{Event: subject, OriginView: calendar.WeekView}); err != nil {
		t.Fatal(err)
	}
	updated, ok := m.Drop(calendar.DropTarget{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local)})
	if !ok {
		t.Fatal("drop should emit an update")
	}
	want := time.Date(2024, 3, 2, 16, 20, 0, 0, time.Local)
	if !updated.Start.Equal(want) {
		t.Error("date-only target should move only the date, got", updated.Start)
	}
}

func TestDragMalformedPayloadCancels(t *testing.T) {
	subject := calendar.Event{
		ID:    "ev",
		Start: time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local),
		End:   time.Date(2024, 3, 1, 11, 0, 0, 0, time.Local),
	}
	calls := 0
	cancels := 0
	m := calendar.NewDragMachine(func(calendar.Event) { calls++ })
	m.SetCancelHook(func() { cancels++ })

	if err := m.Pickup(calendar.PickupPayload{Event: subject, OriginView: calendar.WeekView}); err != nil {
		t.Fatal(err)
	}
	// missing date aborts silently, no callback, no panic
	if _, ok := m.Drop(calendar.DropTarget{}); ok {
		t.Error("drop without a date should not update")
	}
	if calls != 0 {
		t.Error("cancelled drop should not invoke the callback")
	}
	if cancels != 1 {
		t.Error("cancel hook should fire once, got", cancels)
	}
	if m.State() != calendar.DragIdle || m.Session() != nil {
		t.Error("session should be cleared after cancel")
	}
}

func TestDragSecondPickupRefused(t *testing.T) {
	subject := calendar.Event{
		ID:    "ev",
		Start: time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local),
		End:   time.Date(2024, 3, 1, 11, 0, 0, 0, time.Local),
	}
	m := calendar.NewDragMachine(nil)
	if err := m.Pickup(calendar.PickupPayload{Event: subject, OriginView: calendar.DayView}); err != nil {
		t.Fatal(err)
	}
	if err := m.Pickup(calendar.PickupPayload{Event: subject, OriginView: calendar.DayView}); err == nil {
		t.Error("second pickup while dragging should be refused")
	}
}

func TestDragHoverSuppressesRedundantUpdates(t *testing.T) {
	subject := calendar.Event{
		ID:    "ev",
		Start: time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local),
		End:   time.Date(2024, 3, 1, 11, 0, 0, 0, time.Local),
	}
	m := calendar.NewDragMachine(nil)
	if err := m.Pickup(calendar.PickupPayload{Event: subject, OriginView: calendar.WeekView}); err != nil {
		t.Fatal(err)
	}
	target := calendar.DropTarget{
		Date:         time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local),
		HourFraction: hourPtr(11.1),
	}
	m.Hover(target)
	first := m.Session().Provisional
	// 11.05 snaps to the same quarter hour
	m.Hover(calendar.DropTarget{Date: target.Date, HourFraction: hourPtr(11.05)})
	if !m.Session().Provisional.Equal(first) {
		t.Error("equivalent hover should not change the provisional time")
	}
}

func TestShouldActivate(t *testing.T) {
	// mouse: distance alone decides
	if calendar.ShouldActivate(3, 0, 0, false) {
		t.Error("3px mouse move should not activate")
	}
	if !calendar.ShouldActivate(4, 4, 0, false) {
		t.Error("~5.7px mouse move should activate")
	}
	// touch: needs the hold, tolerates slop
	if calendar.ShouldActivate(1, 1, 100*time.Millisecond, true) {
		t.Error("short touch hold should not activate")
	}
	if !calendar.ShouldActivate(1, 1, 300*time.Millisecond, true) {
		t.Error("long touch hold within slop should activate")
	}
	if calendar.ShouldActivate(10, 10, 300*time.Millisecond, true) {
		t.Error("touch that wandered past the slop is a scroll, not a drag")
	}
}
