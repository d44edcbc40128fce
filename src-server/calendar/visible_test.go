package calendar_test

import (
	"testing"

	"caldeck/src-server/calendar"
)

func TestVisibleCount(t *testing.T) {
	// container 140px, rows 30px with 4px gaps, 6 items: slot=34,
	// maxFit=4, 6 > 4, so 3 rows plus the "+N more" affordance
	if got := calendar.VisibleCount(140, 30, 4, 6); got != 3 {
		t.Error("want 3, got", got)
	}

	// everything fits: no reservation needed
	if got := calendar.VisibleCount(140, 30, 4, 4); got != 4 {
		t.Error("want 4, got", got)
	}

	// fail open on degenerate metrics
	if got := calendar.VisibleCount(140, 0, 0, 6); got != 6 {
		t.Error("zero slot should show everything, got", got)
	}
	if got := calendar.VisibleCount(0, 30, 4, 6); got != 6 {
		t.Error("unmeasured container should show everything, got", got)
	}

	// tiny container never goes negative
	if got := calendar.VisibleCount(10, 30, 4, 6); got != 0 {
		t.Error("want 0, got", got)
	}
}

func TestVisibleCountBounds(t *testing.T) {
	const total = 8
	prev := -1
	for h := 0.0; h <= 500; h += 7 {
		got := calendar.VisibleCount(h, 30, 4, total)
		if got > total {
			t.Error("visible count exceeded total at height", h)
		}
		if h > 0 && got < prev {
			t.Error("visible count decreased as height grew:", h, prev, got)
		}
		if h > 0 {
			prev = got
		}
	}
}
