package calendar

import (
	"math"
	"time"
)

const (
	// Drag-to-reschedule quantizes to quarter hours.
	DragBucketMinutes = 15
	// Clicking an empty slot quantizes to ten minutes, half rounding up.
	CreationBucketMinutes = 10
)

// SnapToGrid quantizes an hour fraction (9.42 ~ 9:25) to the nearest
// multiple of bucketMinutes, half rounding up. Boundaries fall at
// (k+0.5)/bucketsPerHour, which for 15-minute buckets puts them at
// 0.125/0.375/0.625/0.875 of the hour. Snapping an already-snapped
// value returns it unchanged. A non-positive or over-an-hour bucket
// fails open and returns the input as-is.
func SnapToGrid(hourFraction float64, bucketMinutes int) float64 {
	if bucketMinutes <= 0 || bucketMinutes > 60 {
		return hourFraction
	}
	hour := math.Floor(hourFraction)
	minutes := (hourFraction - hour) * 60
	snapped := math.Floor(minutes/float64(bucketMinutes)+0.5) * float64(bucketMinutes)
	if snapped >= 60 {
		hour++
		snapped -= 60
	}
	return hour + snapped/60
}

// SnapTime recomposes a snapped hour fraction into a timestamp on the
// target date, at second zero.
func SnapTime(date time.Time, hourFraction float64, bucketMinutes int) time.Time {
	frac := SnapToGrid(hourFraction, bucketMinutes)
	hour := int(math.Floor(frac))
	minute := int(math.Round((frac - math.Floor(frac)) * 60))
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}
