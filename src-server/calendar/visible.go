package calendar

import "math"

// VisibleCount computes how many stacked rows fit in a measured
// container before a "+N more" affordance is needed. Unknown or
// degenerate measurements fail open: everything is shown rather than
// hidden. When the items don't all fit, one slot is reserved for the
// "+N more" row itself.
func VisibleCount(containerHeightPx, rowHeightPx, rowGapPx float64, totalItems int) int {
	slot := rowHeightPx + rowGapPx
	if slot <= 0 || containerHeightPx <= 0 {
		return totalItems
	}
	maxFit := int(math.Floor(containerHeightPx / slot))
	if totalItems <= maxFit {
		return totalItems
	}
	if maxFit-1 < 0 {
		return 0
	}
	return maxFit - 1
}
