package models

import "time"

// TakenWindow is the date range covered by a manual "taken" override.
// From is inclusive, Until is exclusive; a nil bound is open on that side and
// both nil means the room is taken indefinitely.
type TakenWindow struct {
	From  *time.Time `json:"from,omitempty"`
	Until *time.Time `json:"until,omitempty"`
}

// Overlaps reports whether [start, end) intersects the window.
func (w TakenWindow) Overlaps(start, end time.Time) bool {
	startsBeforeWindowEnds := w.Until == nil || start.Before(*w.Until)
	windowStartsBeforeEnd := w.From == nil || w.From.Before(end)
	return startsBeforeWindowEnds && windowStartsBeforeEnd
}
