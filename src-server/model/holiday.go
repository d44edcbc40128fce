package model

import (
	"context"
	"fmt"
	"time"

	"caldeck/src-server/calendar"

	"github.com/uptrace/bun"
)

// Holiday is one row of the external holiday feed. The route layer
// converts these into ordinary all-day events before they reach the
// layout engine; nothing in the core knows about holidays.
type Holiday struct {
	bun.BaseModel `bun:"table:holidays"`

	Date string `bun:"date,pk"` // YYYY-MM-DD
	Name string `bun:"name,notnull"`
}

func (h *Holiday) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case h.Date == "":
		return fmt.Errorf("(*Holiday).Upsert: date is blank")
	case h.Name == "":
		return fmt.Errorf("(*Holiday).Upsert: name is blank")
	}
	if _, err := time.Parse("2006-01-02", h.Date); err != nil {
		return fmt.Errorf("(*Holiday).Upsert: invalid date: %w", err)
	}

	if _, err := db.NewInsert().
		Model(h).
		On("CONFLICT (date) DO UPDATE").
		Set("name = EXCLUDED.name").
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Holiday).Upsert: %w", err)
	}
	return nil
}

func GetHolidaysInRange(ctx context.Context, db bun.IDB, from, to time.Time) ([]Holiday, error) {
	holidays := make([]Holiday, 0)
	if err := db.NewSelect().
		Model(&holidays).
		Where("date >= ?", from.Format("2006-01-02")).
		Where("date <= ?", to.Format("2006-01-02")).
		Order("date ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("GetHolidaysInRange: %w", err)
	}
	return holidays, nil
}

// ToCalendarEvent turns the holiday into a normalized all-day event.
func (h *Holiday) ToCalendarEvent(loc *time.Location) (calendar.Event, error) {
	day, err := time.ParseInLocation("2006-01-02", h.Date, loc)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("(*Holiday).ToCalendarEvent: %w", err)
	}
	return calendar.NormalizeAllDay(calendar.Event{
		ID:     "holiday-" + h.Date,
		Title:  h.Name,
		Start:  day,
		End:    day,
		AllDay: true,
		Color:  calendar.ColorEmerald,
	}), nil
}
