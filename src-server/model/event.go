package model

import (
	"context"
	"fmt"
	"time"

	"caldeck/src-server/calendar"

	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID          string `bun:"id,pk"`         // required
	Title       string `bun:"title,notnull"` // required
	Description string `bun:"description"`
	Location    string `bun:"location"`
	Color       string `bun:"color"`

	StartUnix int64 `bun:"start_date,notnull"` // required
	EndUnix   int64 `bun:"end_date,notnull"`   // required
	AllDay    bool  `bun:"all_day"`

	CreatedAt int64 `bun:"created_at,notnull"`
	UpdatedAt int64 `bun:"updated_at"`
}

func (e *Event) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case e.ID == "":
		return fmt.Errorf("(*Event).Upsert: event id is blank")
	case e.Title == "":
		return fmt.Errorf("(*Event).Upsert: title is blank")
	case e.StartUnix == 0:
		return fmt.Errorf("(*Event).Upsert: start date is blank")
	case e.EndUnix == 0:
		return fmt.Errorf("(*Event).Upsert: end date is blank")
	case e.StartUnix > e.EndUnix:
		return fmt.Errorf("(*Event).Upsert: start date must not be after end date")
	}
	if e.Color != "" {
		if _, err := calendar.ParseColor(e.Color); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}

	exists, err := db.NewSelect().
		Model((*Event)(nil)).
		Where("id = ?", e.ID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*Event).Upsert: %w", err)
	}

	switch exists {
	case true:
		e.UpdatedAt = time.Now().Unix()
		if _, err := db.NewUpdate().
			Model(e).
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	case false:
		if _, err := db.NewInsert().
			Model(e).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	}

	return nil
}

// GetEventsInRange returns every event whose interval intersects the
// closed range, not just those fully contained in it, so spanning
// events still show up on their interior days.
func GetEventsInRange(ctx context.Context, db bun.IDB, startUnix, endUnix int64) ([]Event, error) {
	events := make([]Event, 0)
	if err := db.NewSelect().
		Model(&events).
		Where("start_date <= ?", endUnix).
		Where("end_date >= ?", startUnix).
		Order("start_date ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("GetEventsInRange: %w", err)
	}
	return events, nil
}

// ToCalendarEvent converts the stored row into the value type the
// layout engine and drag machine consume. Times are interpreted as
// naive wall clock in loc.
func (e *Event) ToCalendarEvent(loc *time.Location) calendar.Event {
	color := calendar.ColorBlue
	if e.Color != "" {
		if parsed, err := calendar.ParseColor(e.Color); err == nil {
			color = parsed
		}
	}
	return calendar.NormalizeAllDay(calendar.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Start:       time.Unix(e.StartUnix, 0).In(loc),
		End:         time.Unix(e.EndUnix, 0).In(loc),
		AllDay:      e.AllDay,
		Color:       color,
		Location:    e.Location,
	})
}

// FromCalendarEvent fills the row from a core event value.
func FromCalendarEvent(e calendar.Event) Event {
	return Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Color:       e.Color.String(),
		StartUnix:   e.Start.Unix(),
		EndUnix:     e.End.Unix(),
		AllDay:      e.AllDay,
	}
}
