package route

import (
	"log/slog"
	"net/http"
	"time"

	"caldeck/src-server/model"
	"caldeck/src-server/utils"

	ics "github.com/arran4/golang-ical"
)

// Ical exports the stored events as an ICS feed so external calendar
// apps can subscribe to them.
func Ical(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /calendar.ics", func(w http.ResponseWriter, r *http.Request) {
		loc := as.Config.GetLocation()

		// a year back, a year ahead
		now := time.Now().In(loc)
		eventModels, err := model.GetEventsInRange(
			r.Context(), as.BunDB,
			now.AddDate(-1, 0, 0).Unix(),
			now.AddDate(1, 0, 0).Unix(),
		)
		if err != nil {
			slog.Error("can't get events for ics export", "error", err)
			http.Error(w, "Can't get events", http.StatusInternalServerError)
			return
		}

		cal := ics.NewCalendar()
		cal.SetMethod(ics.MethodPublish)
		cal.SetProductId("-//caldeck//calendar//EN")
		for _, eventModel := range eventModels {
			e := eventModel.ToCalendarEvent(loc)
			icsEvent := cal.AddEvent(e.ID)
			icsEvent.SetSummary(e.Title)
			if e.Description != "" {
				icsEvent.SetDescription(e.Description)
			}
			if e.Location != "" {
				icsEvent.SetLocation(e.Location)
			}
			if e.AllDay {
				icsEvent.SetAllDayStartAt(e.Start)
				icsEvent.SetAllDayEndAt(e.End)
			} else {
				icsEvent.SetStartAt(e.Start)
				icsEvent.SetEndAt(e.End)
			}
			icsEvent.SetDtStampTime(time.Now())
		}

		w.Header().Set("Content-Type", "text/calendar")
		w.Header().Set("Content-Disposition", `attachment; filename="caldeck.ics"`)
		if _, err := w.Write([]byte(cal.Serialize())); err != nil {
			slog.Warn("can't write ics response", "error", err)
		}
	})
}
