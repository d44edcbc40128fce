package route

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"caldeck/src-server/calendar"
	"caldeck/src-server/model"
	"caldeck/src-server/utils"
)

// Command exposes the single dispatcher the views talk to instead of a
// web of per-dialog callbacks: create-manual, create-from-suggestion,
// select-event and delete-event all funnel through here.
func Command(muxer *http.ServeMux, as *utils.AppState) {
	type CommandReqBody struct {
		Kind         string   `json:"kind"`
		DateUnix     int64    `json:"dateUnix"`
		HourFraction *float64 `json:"hourFraction"`
		EventID      string   `json:"eventId"`

		Suggestion struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Location    string `json:"location"`
			Category    string `json:"category"`
		} `json:"suggestion"`
	}

	parseKind := func(s string) (calendar.CommandKind, bool) {
		switch s {
		case "create-manual":
			return calendar.CreateManual, true
		case "create-from-suggestion":
			return calendar.CreateFromSuggestion, true
		case "select-event":
			return calendar.SelectEvent, true
		case "delete-event":
			return calendar.DeleteEvent, true
		default:
			return 0, false
		}
	}

	muxer.HandleFunc("POST /calendar/command", func(w http.ResponseWriter, r *http.Request) {
		var reqBody CommandReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Invalid request body"}`))
			return
		}
		kind, ok := parseKind(reqBody.Kind)
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Unknown command kind"}`))
			return
		}

		loc := as.Config.GetLocation()
		cmd := calendar.Command{
			Kind:         kind,
			HourFraction: reqBody.HourFraction,
			EventID:      reqBody.EventID,
		}
		if reqBody.DateUnix != 0 {
			cmd.Day = calendar.DayOf(time.Unix(reqBody.DateUnix, 0).In(loc))
		}
		if kind == calendar.CreateFromSuggestion {
			color := calendar.ColorBlue
			if reqBody.Suggestion.Category != "" {
				parsed, err := calendar.ParseColor(reqBody.Suggestion.Category)
				if err != nil {
					w.WriteHeader(http.StatusBadRequest)
					w.Write([]byte(`{"error":"Unknown suggestion category"}`))
					return
				}
				color = parsed
			}
			cmd.Suggestion = calendar.Suggestion{
				Title:       utils.CleanupTitle(reqBody.Suggestion.Title),
				Description: reqBody.Suggestion.Description,
				Location:    reqBody.Suggestion.Location,
				Color:       color,
			}
		}

		var respBody interface{}
		var dispatchErr error
		dispatcher := &calendar.Dispatcher{
			// creation opens a dialog on the client with a provisional
			// event; nothing is persisted until the user confirms via
			// create-event
			OnCreate: func(e calendar.Event) {
				respBody = map[string]interface{}{
					"provisional": eventToResp(e),
				}
			},
			OnSelect: func(eventID string) {
				selected := new(model.Event)
				if err := as.BunDB.NewSelect().
					Model(selected).
					Where("id = ?", eventID).
					Scan(r.Context()); err != nil {
					dispatchErr = err
					return
				}
				respBody = map[string]interface{}{
					"event": eventToResp(selected.ToCalendarEvent(loc)),
				}
			},
			OnDelete: func(eventID string) {
				if _, err := as.BunDB.NewDelete().
					Model((*model.Event)(nil)).
					Where("id = ?", eventID).
					Exec(r.Context()); err != nil {
					dispatchErr = err
					return
				}
				respBody = map[string]interface{}{"ok": true}
			},
		}

		if err := dispatcher.Dispatch(cmd); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"` + err.Error() + `"}`))
			return
		}
		if dispatchErr != nil {
			slog.Error("command failed", "kind", reqBody.Kind, "error", dispatchErr)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Command failed"}`))
			return
		}

		respBodyJson, err := json.Marshal(respBody)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Can't marshal response body"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	})
}
