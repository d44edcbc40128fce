package route

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"caldeck/src-server/calendar"
	"caldeck/src-server/model"
	"caldeck/src-server/utils"

	"github.com/google/uuid"
)

var errNaturalDate = errors.New("can't parse the natural date")

type OneEventRespBody struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Color       string `json:"color"`
	StartUnix   int64  `json:"startUnix"`
	EndUnix     int64  `json:"endUnix"`
	AllDay      bool   `json:"allDay"`
}

func eventToResp(e calendar.Event) OneEventRespBody {
	return OneEventRespBody{
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

// eventsInRange loads stored events plus holiday rows converted to
// all-day events, all as core values in the configured location.
func eventsInRange(r *http.Request, as *utils.AppState, from, to time.Time) ([]calendar.Event, error) {
	loc := as.Config.GetLocation()

	startTimer := time.Now()
	eventModels, err := model.GetEventsInRange(r.Context(), as.BunDB, from.Unix(), to.Unix())
	if err != nil {
		return nil, err
	}
	select {
	case as.MetricChans.DatabaseRead <- float64(time.Since(startTimer).Microseconds()):
	default:
	}

	events := make([]calendar.Event, 0, len(eventModels))
	for _, m := range eventModels {
		events = append(events, m.ToCalendarEvent(loc))
	}

	holidayModels, err := model.GetHolidaysInRange(r.Context(), as.BunDB, from, to)
	if err != nil {
		return nil, err
	}
	for _, h := range holidayModels {
		e, err := h.ToCalendarEvent(loc)
		if err != nil {
			slog.Warn("skipping malformed holiday row", "date", h.Date, "error", err)
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func Calendar(muxer *http.ServeMux, as *utils.AppState) {
	type GetEventsReqBody struct {
		StartUnix int64 `json:"startUnix"`
		EndUnix   int64 `json:"endUnix"`
	}

	// get all events intersecting a date range, holidays included
	muxer.HandleFunc("POST /calendar/get-events", func(w http.ResponseWriter, r *http.Request) {
		var reqBody GetEventsReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Invalid request body"}`))
			return
		}
		if reqBody.StartUnix == 0 || reqBody.EndUnix == 0 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Please provide a start date and end date"}`))
			return
		}
		loc := as.Config.GetLocation()
		events, err := eventsInRange(r, as,
			time.Unix(reqBody.StartUnix, 0).In(loc),
			time.Unix(reqBody.EndUnix, 0).In(loc))
		if err != nil {
			slog.Error("can't get events", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Can't get events"}`))
			return
		}

		respBody := make([]OneEventRespBody, 0, len(events))
		for _, e := range calendar.SortForDisplay(events) {
			respBody = append(respBody, eventToResp(e))
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

	type CreateEventReqBody struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Location    string `json:"location"`
		Color       string `json:"color"`
		StartUnix   int64  `json:"startUnix"`
		EndUnix     int64  `json:"endUnix"`
		AllDay      bool   `json:"allDay"`
		// free-text alternative to startUnix/endUnix, e.g. "tomorrow 3pm"
		NaturalDate string `json:"naturalDate"`
	}

	parseCreateBody := func(reqBody CreateEventReqBody) (model.Event, error) {
		loc := as.Config.GetLocation()
		start := time.Unix(reqBody.StartUnix, 0).In(loc)
		end := time.Unix(reqBody.EndUnix, 0).In(loc)

		if reqBody.StartUnix == 0 && reqBody.NaturalDate != "" {
			result, err := as.When.Parse(reqBody.NaturalDate, time.Now().In(loc))
			if err != nil || result == nil {
				return model.Event{}, errNaturalDate
			}
			start = result.Time
			end = start.Add(calendar.DefaultCreationDuration)
		}

		e := calendar.Event{
			Title:       utils.CleanupTitle(reqBody.Title),
			Description: reqBody.Description,
			Location:    reqBody.Location,
			Start:       start,
			End:         end,
			AllDay:      reqBody.AllDay,
		}
		if reqBody.Color != "" {
			color, err := calendar.ParseColor(reqBody.Color)
			if err != nil {
				return model.Event{}, err
			}
			e.Color = color
		}
		if err := e.Valid(); err != nil {
			return model.Event{}, err
		}
		return model.FromCalendarEvent(calendar.NormalizeAllDay(e)), nil
	}

	// create a new event; the success response is the stored event
	muxer.HandleFunc("POST /calendar/create-event", func(w http.ResponseWriter, r *http.Request) {
		var reqBody CreateEventReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Invalid request body"}`))
			return
		}

		eventModel, err := parseCreateBody(reqBody)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"` + err.Error() + `"}`))
			return
		}
		// an empty id means "not yet persisted"; minting one is this
		// layer's job, never the core's
		eventModel.ID = uuid.NewString()

		startTimer := time.Now()
		if err := eventModel.Upsert(r.Context(), as.BunDB); err != nil {
			slog.Error("can't create event", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Can't create event"}`))
			return
		}
		select {
		case as.MetricChans.DatabaseWrite <- float64(time.Since(startTimer).Microseconds()):
		default:
		}

		respBodyJson, _ := json.Marshal(eventToResp(eventModel.ToCalendarEvent(as.Config.GetLocation())))
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	})

	type ModifyEventReqBody struct {
		ID string `json:"id"`
		CreateEventReqBody
	}

	muxer.HandleFunc("POST /calendar/modify-event", func(w http.ResponseWriter, r *http.Request) {
		var reqBody ModifyEventReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Invalid request body"}`))
			return
		}
		if reqBody.ID == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Please provide an event id"}`))
			return
		}

		eventModel, err := parseCreateBody(reqBody.CreateEventReqBody)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"` + err.Error() + `"}`))
			return
		}
		eventModel.ID = reqBody.ID

		if err := eventModel.Upsert(r.Context(), as.BunDB); err != nil {
			slog.Error("can't modify event", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Can't modify event"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	})

	type DeleteEventReqBody struct {
		ID string `json:"id"`
	}

	muxer.HandleFunc("POST /calendar/delete-event", func(w http.ResponseWriter, r *http.Request) {
		var reqBody DeleteEventReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil || reqBody.ID == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Please provide an event id"}`))
			return
		}
		if _, err := as.BunDB.NewDelete().
			Model((*model.Event)(nil)).
			Where("id = ?", reqBody.ID).
			Exec(r.Context()); err != nil {
			slog.Error("can't delete event", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Can't delete event"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	})
}
