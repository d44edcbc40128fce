package route

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"caldeck/src-server/calendar"
	"caldeck/src-server/model"
	"caldeck/src-server/utils"
)

// Drag adapts the pointer/drag transport contract onto the state
// machine. The payload shapes here are the only thing the machine
// depends on; it never learns whether the gesture came from mouse,
// touch or something else.
func Drag(muxer *http.ServeMux, as *utils.AppState) {
	type PickupReqBody struct {
		EventID           string  `json:"eventId"`
		OriginView        string  `json:"originView"`
		HeightHint        float64 `json:"heightHint"`
		IsMultiDay        bool    `json:"isMultiDay"`
		MultiDayWidthHint float64 `json:"multiDayWidthHint"`
	}

	type TargetReqBody struct {
		DateUnix     int64    `json:"dateUnix"`
		HourFraction *float64 `json:"hourFraction"`
	}

	target := func(reqBody TargetReqBody) calendar.DropTarget {
		t := calendar.DropTarget{HourFraction: reqBody.HourFraction}
		if reqBody.DateUnix != 0 {
			t.Date = calendar.DayOf(time.Unix(reqBody.DateUnix, 0).In(as.Config.GetLocation()))
		}
		return t
	}

	muxer.HandleFunc("POST /calendar/drag/pickup", func(w http.ResponseWriter, r *http.Request) {
		var reqBody PickupReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil || reqBody.EventID == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Please provide an event id"}`))
			return
		}
		originView, err := calendar.ParseView(reqBody.OriginView)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Unknown origin view"}`))
			return
		}

		subjectModel := new(model.Event)
		if err := as.BunDB.NewSelect().
			Model(subjectModel).
			Where("id = ?", reqBody.EventID).
			Scan(r.Context()); err != nil {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Event not found"}`))
			return
		}

		if err := as.DragMachine.Pickup(calendar.PickupPayload{
			Event:             subjectModel.ToCalendarEvent(as.Config.GetLocation()),
			OriginView:        originView,
			HeightHint:        reqBody.HeightHint,
			IsMultiDay:        reqBody.IsMultiDay,
			MultiDayWidthHint: reqBody.MultiDayWidthHint,
		}); err != nil {
			// a gesture is already live; the transport should have
			// serialized this
			slog.Warn("drag pickup refused", "error", err)
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error":"A drag session is already active"}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	})

	muxer.HandleFunc("POST /calendar/drag/hover", func(w http.ResponseWriter, r *http.Request) {
		var reqBody TargetReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Invalid request body"}`))
			return
		}

		as.DragMachine.Hover(target(reqBody))

		session := as.DragMachine.Session()
		if session == nil {
			// malformed payloads abort the gesture, not the request
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"cancelled":true}`))
			return
		}
		respBodyJson, _ := json.Marshal(map[string]interface{}{
			"provisionalUnix": session.Provisional.Unix(),
		})
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	})

	muxer.HandleFunc("POST /calendar/drag/drop", func(w http.ResponseWriter, r *http.Request) {
		var reqBody TargetReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Invalid request body"}`))
			return
		}

		updated, ok := as.DragMachine.Drop(target(reqBody))
		if !ok {
			// either a cancelled gesture or a no-op move; both end the
			// session without an update
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"updated":false}`))
			return
		}

		respBodyJson, _ := json.Marshal(map[string]interface{}{
			"updated": true,
			"event":   eventToResp(updated),
		})
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	})

	muxer.HandleFunc("POST /calendar/drag/cancel", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		as.DragMachine.Cancel()
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	})
}

// PersistDragUpdate is the update callback wired into the drag machine:
// a committed drop lands in storage like any other modification.
func PersistDragUpdate(as *utils.AppState) func(calendar.Event) {
	return func(e calendar.Event) {
		eventModel := model.FromCalendarEvent(e)

		startTimer := time.Now()
		if err := eventModel.Upsert(context.Background(), as.BunDB); err != nil {
			slog.Error("can't persist drag update", "event", e.ID, "error", err)
			return
		}
		select {
		case as.MetricChans.DatabaseWrite <- float64(time.Since(startTimer).Microseconds()):
		default:
		}
		slog.Debug("drag update persisted", "event", e.ID, "start", e.Start, "end", e.End)
	}
}
