package route

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"caldeck/src-server/calendar"
	"caldeck/src-server/utils"
)

// Layout runs the pure layout engine server-side for one day or week
// and hands the client ready-to-render rectangles. Recomputation is
// idempotent; the client calls this whenever the event list, container
// size, view or date changes.
func Layout(muxer *http.ServeMux, as *utils.AppState) {
	type LayoutReqBody struct {
		// reference date, unix seconds
		DateUnix int64  `json:"dateUnix"`
		View     string `json:"view"`

		StartHour      float64 `json:"startHour"`
		CellHeight     float64 `json:"cellHeight"`
		MinEventHeight float64 `json:"minEventHeight"`

		// all-day row metrics for the "+N more" estimate
		ContainerHeight float64 `json:"containerHeight"`
		RowHeight       float64 `json:"rowHeight"`
		RowGap          float64 `json:"rowGap"`
	}

	type OnePositionedRespBody struct {
		Event         OneEventRespBody `json:"event"`
		Top           float64          `json:"top"`
		Height        float64          `json:"height"`
		Column        int              `json:"column"`
		WidthFraction float64          `json:"widthFraction"`
		Left          float64          `json:"left"`
		ZIndex        int              `json:"zIndex"`
	}

	type OneSpanCellRespBody struct {
		Event      OneEventRespBody `json:"event"`
		IsFirstDay bool             `json:"isFirstDay"`
		IsLastDay  bool             `json:"isLastDay"`
	}

	type OneDayRespBody struct {
		DateUnix     int64                   `json:"dateUnix"`
		Positioned   []OnePositionedRespBody `json:"positioned"`
		AllDayRow    []OneSpanCellRespBody   `json:"allDayRow"`
		VisibleCount int                     `json:"visibleCount"`
	}

	type LayoutRespBody struct {
		Title string           `json:"title"`
		Days  []OneDayRespBody `json:"days"`
	}

	muxer.HandleFunc("POST /calendar/layout", func(w http.ResponseWriter, r *http.Request) {
		var reqBody LayoutReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Invalid request body"}`))
			return
		}
		if reqBody.DateUnix == 0 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Please provide a reference date"}`))
			return
		}
		view, err := calendar.ParseView(reqBody.View)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Unknown view"}`))
			return
		}
		if reqBody.CellHeight <= 0 {
			reqBody.CellHeight = 72
		}
		if reqBody.MinEventHeight <= 0 {
			reqBody.MinEventHeight = 12
		}

		loc := as.Config.GetLocation()
		ref := time.Unix(reqBody.DateUnix, 0).In(loc)

		// the laid-out date range per view
		var days []time.Time
		switch view {
		case calendar.DayView:
			days = []time.Time{calendar.DayOf(ref)}
		case calendar.WeekView:
			start := calendar.StartOfWeek(ref)
			for i := 0; i < 7; i++ {
				days = append(days, start.AddDate(0, 0, i))
			}
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Layout only applies to day and week views"}`))
			return
		}

		events, err := eventsInRange(r, as, days[0], days[len(days)-1].Add(24*time.Hour))
		if err != nil {
			slog.Error("can't get events for layout", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Can't get events"}`))
			return
		}

		metrics := calendar.Metrics{
			StartHour:      reqBody.StartHour,
			CellHeight:     reqBody.CellHeight,
			MinEventHeight: reqBody.MinEventHeight,
		}

		startTimer := time.Now()
		respBody := LayoutRespBody{
			Title: calendar.Title(ref, view),
			Days:  make([]OneDayRespBody, 0, len(days)),
		}
		for _, day := range days {
			dayResp := OneDayRespBody{DateUnix: day.Unix()}
			for _, p := range calendar.LayoutDay(events, day, metrics) {
				dayResp.Positioned = append(dayResp.Positioned, OnePositionedRespBody{
					Event:         eventToResp(p.Event),
					Top:           p.Top,
					Height:        p.Height,
					Column:        p.Column,
					WidthFraction: p.WidthFraction,
					Left:          p.Left,
					ZIndex:        p.ZIndex,
				})
			}
			allDayRow := calendar.LayoutAllDayRow(events, day)
			for _, cell := range allDayRow {
				dayResp.AllDayRow = append(dayResp.AllDayRow, OneSpanCellRespBody{
					Event:      eventToResp(cell.Event),
					IsFirstDay: cell.IsFirstDay,
					IsLastDay:  cell.IsLastDay,
				})
			}
			dayResp.VisibleCount = calendar.VisibleCount(
				reqBody.ContainerHeight, reqBody.RowHeight, reqBody.RowGap, len(allDayRow))
			respBody.Days = append(respBody.Days, dayResp)
		}
		select {
		case as.MetricChans.LayoutCompute <- float64(time.Since(startTimer).Microseconds()):
		default:
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

	type NavigateReqBody struct {
		DateUnix  int64  `json:"dateUnix"`
		View      string `json:"view"`
		Direction string `json:"direction"` // previous | next | today
	}

	muxer.HandleFunc("POST /calendar/navigate", func(w http.ResponseWriter, r *http.Request) {
		var reqBody NavigateReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil || reqBody.DateUnix == 0 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Invalid request body"}`))
			return
		}
		view, err := calendar.ParseView(reqBody.View)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Unknown view"}`))
			return
		}

		loc := as.Config.GetLocation()
		ref := time.Unix(reqBody.DateUnix, 0).In(loc)
		switch reqBody.Direction {
		case "previous":
			ref = calendar.Navigate(ref, view, calendar.Previous)
		case "next":
			ref = calendar.Navigate(ref, view, calendar.Next)
		case "today":
			ref = calendar.Today(time.Now().In(loc))
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Unknown direction"}`))
			return
		}

		respBodyJson, _ := json.Marshal(map[string]interface{}{
			"dateUnix": ref.Unix(),
			"title":    calendar.Title(ref, view),
		})
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	})
}
