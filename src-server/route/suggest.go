package route

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"caldeck/src-server/utils"
)

// fallbackSuggestions is served whenever the LLM is unavailable or
// returns something unparseable. The core never sees this policy; it
// only ever receives a finalized suggestion as a plain create request.
var fallbackSuggestions = []utils.EventSuggestion{
	{
		Title:       "Focus Block",
		Description: "Uninterrupted time for deep work",
		Location:    "",
		Category:    "blue",
	},
	{
		Title:       "Coffee Catch-Up",
		Description: "Informal sync with a teammate",
		Location:    "Cafe",
		Category:    "orange",
	},
	{
		Title:       "Walk Break",
		Description: "Step away from the screen for a while",
		Location:    "Outside",
		Category:    "emerald",
	},
}

func Suggest(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("POST /calendar/suggest", func(w http.ResponseWriter, r *http.Request) {
		var slot utils.SuggestSlot
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Invalid request body"}`))
			return
		}

		suggestions := fallbackSuggestions
		if as.Suggest != nil {
			fetched, err := as.Suggest.Request(slot)
			if err != nil {
				slog.Warn("suggestion fetch failed, serving fallback", "error", err)
			} else if len(fetched) > 0 {
				suggestions = fetched
			}
		}

		respBodyJson, err := json.Marshal(suggestions)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Can't marshal response body"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	})
}
