package scheduler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"caldeck/src-server/model"
	"caldeck/src-server/utils"

	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
)

// HolidayUpdate refreshes the holiday table from the configured feed
// on a cron schedule, plus once at startup. The feed is a JSON array
// of {"date":"YYYY-MM-DD","localName":"..."} objects (Nager.Date
// shape); "name" is accepted as a fallback key.
func HolidayUpdate(as *utils.AppState) {
	feedURL := as.Config.GetHolidayFeedURL()
	if feedURL == "" {
		return
	}

	refresh := func() {
		if err := refreshHolidays(as, feedURL); err != nil {
			slog.Error("can't refresh holidays", "error", err)
		}
	}
	refresh()

	c := cron.New()
	if _, err := c.AddFunc(as.Config.GetHolidayCron(), refresh); err != nil {
		slog.Error("invalid HOLIDAY_CRON expression", "error", err)
		return
	}
	c.Start()

	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		<-*gracefulShutdownCh
		c.Stop()
	}()
}

type holidayFeedEntry struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

func refreshHolidays(as *utils.AppState, feedURL string) error {
	client := &http.Client{Timeout: time.Minute}
	resp, err := client.Get(feedURL)
	if err != nil {
		return fmt.Errorf("refreshHolidays: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("refreshHolidays: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("refreshHolidays: %w", err)
	}
	entries := make([]holidayFeedEntry, 0)
	if err := json.Unmarshal(body, &entries); err != nil {
		return fmt.Errorf("refreshHolidays: can't parse feed: %w", err)
	}

	if err := as.BunDB.RunInTx(context.Background(), &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, entry := range entries {
			name := entry.LocalName
			if name == "" {
				name = entry.Name
			}
			holidayModel := model.Holiday{Date: entry.Date, Name: name}
			if err := holidayModel.Upsert(ctx, tx); err != nil {
				slog.Warn("skipping malformed holiday entry", "date", entry.Date, "error", err)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("refreshHolidays: %w", err)
	}

	slog.Info("holidays refreshed", "count", len(entries))
	return nil
}
