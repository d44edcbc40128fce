package utils

import (
	"database/sql"
	"log/slog"
	"os"
	"sync"
	"syscall"

	"caldeck/src-server/calendar"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type AppState struct {
	Config *Config
	RawDB  *sql.DB
	BunDB  *bun.DB
	When   *when.Parser

	// the one live drag session; the HTTP transport serializes gestures
	DragMachine *calendar.DragMachine

	// suggestion client, nil when GROQ_API_KEY is unset
	Suggest *SuggestClient

	MetricChans *Metric

	AppCloseSignalChan chan os.Signal

	gracefulShutdownChans []chan struct{}
	gracefulShutdownMu    sync.Mutex
}

func NewAppState() *AppState {
	as := &AppState{
		MetricChans:        NewMetric(),
		AppCloseSignalChan: make(chan os.Signal, 1),
	}

	// date parser for free-text create requests
	as.When = when.New(nil)
	as.When.Add(en.All...)
	as.When.Add(common.All...)

	// env
	as.Config = NewConfig()

	// database
	var err error
	as.RawDB, err = sql.Open(sqliteshim.ShimName, "./sqlite.db?mode=rwc")
	if err != nil {
		slog.Error("cannot open sqlite database", "error", err)
		os.Exit(1)
	}
	as.RawDB.SetMaxIdleConns(8)
	as.BunDB = bun.NewDB(as.RawDB, sqlitedialect.New())

	if apiKey := as.Config.GetGroqApiKey(); apiKey != "" {
		client, err := NewSuggestClient(apiKey)
		if err != nil {
			slog.Warn("can't init suggestion client", "error", err)
		} else {
			as.Suggest = client
		}
	}

	return as
}

// CreateGracefulShutdownChan hands a goroutine its own channel that
// closes when the app is shutting down.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	as.gracefulShutdownMu.Lock()
	defer as.gracefulShutdownMu.Unlock()
	ch := make(chan struct{})
	as.gracefulShutdownChans = append(as.gracefulShutdownChans, ch)
	return &ch
}

func (as *AppState) GracefulShutdown() {
	as.gracefulShutdownMu.Lock()
	defer as.gracefulShutdownMu.Unlock()
	for _, ch := range as.gracefulShutdownChans {
		close(ch)
	}
	as.gracefulShutdownChans = nil
	if err := as.BunDB.Close(); err != nil {
		slog.Warn("can't close database", "error", err)
	}
}

// NudgeShutdown lets background goroutines ask the whole app to stop.
func (as *AppState) NudgeShutdown() {
	as.AppCloseSignalChan <- syscall.SIGTERM
}
