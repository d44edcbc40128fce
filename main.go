package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"caldeck/src-server/calendar"
	"caldeck/src-server/metric"
	"caldeck/src-server/model"
	"caldeck/src-server/route"
	"caldeck/src-server/scheduler"
	"caldeck/src-server/utils"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	as := utils.NewAppState()

	if err := model.CreateSchema(as.BunDB); err != nil {
		slog.Error("can't create database schema", "error", err)
		os.Exit(1)
	}

	// the one drag machine; committed drops persist like any other
	// event modification
	onUpdate := route.PersistDragUpdate(as)
	as.DragMachine = calendar.NewDragMachine(func(e calendar.Event) {
		onUpdate(e)
		metric.IncDragCommit()
	})
	as.DragMachine.SetCancelHook(metric.IncDragCancel)

	go scheduler.HolidayUpdate(as)
	metric.Init(as)

	// http server
	go func() {
		muxer := http.NewServeMux()
		muxer.Handle("GET /metrics", promhttp.Handler())
		route.Calendar(muxer, as)
		route.Layout(muxer, as)
		route.Drag(muxer, as)
		route.Command(muxer, as)
		route.Suggest(muxer, as)
		route.Ical(muxer, as)
		route.SPA(muxer, as)
		if err := http.ListenAndServe(":"+as.Config.GetPort(), route.WithTelemetry(as, muxer)); err != nil {
			slog.Error("cannot start HTTP server", "error", err)
			as.NudgeShutdown()
		}
	}()

	slog.Info("app is now running, press Ctrl+C to exit", "port", as.Config.GetPort())

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan
	as.GracefulShutdown()

	slog.Info("Gracefully shutting down...")
}
