package metric

import (
	"log/slog"
	"time"

	"caldeck/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dragCommitCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caldeck_drag_commit_total",
		Help: "Drag gestures that committed an event update",
	})
	dragCancelCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caldeck_drag_cancel_total",
		Help: "Drag gestures that ended without an update",
	})
)

func IncDragCommit() { dragCommitCount.Inc() }
func IncDragCancel() { dragCancelCount.Inc() }

func databaseEmptyRead(as *utils.AppState, tickerInterval *time.Duration) {
	databaseEmptyRead := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "caldeck_database_empty_read_microsec",
		Help: "The latency of an empty database read in microseconds",
	})
	good := true
	if err := prometheus.Register(databaseEmptyRead); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register caldeck_database_empty_read_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("caldeck_database_empty_read_microsec metric registered")
		databaseEmptyRead.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				prometheus.Unregister(databaseEmptyRead)
				return
			case <-ticker.C:
				latency, err := database(as)
				if err != nil {
					slog.Error("can't get database latency", "error", err)
					continue
				}
				databaseEmptyRead.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

func channelGauge(as *utils.AppState, name, help string, source chan float64, clearTickerInterval *time.Duration) {
	gauge := promauto.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	})
	good := true
	if err := prometheus.Register(gauge); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register metric", "name", name, "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("metric registered", "name", name)
		gauge.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				prometheus.Unregister(gauge)
				return
			case latency := <-source:
				gauge.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				gauge.Set(0)
			}
		}
	}()
}

func Init(as *utils.AppState) {
	probeInterval := 5 * time.Minute
	clearInterval := time.Minute

	databaseEmptyRead(as, &probeInterval)
	channelGauge(as,
		"caldeck_database_read_microsec",
		"The latency of a database read in microseconds",
		as.MetricChans.DatabaseRead, &clearInterval)
	channelGauge(as,
		"caldeck_database_write_microsec",
		"The latency of a database write in microseconds",
		as.MetricChans.DatabaseWrite, &clearInterval)
	channelGauge(as,
		"caldeck_layout_compute_microsec",
		"The latency of a full layout pass in microseconds",
		as.MetricChans.LayoutCompute, &clearInterval)
}
