// Package metrics exports simulation activity to Prometheus. A Recorder is
// fed from the event bus of every running simulation.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-heist/internal/games/heist/event"
)

const namespace = "heist"

// Recorder holds the Prometheus collectors. It is safe for concurrent use,
// so one Recorder can serve every SSH session.
type Recorder struct {
	registry *prometheus.Registry

	events      *prometheus.CounterVec
	cards       *prometheus.CounterVec
	deaths      prometheus.Counter
	extractions prometheus.Counter
	rooms       prometheus.Counter
	activeRuns  prometheus.Gauge
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Simulation events delivered, by kind.",
		}, []string{"kind"}),
		cards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cards_found_total",
			Help:      "Loot cards found, by rarity.",
		}, []string{"rarity"}),
		deaths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_deaths_total",
			Help:      "Times a player was killed.",
		}),
		extractions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Runs that reached an extraction zone.",
		}),
		rooms: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_loaded_total",
			Help:      "Room loads, including the start room of each run.",
		}),
		activeRuns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_runs",
			Help:      "Runs currently in progress.",
		}),
	}
	r.registry.MustRegister(r.events, r.cards, r.deaths, r.extractions, r.rooms, r.activeRuns)
	return r
}

// Handle records one event. It has the event.Handler signature.
// player-extracted repeats every tick after extraction, so runs are counted
// by RunEnded instead.
func (r *Recorder) Handle(e event.Event) {
	r.events.WithLabelValues(string(e.Kind)).Inc()

	switch e.Kind {
	case event.PlayerDied:
		r.deaths.Inc()
	case event.LevelChanged:
		r.rooms.Inc()
	case event.RareCardFound:
		r.cards.WithLabelValues("rare").Inc()
	case event.CommonCardFound:
		r.cards.WithLabelValues("common").Inc()
	}
}

// RunStarted and RunEnded track the active run gauge.
func (r *Recorder) RunStarted() { r.activeRuns.Inc() }

// RunEnded decrements the active run gauge and counts the run as an
// extraction when the player got out.
func (r *Recorder) RunEnded(extracted bool) {
	r.activeRuns.Dec()
	if extracted {
		r.extractions.Inc()
	}
}

// TrackDropped exports a counter read from fn, such as AsyncSink.Dropped.
func (r *Recorder) TrackDropped(fn func() uint64) {
	r.registry.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Events dropped because the metrics queue was full.",
	}, func() float64 { return float64(fn()) }))
}

// Registry returns the registry the collectors are registered in.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler returns the /metrics HTTP handler.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve runs the metrics endpoint on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
