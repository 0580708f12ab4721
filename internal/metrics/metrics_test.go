package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vovakirdan/tui-heist/internal/games/heist/event"
)

func TestRecorderCountsEvents(t *testing.T) {
	r := NewRecorder()

	for _, k := range []event.Kind{
		event.PlayerDied, event.PlayerDied,
		event.LevelChanged, event.RareCardFound, event.CommonCardFound, event.CommonCardFound,
	} {
		r.Handle(event.Event{Kind: k})
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"deaths", testutil.ToFloat64(r.deaths), 2},
		{"rooms", testutil.ToFloat64(r.rooms), 1},
		{"rare cards", testutil.ToFloat64(r.cards.WithLabelValues("rare")), 1},
		{"common cards", testutil.ToFloat64(r.cards.WithLabelValues("common")), 2},
		{"player-died events", testutil.ToFloat64(r.events.WithLabelValues("player-died")), 2},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, expected %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestExtractionCountedOncePerRun(t *testing.T) {
	r := NewRecorder()
	r.RunStarted()

	// An extracted player keeps emitting player-extracted every tick.
	for i := 0; i < 30; i++ {
		r.Handle(event.Event{Kind: event.PlayerExtracted})
	}
	if got := testutil.ToFloat64(r.extractions); got != 0 {
		t.Errorf("extractions = %v before the run ended, expected 0", got)
	}
	if got := testutil.ToFloat64(r.events.WithLabelValues("player-extracted")); got != 30 {
		t.Errorf("player-extracted events = %v, expected 30", got)
	}

	r.RunEnded(true)
	r.RunStarted()
	r.RunEnded(false)

	if got := testutil.ToFloat64(r.extractions); got != 1 {
		t.Errorf("extractions = %v, expected 1", got)
	}
}

func TestRecorderFromBus(t *testing.T) {
	r := NewRecorder()
	bus := event.NewBus()
	bus.Subscribe(r.Handle)

	bus.Emit(event.Event{Kind: event.PlayerJumped})
	if got := testutil.ToFloat64(r.events.WithLabelValues("player-jumped")); got != 0 {
		t.Errorf("events before Flush() = %v, expected 0", got)
	}

	bus.Flush()
	if got := testutil.ToFloat64(r.events.WithLabelValues("player-jumped")); got != 1 {
		t.Errorf("events after Flush() = %v, expected 1", got)
	}
}

func TestActiveRuns(t *testing.T) {
	r := NewRecorder()
	r.RunStarted()
	r.RunStarted()
	r.RunEnded(false)
	if got := testutil.ToFloat64(r.activeRuns); got != 1 {
		t.Errorf("active runs = %v, expected 1", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRecorder()
	r.TrackDropped(func() uint64 { return 7 })
	r.Handle(event.Event{Kind: event.PlayerDied})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	for _, want := range []string{"heist_player_deaths_total 1", "heist_events_dropped_total 7", `heist_events_total{kind="player-died"} 1`} {
		if !strings.Contains(body, want) {
			t.Errorf("/metrics missing %q", want)
		}
	}
}
