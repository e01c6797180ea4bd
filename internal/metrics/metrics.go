// Package metrics provides Prometheus metrics for the keyboard core.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label cardinality is bounded by the fixed layer, outcome and count sets.

var (
	// LayerTransitionsTotal counts layer activations and deactivations.
	LayerTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "keyforge_layer_transitions_total",
		Help: "Total number of layer state changes, by layer and direction (on/off/default).",
	}, []string{"layer", "direction"})

	// LeaderOutcomesTotal counts completed leader sequences.
	LeaderOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "keyforge_leader_outcomes_total",
		Help: "Total number of leader sequences, by outcome (matched/timeout/overflow).",
	}, []string{"outcome"})

	// TapDanceResolutionsTotal counts tap dance resolutions.
	TapDanceResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "keyforge_tapdance_resolutions_total",
		Help: "Total number of tap dance resolutions, by dance and tap count bucket.",
	}, []string{"dance", "count"})

	// GameHitsTotal counts mini-game presses.
	GameHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "keyforge_game_presses_total",
		Help: "Total number of mini-game presses, by result (hit/miss).",
	}, []string{"result"})

	// ConfigWritesTotal counts non-volatile config writes.
	ConfigWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "keyforge_config_writes_total",
		Help: "Total number of non-volatile config writes, by result (ok/error).",
	}, []string{"result"})

	// ConfigClampsTotal counts out-of-range persisted fields repaired on load.
	ConfigClampsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "keyforge_config_clamps_total",
		Help: "Total number of persisted fields clamped on load, by field.",
	}, []string{"field"})

	// TicksTotal counts processed ticks.
	TicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keyforge_ticks_total",
		Help: "Total number of processed scan ticks.",
	})

	// KeyEventsTotal counts key events handed to the core.
	KeyEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "keyforge_key_events_total",
		Help: "Total number of key events, by direction (press/release).",
	}, []string{"direction"})

	// EncoderTurnsTotal counts rotary encoder detents.
	EncoderTurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "keyforge_encoder_turns_total",
		Help: "Total number of encoder detents, by direction (cw/ccw).",
	}, []string{"direction"})

	// HighestLayer tracks the current highest active layer.
	HighestLayer = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "keyforge_highest_layer",
		Help: "Identifier of the current highest active layer.",
	})
)

// RecordLayer records a layer transition.
func RecordLayer(layer, direction string) {
	LayerTransitionsTotal.WithLabelValues(layer, direction).Inc()
}

// RecordLeader records a leader outcome.
func RecordLeader(outcome string) {
	LeaderOutcomesTotal.WithLabelValues(outcome).Inc()
}

// RecordTapDance records a tap dance resolution. Counts above three share a bucket.
func RecordTapDance(dance string, count int) {
	bucket := "3+"
	switch count {
	case 1:
		bucket = "1"
	case 2:
		bucket = "2"
	}
	TapDanceResolutionsTotal.WithLabelValues(dance, bucket).Inc()
}

// RecordGamePress records a mini-game press.
func RecordGamePress(hit bool) {
	if hit {
		GameHitsTotal.WithLabelValues("hit").Inc()
		return
	}
	GameHitsTotal.WithLabelValues("miss").Inc()
}

// RecordConfigWrite records a config write result.
func RecordConfigWrite(err error) {
	if err != nil {
		ConfigWritesTotal.WithLabelValues("error").Inc()
		return
	}
	ConfigWritesTotal.WithLabelValues("ok").Inc()
}

// RecordConfigClamp records a clamped field.
func RecordConfigClamp(field string) {
	ConfigClampsTotal.WithLabelValues(field).Inc()
}

// RecordKeyEvent records a key event.
func RecordKeyEvent(pressed bool) {
	if pressed {
		KeyEventsTotal.WithLabelValues("press").Inc()
		return
	}
	KeyEventsTotal.WithLabelValues("release").Inc()
}

// RecordEncoderTurn records one encoder detent.
func RecordEncoderTurn(direction string) {
	EncoderTurnsTotal.WithLabelValues(direction).Inc()
}

// Handler returns the HTTP handler that serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
