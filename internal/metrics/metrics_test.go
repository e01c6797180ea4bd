package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordTapDanceBuckets(t *testing.T) {
	before := testutil.ToFloat64(TapDanceResolutionsTotal.WithLabelValues("esc_mouse", "3+"))
	RecordTapDance("esc_mouse", 3)
	RecordTapDance("esc_mouse", 7)
	after := testutil.ToFloat64(TapDanceResolutionsTotal.WithLabelValues("esc_mouse", "3+"))

	if after-before != 2 {
		t.Errorf("3+ bucket grew by %v, want 2", after-before)
	}
}

func TestRecordConfigWrite(t *testing.T) {
	okBefore := testutil.ToFloat64(ConfigWritesTotal.WithLabelValues("ok"))
	errBefore := testutil.ToFloat64(ConfigWritesTotal.WithLabelValues("error"))

	RecordConfigWrite(nil)
	RecordConfigWrite(errors.New("eeprom busy"))

	if got := testutil.ToFloat64(ConfigWritesTotal.WithLabelValues("ok")) - okBefore; got != 1 {
		t.Errorf("ok writes grew by %v, want 1", got)
	}
	if got := testutil.ToFloat64(ConfigWritesTotal.WithLabelValues("error")) - errBefore; got != 1 {
		t.Errorf("error writes grew by %v, want 1", got)
	}
}

func TestRecordGamePress(t *testing.T) {
	before := testutil.ToFloat64(GameHitsTotal.WithLabelValues("hit"))
	RecordGamePress(true)
	RecordGamePress(false)
	if got := testutil.ToFloat64(GameHitsTotal.WithLabelValues("hit")) - before; got != 1 {
		t.Errorf("hits grew by %v, want 1", got)
	}
}

func TestHighestLayerGauge(t *testing.T) {
	HighestLayer.Set(7)
	if got := testutil.ToFloat64(HighestLayer); got != 7 {
		t.Errorf("HighestLayer = %v, want 7", got)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	TicksTotal.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "keyforge_ticks_total") {
		t.Errorf("body missing keyforge_ticks_total")
	}
}
