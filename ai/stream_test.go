package ai

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/collecokzn-creator/colleco-mvp-sub004/planner"
)

func TestStreamItineraryEmitsPhases(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/ai/itinerary/stream?prompt=2+nights+in+paris", nil)
	rec := httptest.NewRecorder()

	StreamItinerary(rec, req, nil)

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type wrong: %q", ct)
	}

	frames, rest := planner.ParseFrames("", rec.Body.String())
	if rest != "" {
		t.Fatalf("stream body left a partial frame: %q", rest)
	}
	if len(frames) != 4 {
		t.Fatalf("expected 4 frames, got %d", len(frames))
	}
	want := []string{"parse", "plan", "pricing", "done"}
	for i, ev := range want {
		if frames[i].Event != ev {
			t.Fatalf("frame %d expected %q, got %q", i, ev, frames[i].Event)
		}
	}
}

func TestStreamItineraryRequiresPrompt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/ai/itinerary/stream", nil)
	rec := httptest.NewRecorder()

	StreamItinerary(rec, req, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "prompt required") {
		t.Fatalf("error body wrong: %s", rec.Body.String())
	}
}

func TestMetricsSnapshotAverages(t *testing.T) {
	m := &Metrics{}
	m.genLatency = []float64{10, 20, 30}
	m.refLatency = []float64{40}
	m.total = 4

	s := m.snapshot()
	if s.AvgLatencyMs["gen"] != 20 {
		t.Fatalf("gen average wrong: %v", s.AvgLatencyMs["gen"])
	}
	if s.AvgLatencyMs["refine"] != 40 {
		t.Fatalf("refine average wrong: %v", s.AvgLatencyMs["refine"])
	}
	if s.Percentiles["gen"].P50 != 20 {
		t.Fatalf("p50 wrong: %v", s.Percentiles["gen"].P50)
	}
}

func TestMetricsHistoryRing(t *testing.T) {
	m := &Metrics{}
	m.total = 3
	m.sample()
	m.total = 8
	m.sample()

	hist := m.historySamples()
	if len(hist) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(hist))
	}
	if hist[0].TotalDelta != 0 || hist[1].TotalDelta != 5 {
		t.Fatalf("deltas wrong: %d %d", hist[0].TotalDelta, hist[1].TotalDelta)
	}
	if hist[1].Total != 8 {
		t.Fatalf("total wrong: %d", hist[1].Total)
	}

	for i := 0; i < historyMax+10; i++ {
		m.sample()
	}
	if got := len(m.historySamples()); got != historyMax {
		t.Fatalf("ring not bounded: %d", got)
	}
}

func TestCacheKeyStable(t *testing.T) {
	a := CacheKey(" 2 nights in paris ")
	b := CacheKey("2 nights in paris")
	if a != b {
		t.Fatal("cache key not trimmed")
	}
	if len(a) != len("ai:itinerary:")+32 {
		t.Fatalf("key length wrong: %q", a)
	}
}
