package ai

import (
	"context"
	"sync"
	"time"
)

const (
	latencySamples  = 200
	historyMax      = 500
	historyInterval = 10 * time.Second
)

// Metrics tracks counters for the AI endpoints. Latency samples are kept
// as a bounded window, oldest first.
type Metrics struct {
	mu          sync.Mutex
	total       int64
	cacheHits   int64
	cacheMiss   int64
	rateLimited int64
	refines     int64
	drafts      int64
	genLatency  []float64
	refLatency  []float64
	history     []HistorySample
	started     time.Time
}

var metrics = &Metrics{started: time.Now()}

func (m *Metrics) hit() {
	m.mu.Lock()
	m.cacheHits++
	m.total++
	m.mu.Unlock()
}

func (m *Metrics) miss() {
	m.mu.Lock()
	m.cacheMiss++
	m.total++
	m.mu.Unlock()
}

func (m *Metrics) rateLimit() {
	m.mu.Lock()
	m.rateLimited++
	m.mu.Unlock()
}

func (m *Metrics) draft() {
	m.mu.Lock()
	m.drafts++
	m.mu.Unlock()
}

func (m *Metrics) genSample(d time.Duration) {
	m.mu.Lock()
	m.genLatency = appendSample(m.genLatency, d)
	m.mu.Unlock()
}

func (m *Metrics) refineSample(d time.Duration) {
	m.mu.Lock()
	m.refines++
	m.total++
	m.refLatency = appendSample(m.refLatency, d)
	m.mu.Unlock()
}

func appendSample(samples []float64, d time.Duration) []float64 {
	samples = append(samples, float64(d.Milliseconds()))
	if len(samples) > latencySamples {
		samples = samples[1:]
	}
	return samples
}

func avg(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

func percentile(samples []float64, p float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sorted := append([]float64(nil), samples...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[idx]
}

// LatencyStats is the per-operation latency summary in milliseconds.
type LatencyStats struct {
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

// Snapshot is the metrics endpoint response body.
type Snapshot struct {
	Total        int64                   `json:"total"`
	CacheHits    int64                   `json:"cacheHits"`
	CacheMiss    int64                   `json:"cacheMiss"`
	RateLimited  int64                   `json:"rateLimited"`
	Refine       int64                   `json:"refine"`
	Drafts       int64                   `json:"drafts"`
	AvgLatencyMs map[string]float64      `json:"avgLatencyMs"`
	Percentiles  map[string]LatencyStats `json:"latencyPercentiles"`
	UptimeSec    int64                   `json:"uptimeSec"`
}

// HistorySample is one periodic snapshot kept in the bounded history ring.
type HistorySample struct {
	Ts          int64                   `json:"ts"`
	Total       int64                   `json:"total"`
	CacheHits   int64                   `json:"cacheHits"`
	CacheMiss   int64                   `json:"cacheMiss"`
	RateLimited int64                   `json:"rateLimited"`
	Refine      int64                   `json:"refine"`
	Drafts      int64                   `json:"drafts"`
	Latency     map[string]LatencyStats `json:"latency"`
	TotalDelta  int64                   `json:"totalDelta"`
}

// sample appends a snapshot to the history ring, dropping the oldest entry
// once the ring is full. TotalDelta is relative to the previous sample.
func (m *Metrics) sample() {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := HistorySample{
		Ts:          time.Now().UnixMilli(),
		Total:       m.total,
		CacheHits:   m.cacheHits,
		CacheMiss:   m.cacheMiss,
		RateLimited: m.rateLimited,
		Refine:      m.refines,
		Drafts:      m.drafts,
		Latency: map[string]LatencyStats{
			"gen":    {P50: percentile(m.genLatency, 50), P95: percentile(m.genLatency, 95), P99: percentile(m.genLatency, 99)},
			"refine": {P50: percentile(m.refLatency, 50), P95: percentile(m.refLatency, 95), P99: percentile(m.refLatency, 99)},
		},
	}
	if n := len(m.history); n > 0 {
		s.TotalDelta = s.Total - m.history[n-1].Total
	}
	m.history = append(m.history, s)
	if len(m.history) > historyMax {
		m.history = m.history[1:]
	}
}

func (m *Metrics) historySamples() []HistorySample {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]HistorySample, len(m.history))
	copy(out, m.history)
	return out
}

// StartMetricsSampler records a history sample every ten seconds until the
// context is cancelled.
func StartMetricsSampler(ctx context.Context) {
	ticker := time.NewTicker(historyInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.sample()
		}
	}
}

func (m *Metrics) snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Total:       m.total,
		CacheHits:   m.cacheHits,
		CacheMiss:   m.cacheMiss,
		RateLimited: m.rateLimited,
		Refine:      m.refines,
		Drafts:      m.drafts,
		AvgLatencyMs: map[string]float64{
			"gen":    avg(m.genLatency),
			"refine": avg(m.refLatency),
		},
		Percentiles: map[string]LatencyStats{
			"gen":    {P50: percentile(m.genLatency, 50), P95: percentile(m.genLatency, 95), P99: percentile(m.genLatency, 99)},
			"refine": {P50: percentile(m.refLatency, 50), P95: percentile(m.refLatency, 95), P99: percentile(m.refLatency, 99)},
		},
		UptimeSec: int64(time.Since(m.started).Seconds()),
	}
}
