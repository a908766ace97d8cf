package planner

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

func sseHandler(blocks []string, delay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "no flusher", http.StatusInternalServerError)
			return
		}
		for _, b := range blocks {
			fmt.Fprint(w, b)
			flusher.Flush()
			if delay > 0 {
				select {
				case <-r.Context().Done():
					return
				case <-time.After(delay):
				}
			}
		}
	}
}

var fullStream = []string{
	"event: parse\ndata: {\"nights\":2,\"destinations\":[\"Durban\"],\"interests\":[],\"travelers\":{\"adults\":2,\"children\":0},\"budget\":{\"currency\":\"ZAR\",\"perPerson\":false}}\n\n",
	"event: plan\ndata: {\"itinerary\":[{\"day\":1,\"title\":\"Day 1 - Durban\",\"destination\":\"Durban\",\"activities\":[\"Arrival & check-in\"]}]}\n\n",
	"event: pricing\ndata: {\"pricing\":{\"currency\":\"ZAR\",\"total\":600,\"breakdown\":{\"lodging\":400},\"note\":\"Heuristic estimate\"}}\n\n",
	"event: done\ndata: {\"ok\":true}\n\n",
}

func TestStreamAssemblesDraft(t *testing.T) {
	srv := httptest.NewServer(sseHandler(fullStream, 0))
	defer srv.Close()

	var (
		mu      sync.Mutex
		updates []models.Draft
		final   models.Draft
	)
	c := NewClient(srv.URL, "")
	h, err := c.Stream(context.Background(), "2 nights in Durban", StreamCallbacks{
		OnDraft: func(d models.Draft) {
			mu.Lock()
			updates = append(updates, d)
			mu.Unlock()
		},
		OnDone: func(d models.Draft) {
			mu.Lock()
			final = d
			mu.Unlock()
		},
		OnError: func(err error) { t.Errorf("unexpected error: %v", err) },
	})
	if err != nil {
		t.Fatalf("stream start: %v", err)
	}
	h.Wait()

	if got := h.State(); got != StateDone {
		t.Fatalf("expected done state, got %v", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(updates) != 3 {
		t.Fatalf("expected 3 draft updates, got %d", len(updates))
	}
	if updates[0].Parse == nil || updates[0].Plan != nil {
		t.Fatalf("first update should carry parse only: %+v", updates[0])
	}
	if !final.Done || final.Pricing == nil || final.Pricing.Pricing.Total != 600 {
		t.Fatalf("final draft wrong: %+v", final)
	}
}

func TestStreamImplicitDoneOnEOF(t *testing.T) {
	srv := httptest.NewServer(sseHandler(fullStream[:3], 0))
	defer srv.Close()

	var final models.Draft
	doneCh := make(chan struct{})
	c := NewClient(srv.URL, "")
	h, err := c.Stream(context.Background(), "trip", StreamCallbacks{
		OnDone: func(d models.Draft) {
			final = d
			close(doneCh)
		},
	})
	if err != nil {
		t.Fatalf("stream start: %v", err)
	}
	h.Wait()

	select {
	case <-doneCh:
	case <-time.After(2 * time.Second):
		t.Fatal("OnDone never fired")
	}
	if !final.Done {
		t.Fatal("EOF must mark the draft done")
	}
	if h.State() != StateDone {
		t.Fatalf("expected done state, got %v", h.State())
	}
}

func TestStreamEmptyPromptRejected(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", "")
	_, err := c.Stream(context.Background(), "   ", StreamCallbacks{})
	var ve *ValidationError
	if !asErr(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Msg != "Prompt required" {
		t.Fatalf("wrong message: %q", ve.Msg)
	}
}

func TestStreamServerErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	errCh := make(chan error, 1)
	c := NewClient(srv.URL, "")
	h, err := c.Stream(context.Background(), "trip", StreamCallbacks{
		OnError: func(err error) { errCh <- err },
	})
	if err != nil {
		t.Fatalf("stream start: %v", err)
	}
	h.Wait()

	select {
	case got := <-errCh:
		var se *ServerError
		if !asErr(got, &se) {
			t.Fatalf("expected ServerError, got %v", got)
		}
		if se.Msg != "rate limited" || se.Status != http.StatusTooManyRequests {
			t.Fatalf("wrong server error: %+v", se)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("OnError never fired")
	}
	if h.State() != StateErrored {
		t.Fatalf("expected errored state, got %v", h.State())
	}
}

func TestStreamTransportErrorSurfaced(t *testing.T) {
	errCh := make(chan error, 1)
	c := NewClient("http://127.0.0.1:1", "")
	h, err := c.Stream(context.Background(), "trip", StreamCallbacks{
		OnError: func(err error) { errCh <- err },
	})
	if err != nil {
		t.Fatalf("stream start: %v", err)
	}
	h.Wait()

	select {
	case got := <-errCh:
		var ne *NetworkError
		if !asErr(got, &ne) {
			t.Fatalf("expected NetworkError, got %v", got)
		}
		if ne.Msg != MsgStreamUnreachable {
			t.Fatalf("wrong message: %q", ne.Msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("OnError never fired")
	}
}

func TestStreamCancelFreezesHandle(t *testing.T) {
	srv := httptest.NewServer(sseHandler(fullStream, 200*time.Millisecond))
	defer srv.Close()

	var mu sync.Mutex
	calls := 0
	c := NewClient(srv.URL, "")
	h, err := c.Stream(context.Background(), "trip", StreamCallbacks{
		OnDraft: func(models.Draft) {
			mu.Lock()
			calls++
			mu.Unlock()
		},
		OnDone:  func(models.Draft) { t.Error("OnDone fired after cancel") },
		OnError: func(err error) { t.Errorf("OnError fired after cancel: %v", err) },
	})
	if err != nil {
		t.Fatalf("stream start: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	h.Cancel()
	h.Wait()

	if h.State() != StateCancelled {
		t.Fatalf("expected cancelled state, got %v", h.State())
	}
	mu.Lock()
	after := calls
	mu.Unlock()
	time.Sleep(300 * time.Millisecond)
	mu.Lock()
	if calls != after {
		t.Fatalf("callbacks kept firing after cancel: %d -> %d", after, calls)
	}
	mu.Unlock()
}

func TestStreamNewStartCancelsPrevious(t *testing.T) {
	srv := httptest.NewServer(sseHandler(fullStream, 200*time.Millisecond))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	first, err := c.Stream(context.Background(), "first trip", StreamCallbacks{})
	if err != nil {
		t.Fatalf("first stream: %v", err)
	}

	second, err := c.Stream(context.Background(), "second trip", StreamCallbacks{})
	if err != nil {
		t.Fatalf("second stream: %v", err)
	}
	first.Wait()

	if first.State() != StateCancelled {
		t.Fatalf("previous handle not cancelled: %v", first.State())
	}
	second.Cancel()
	second.Wait()
}
