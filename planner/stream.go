package planner

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

// SessionState is the lifecycle state of one streaming generation.
type SessionState int32

const (
	StateIdle SessionState = iota
	StateStreaming
	StateDone
	StateErrored
	StateCancelled
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateDone:
		return "done"
	case StateErrored:
		return "errored"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// StreamCallbacks receive draft updates as frames arrive. OnDraft fires
// after every applied frame, OnDone once with the final draft, OnError
// once on failure. A cancelled handle fires none of them afterwards.
type StreamCallbacks struct {
	OnDraft func(models.Draft)
	OnDone  func(models.Draft)
	OnError func(error)
}

// StreamHandle identifies one in-flight generation. Each call to Stream
// returns a fresh handle; cancelling it stops all further callbacks from
// that handle even if the underlying response is still arriving, so a
// slow stale stream can never overwrite a newer draft.
type StreamHandle struct {
	cancelled atomic.Bool
	cancel    context.CancelFunc
	done      chan struct{}

	mu     sync.Mutex
	state  SessionState
	errMsg string
}

// Cancel marks the handle cancelled and aborts its request. Safe to call
// multiple times and after completion; cancellation after a terminal
// state does not change that state.
func (h *StreamHandle) Cancel() {
	h.cancelled.Store(true)
	h.cancel()
	h.mu.Lock()
	if h.state == StateStreaming || h.state == StateIdle {
		h.state = StateCancelled
	}
	h.mu.Unlock()
}

// State returns the handle's current lifecycle state.
func (h *StreamHandle) State() SessionState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Err returns the display message set when the handle errored.
func (h *StreamHandle) Err() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errMsg
}

// Wait blocks until the handle reaches a terminal state.
func (h *StreamHandle) Wait() {
	<-h.done
}

// finish moves the handle to a terminal state unless it was cancelled
// first. Cancellation wins every race.
func (h *StreamHandle) finish(state SessionState, msg string) bool {
	if h.cancelled.Load() {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateStreaming {
		return false
	}
	h.state = state
	h.errMsg = msg
	return true
}

// Stream starts an incremental generation for prompt. It cancels and
// discards the client's previous handle, if any, then reads the event
// stream on its own goroutine, assembling frames into a draft and
// publishing each update through cb.
func (c *Client) Stream(ctx context.Context, prompt string, cb StreamCallbacks) (*StreamHandle, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, &ValidationError{Msg: "Prompt required"}
	}

	streamCtx, cancel := context.WithCancel(ctx)
	h := &StreamHandle{
		cancel: cancel,
		done:   make(chan struct{}),
		state:  StateStreaming,
	}

	c.mu.Lock()
	if prev := c.current; prev != nil {
		prev.Cancel()
	}
	c.current = h
	c.mu.Unlock()

	endpoint := c.base + "/api/ai/itinerary/stream?prompt=" + url.QueryEscape(prompt)
	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		cancel()
		close(h.done)
		h.mu.Lock()
		h.state = StateErrored
		h.errMsg = err.Error()
		h.mu.Unlock()
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	go c.readStream(h, req, cb)
	return h, nil
}

func (c *Client) readStream(h *StreamHandle, req *http.Request, cb StreamCallbacks) {
	defer close(h.done)
	defer h.cancel()

	fail := func(err error) {
		if h.finish(StateErrored, err.Error()) && cb.OnError != nil {
			cb.OnError(err)
		}
	}

	resp, err := c.streaming.Do(req)
	if err != nil {
		fail(&NetworkError{Msg: MsgStreamUnreachable, Err: err})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var env struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &env) == nil && env.Error != "" {
			fail(&ServerError{Status: resp.StatusCode, Msg: env.Error})
			return
		}
		fail(&ServerError{Status: resp.StatusCode, Msg: streamRequestFailed(resp.StatusCode)})
		return
	}

	var (
		draft models.Draft
		carry string
		chunk = make([]byte, 4096)
	)
	for {
		n, readErr := resp.Body.Read(chunk)
		if n > 0 {
			var frames []Frame
			frames, carry = ParseFrames(carry, string(chunk[:n]))
			for _, f := range frames {
				if h.cancelled.Load() {
					return
				}
				draft = Apply(draft, f)
				if f.Event == EventDone {
					if h.finish(StateDone, "") && cb.OnDone != nil {
						cb.OnDone(draft)
					}
					return
				}
				if cb.OnDraft != nil {
					cb.OnDraft(draft)
				}
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				// No done frame arrived; EOF means the stream is complete.
				draft.Done = true
				if h.finish(StateDone, "") && cb.OnDone != nil {
					cb.OnDone(draft)
				}
				return
			}
			fail(&NetworkError{Msg: MsgStreamUnreachable, Err: readErr})
			return
		}
	}
}
