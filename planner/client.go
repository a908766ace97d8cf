package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

// Client talks to the trip-planning API. The zero value is not usable;
// construct with NewClient. All request bodies and responses use the
// {ok, data} envelope; error bodies carry an "error" field.
type Client struct {
	base  string
	token string
	http  *http.Client

	// streaming reads have no overall deadline; cancellation comes from
	// the handle's context instead.
	streaming *http.Client

	mu      sync.Mutex
	current *StreamHandle
}

func NewClient(base, token string) *Client {
	return &Client{
		base:      strings.TrimRight(base, "/"),
		token:     token,
		http:      &http.Client{Timeout: 30 * time.Second},
		streaming: &http.Client{},
	}
}

// SessionStart is the response to opening a stateful refinement session.
type SessionStart struct {
	ID     string
	Data   models.TripPlan
	Scoped bool
}

// DraftUpload is the response to persisting a draft server-side.
type DraftUpload struct {
	ID     string
	Scoped bool
}

type envelope struct {
	OK     bool            `json:"ok"`
	ID     string          `json:"id"`
	Data   json.RawMessage `json:"data"`
	Scoped bool            `json:"scoped"`
	Error  string          `json:"error"`
}

// Generate requests one complete plan for a free-text prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (models.TripPlan, error) {
	var plan models.TripPlan
	if strings.TrimSpace(prompt) == "" {
		return plan, &ValidationError{Msg: "Prompt required"}
	}
	env, err := c.post(ctx, "/api/ai/itinerary", "", map[string]string{"prompt": prompt})
	if err != nil {
		return plan, err
	}
	err = json.Unmarshal(env.Data, &plan)
	return plan, err
}

// Refine re-generates a plan from the previous prompt plus free-text
// instructions, without a stored session.
func (c *Client) Refine(ctx context.Context, prevPrompt, instructions string) (models.TripPlan, error) {
	var plan models.TripPlan
	if strings.TrimSpace(instructions) == "" {
		return plan, &ValidationError{Msg: "Instructions required"}
	}
	env, err := c.post(ctx, "/api/ai/itinerary/refine", MsgRefineFailed, map[string]string{
		"prompt":       prevPrompt,
		"instructions": instructions,
	})
	if err != nil {
		return plan, err
	}
	err = json.Unmarshal(env.Data, &plan)
	return plan, err
}

// ParseIntent classifies a free-text prompt into structured intents.
func (c *Client) ParseIntent(ctx context.Context, prompt string) (models.IntentResult, error) {
	var res models.IntentResult
	if strings.TrimSpace(prompt) == "" {
		return res, &ValidationError{Msg: "Prompt required"}
	}
	env, err := c.post(ctx, "/api/ai/intent", MsgIntentParseFailed, map[string]string{"prompt": prompt})
	if err != nil {
		return res, err
	}
	err = json.Unmarshal(env.Data, &res)
	return res, err
}

// ParseFlightIntent extracts flight-search fields from a prompt.
func (c *Client) ParseFlightIntent(ctx context.Context, prompt string) (models.FlightIntent, error) {
	var fi models.FlightIntent
	if strings.TrimSpace(prompt) == "" {
		return fi, &ValidationError{Msg: "Prompt required"}
	}
	env, err := c.post(ctx, "/api/ai/flight", MsgFlightIntentFailed, map[string]string{"prompt": prompt})
	if err != nil {
		return fi, err
	}
	err = json.Unmarshal(env.Data, &fi)
	return fi, err
}

// StartSession opens a stateful refinement session seeded from a prompt.
func (c *Client) StartSession(ctx context.Context, prompt string) (SessionStart, error) {
	var out SessionStart
	if strings.TrimSpace(prompt) == "" {
		return out, &ValidationError{Msg: "Prompt required"}
	}
	env, err := c.post(ctx, "/api/ai/session", MsgSessionFailed, map[string]string{"prompt": prompt})
	if err != nil {
		return out, err
	}
	out.ID = env.ID
	out.Scoped = env.Scoped
	err = json.Unmarshal(env.Data, &out.Data)
	return out, err
}

// RefineSession applies free-text instructions to an existing session and
// returns the newly appended plan snapshot.
func (c *Client) RefineSession(ctx context.Context, id, instructions string) (models.TripPlan, error) {
	var plan models.TripPlan
	if strings.TrimSpace(id) == "" {
		return plan, &ValidationError{Msg: "Session id required"}
	}
	if strings.TrimSpace(instructions) == "" {
		return plan, &ValidationError{Msg: "Instructions required"}
	}
	env, err := c.post(ctx, "/api/ai/session/"+id+"/refine", MsgRefineFailed, map[string]string{
		"instructions": instructions,
	})
	if err != nil {
		return plan, err
	}
	err = json.Unmarshal(env.Data, &plan)
	return plan, err
}

// FetchSession returns the full ordered history of a session.
func (c *Client) FetchSession(ctx context.Context, id string) ([]models.HistoryEntry, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &ValidationError{Msg: "Session id required"}
	}
	env, err := c.get(ctx, "/api/ai/session/"+id, MsgSessionFailed)
	if err != nil {
		return nil, err
	}
	var wrap struct {
		History []models.HistoryEntry `json:"history"`
	}
	if err := json.Unmarshal(env.Data, &wrap); err != nil {
		return nil, err
	}
	return wrap.History, nil
}

// UploadDraft persists a plan server-side and returns its handle.
func (c *Client) UploadDraft(ctx context.Context, plan models.TripPlan) (DraftUpload, error) {
	env, err := c.post(ctx, "/api/ai/draft", MsgUploadFailed, map[string]any{"data": plan})
	if err != nil {
		return DraftUpload{}, err
	}
	return DraftUpload{ID: env.ID, Scoped: env.Scoped}, nil
}

func (c *Client) post(ctx context.Context, path, fallback string, body any) (*envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, fallback)
}

func (c *Client) get(ctx context.Context, path, fallback string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req, fallback)
}

// do issues the request and maps failures. fallback is the operation's
// generic message, used when the response body has no error field; pass ""
// to use the status-bearing default.
func (c *Client) do(req *http.Request, fallback string) (*envelope, error) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Msg: MsgNetworkUnreachable, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, &NetworkError{Msg: MsgNetworkUnreachable, Err: err}
	}

	var env envelope
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if json.Unmarshal(raw, &env) == nil && env.Error != "" {
			return nil, &ServerError{Status: resp.StatusCode, Msg: env.Error}
		}
		msg := fallback
		if msg == "" {
			msg = requestFailed(resp.StatusCode)
		}
		return nil, &ServerError{Status: resp.StatusCode, Msg: msg}
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.OK {
		msg := env.Error
		if msg == "" {
			msg = fallback
		}
		if msg == "" {
			msg = "Request failed"
		}
		return nil, &ServerError{Status: resp.StatusCode, Msg: msg}
	}
	return &env, nil
}
