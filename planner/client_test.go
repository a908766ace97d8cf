package planner

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

func asErr[T error](err error, target *T) bool {
	return errors.As(err, target)
}

func jsonHandler(t *testing.T, wantPath string, status int, body string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != wantPath {
			t.Errorf("expected path %q, got %q", wantPath, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func TestGenerateDecodesPlan(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/api/ai/itinerary", http.StatusOK,
		`{"ok":true,"data":{"nights":3,"destinations":["Durban"],"interests":["beach"],"travelers":{"adults":2,"children":0},"budget":{"currency":"ZAR","perPerson":false},"itinerary":[{"day":1,"title":"Day 1 - Durban","destination":"Durban","activities":["Arrival & check-in"]}],"pricing":{"currency":"ZAR","total":900,"breakdown":{"lodging":450},"note":"Heuristic estimate"}}}`))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	plan, err := c.Generate(context.Background(), "3 nights in Durban")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if plan.Nights != 3 || len(plan.Itinerary) != 1 || plan.Pricing == nil {
		t.Fatalf("plan decoded wrong: %+v", plan)
	}
}

func TestGenerateEmptyPrompt(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", "")
	_, err := c.Generate(context.Background(), "")
	var ve *ValidationError
	if !asErr(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestGenerateServerErrorBody(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/api/ai/itinerary", http.StatusBadRequest,
		`{"ok":false,"error":"Prompt required"}`))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Generate(context.Background(), "x")
	var se *ServerError
	if !asErr(err, &se) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if se.Msg != "Prompt required" {
		t.Fatalf("error body not surfaced: %q", se.Msg)
	}
}

func TestGenerateOpaqueFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Generate(context.Background(), "x")
	var se *ServerError
	if !asErr(err, &se) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if se.Error() != "Request failed (502)" {
		t.Fatalf("fallback message wrong: %q", se.Error())
	}
}

func TestOperationFallbackMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
		want string
	}{
		{"refine", func() error { _, err := c.Refine(ctx, "old", "more nights"); return err }, MsgRefineFailed},
		{"intent", func() error { _, err := c.ParseIntent(ctx, "x"); return err }, MsgIntentParseFailed},
		{"flight", func() error { _, err := c.ParseFlightIntent(ctx, "x"); return err }, MsgFlightIntentFailed},
		{"session start", func() error { _, err := c.StartSession(ctx, "x"); return err }, MsgSessionFailed},
		{"session refine", func() error { _, err := c.RefineSession(ctx, "sess-1", "x"); return err }, MsgRefineFailed},
		{"session fetch", func() error { _, err := c.FetchSession(ctx, "sess-1"); return err }, MsgSessionFailed},
		{"upload", func() error { _, err := c.UploadDraft(ctx, models.TripPlan{}); return err }, MsgUploadFailed},
	}
	for _, tc := range cases {
		err := tc.call()
		var se *ServerError
		if !asErr(err, &se) {
			t.Fatalf("%s: expected ServerError, got %v", tc.name, err)
		}
		if se.Msg != tc.want {
			t.Fatalf("%s: fallback message %q, want %q", tc.name, se.Msg, tc.want)
		}
	}
}

func TestGenerateNetworkError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "")
	_, err := c.Generate(context.Background(), "x")
	var ne *NetworkError
	if !asErr(err, &ne) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if ne.Msg != MsgNetworkUnreachable {
		t.Fatalf("wrong message: %q", ne.Msg)
	}
}

func TestStartSessionReturnsHandle(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/api/ai/session", http.StatusOK,
		`{"ok":true,"id":"sess-1","scoped":true,"data":{"nights":2,"destinations":[],"interests":[],"travelers":{"adults":2,"children":0},"budget":{"currency":"ZAR","perPerson":false},"itinerary":[]}}`))
	defer srv.Close()

	c := NewClient(srv.URL, "token123")
	got, err := c.StartSession(context.Background(), "2 nights somewhere")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if got.ID != "sess-1" || !got.Scoped || got.Data.Nights != 2 {
		t.Fatalf("session start wrong: %+v", got)
	}
}

func TestFetchSessionHistory(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/api/ai/session/sess-1", http.StatusOK,
		`{"ok":true,"data":{"history":[{"type":"initial","data":{"nights":2},"at":1700000000000},{"type":"refine","data":{"nights":4},"instructions":"2 more nights","at":1700000001000}]}}`))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	hist, err := c.FetchSession(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("fetch session: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(hist))
	}
	if hist[0].Type != "initial" || hist[1].Data.Nights != 4 {
		t.Fatalf("history decoded wrong: %+v", hist)
	}
}

func TestUploadDraftSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var body struct {
			Data models.TripPlan `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode upload body: %v", err)
		}
		w.Write([]byte(`{"ok":true,"id":"draft-9","scoped":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token123")
	up, err := c.UploadDraft(context.Background(), models.TripPlan{})
	if err != nil {
		t.Fatalf("upload draft: %v", err)
	}
	if up.ID != "draft-9" || !up.Scoped {
		t.Fatalf("upload response wrong: %+v", up)
	}
	if gotAuth != "Bearer token123" {
		t.Fatalf("authorization header wrong: %q", gotAuth)
	}
}

func TestRefineSessionValidation(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", "")
	if _, err := c.RefineSession(context.Background(), "", "more nights"); err == nil {
		t.Fatal("expected error for missing session id")
	}
	if _, err := c.RefineSession(context.Background(), "sess-1", " "); err == nil {
		t.Fatal("expected error for empty instructions")
	}
}
