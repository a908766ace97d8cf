package ai

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/collecokzn-creator/colleco-mvp-sub004/aiparser"
	"github.com/collecokzn-creator/colleco-mvp-sub004/ratelim"
	"github.com/collecokzn-creator/colleco-mvp-sub004/utils"
)

// One bucket per IP across every AI endpoint; generation is the expensive
// path so the window is tighter than the general limiter.
var limiter = ratelim.NewRateLimiterWith(2, 8)

func allow(w http.ResponseWriter, r *http.Request) bool {
	if limiter.Allow(r.RemoteAddr) {
		return true
	}
	metrics.rateLimit()
	utils.Error(w, http.StatusTooManyRequests, "rate_limited")
	return false
}

type promptRequest struct {
	Prompt       string `json:"prompt"`
	Instructions string `json:"instructions"`
}

func decodePrompt(w http.ResponseWriter, r *http.Request) (promptRequest, bool) {
	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	return req, true
}

// GenerateItinerary handles POST /api/ai/itinerary.
func GenerateItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	t0 := time.Now()
	req, ok := decodePrompt(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		utils.Error(w, http.StatusBadRequest, "prompt required")
		return
	}
	if !allow(w, r) {
		return
	}

	if plan, ok := cachedPlan(req.Prompt); ok {
		metrics.hit()
		metrics.genSample(time.Since(t0))
		utils.JSON(w, http.StatusOK, utils.M{"ok": true, "data": plan, "cached": true})
		return
	}

	plan, ok := aiparser.ParsePrompt(req.Prompt)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "empty_prompt")
		return
	}
	cachePlan(req.Prompt, plan)
	metrics.miss()
	metrics.genSample(time.Since(t0))
	utils.JSON(w, http.StatusOK, utils.M{"ok": true, "data": plan})
}

// RefineItinerary handles POST /api/ai/itinerary/refine: re-parse the
// prompt and apply the instruction heuristics on top.
func RefineItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	t0 := time.Now()
	req, ok := decodePrompt(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		utils.Error(w, http.StatusBadRequest, "prompt required")
		return
	}
	if strings.TrimSpace(req.Instructions) == "" {
		utils.Error(w, http.StatusBadRequest, "instructions required")
		return
	}
	if !allow(w, r) {
		return
	}

	base, ok := aiparser.ParsePrompt(req.Prompt)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "empty_prompt")
		return
	}
	refined := ApplyInstructions(base, req.Instructions)
	metrics.refineSample(time.Since(t0))
	utils.JSON(w, http.StatusOK, utils.M{"ok": true, "data": refined})
}

// ParseFlightIntent handles POST /api/ai/flight.
func ParseFlightIntent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req, ok := decodePrompt(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		utils.Error(w, http.StatusBadRequest, "prompt required")
		return
	}
	fi, ok := aiparser.ParseFlight(req.Prompt)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "not_flight_intent")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{"ok": true, "data": fi})
}

// ParseIntent handles POST /api/ai/intent.
func ParseIntent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req, ok := decodePrompt(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		utils.Error(w, http.StatusBadRequest, "prompt required")
		return
	}
	res, ok := aiparser.ParseIntent(req.Prompt)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "no_intent_detected")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{"ok": true, "data": res})
}

// GetMetrics handles GET /api/ai/metrics.
func GetMetrics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.JSON(w, http.StatusOK, metrics.snapshot())
}

// GetMetricsHistory handles GET /api/ai/metrics/history.
func GetMetricsHistory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.JSON(w, http.StatusOK, utils.M{"samples": metrics.historySamples()})
}
