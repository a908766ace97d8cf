package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/collecokzn-creator/colleco-mvp-sub004/aiparser"
	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
	"github.com/collecokzn-creator/colleco-mvp-sub004/notify"
	"github.com/collecokzn-creator/colleco-mvp-sub004/utils"
)

// Delay between the plan and pricing frames so clients render the
// itinerary before the estimate lands.
const pricingDelay = 30 * time.Millisecond

func writeFrame(w http.ResponseWriter, f http.Flusher, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	f.Flush()
}

// StreamItinerary handles GET /api/ai/itinerary/stream?prompt=... and
// emits parse, plan, pricing and done frames over SSE.
func StreamItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	prompt := r.URL.Query().Get("prompt")
	if strings.TrimSpace(prompt) == "" {
		utils.Error(w, http.StatusBadRequest, "prompt required")
		return
	}
	if !allow(w, r) {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.Error(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	plan, cached := cachedPlan(prompt)
	if cached {
		metrics.hit()
	} else {
		var parsed bool
		plan, parsed = aiparser.ParsePrompt(prompt)
		if !parsed {
			utils.Error(w, http.StatusBadRequest, "empty_prompt")
			return
		}
		cachePlan(prompt, plan)
		metrics.miss()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	writeFrame(w, flusher, "parse", plan.TripBase)
	writeFrame(w, flusher, "plan", models.PlanPhase{Itinerary: plan.Itinerary})

	select {
	case <-r.Context().Done():
		return
	case <-time.After(pricingDelay):
	}

	writeFrame(w, flusher, "pricing", models.PricingPhase{Pricing: plan.Pricing})
	writeFrame(w, flusher, "done", utils.M{"ok": true})

	if userID := utils.GetUserIDFromRequest(r); userID != "" {
		notify.Emit(context.Background(), models.Notification{
			Type:     "draft_pricing_ready",
			UserID:   userID,
			Message:  "Pricing estimate ready",
			EntityID: CacheKey(prompt),
		})
	}
}
