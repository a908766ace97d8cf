package ai

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
	"github.com/collecokzn-creator/colleco-mvp-sub004/rdx"
)

const cacheTTL = 10 * time.Minute

// CacheKey derives the Redis key for a prompt's generated plan.
func CacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(prompt)))
	return "ai:itinerary:" + hex.EncodeToString(sum[:])[:32]
}

func cachedPlan(prompt string) (models.TripPlan, bool) {
	raw, err := rdx.RdxGet(CacheKey(prompt))
	if err != nil || raw == "" {
		return models.TripPlan{}, false
	}
	var plan models.TripPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return models.TripPlan{}, false
	}
	return plan, true
}

func cachePlan(prompt string, plan models.TripPlan) {
	raw, err := json.Marshal(plan)
	if err != nil {
		return
	}
	if err := rdx.RdxSetWithExpiry(CacheKey(prompt), string(raw), cacheTTL); err != nil {
		log.Printf("ai cache write failed: %v", err)
	}
}
