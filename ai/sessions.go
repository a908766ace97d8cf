package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/collecokzn-creator/colleco-mvp-sub004/aiparser"
	"github.com/collecokzn-creator/colleco-mvp-sub004/db"
	"github.com/collecokzn-creator/colleco-mvp-sub004/middleware"
	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
	"github.com/collecokzn-creator/colleco-mvp-sub004/utils"
)

// CreateSession handles POST /api/ai/session: parses the prompt and opens
// an append-only history seeded with the initial plan snapshot.
func CreateSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req, ok := decodePrompt(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		utils.Error(w, http.StatusBadRequest, "prompt required")
		return
	}
	plan, ok := aiparser.ParsePrompt(req.Prompt)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "empty_prompt")
		return
	}

	now := time.Now().UnixMilli()
	session := models.AISession{
		ID:        utils.GetUUID(),
		Prompt:    req.Prompt,
		CreatedAt: now,
		TokenHash: middleware.TokenHash(r),
		History:   []models.HistoryEntry{{Type: "parse", Data: plan, At: now}},
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.AISessionsCollection.InsertOne(ctx, session); err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to store session")
		return
	}

	utils.JSON(w, http.StatusCreated, utils.M{
		"ok": true, "id": session.ID, "data": plan, "scoped": session.TokenHash != "",
	})
}

func loadSession(w http.ResponseWriter, r *http.Request, id string) (models.AISession, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var s models.AISession
	err := db.AISessionsCollection.FindOne(ctx, bson.M{"id": id}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		utils.Error(w, http.StatusNotFound, "session not found")
		return s, false
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to load session")
		return s, false
	}
	if s.TokenHash != "" && middleware.TokenHash(r) != s.TokenHash {
		utils.Error(w, http.StatusForbidden, "forbidden")
		return s, false
	}
	return s, true
}

// RefineSession handles POST /api/ai/session/:id/refine: applies the
// instruction heuristics to the last snapshot and appends the result.
func RefineSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	t0 := time.Now()
	s, ok := loadSession(w, r, ps.ByName("id"))
	if !ok {
		return
	}
	var req struct {
		Instructions string `json:"instructions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Instructions) == "" {
		utils.Error(w, http.StatusBadRequest, "instructions required")
		return
	}

	base := s.History[len(s.History)-1].Data
	refined := ApplyInstructions(base, req.Instructions)
	entry := models.HistoryEntry{
		Type:         "refine",
		Data:         refined,
		Instructions: req.Instructions,
		At:           time.Now().UnixMilli(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	_, err := db.AISessionsCollection.UpdateOne(ctx,
		bson.M{"id": s.ID},
		bson.M{"$push": bson.M{"history": entry}},
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to update session")
		return
	}

	metrics.refineSample(time.Since(t0))
	utils.JSON(w, http.StatusOK, utils.M{"ok": true, "data": refined})
}

// GetSession handles GET /api/ai/session/:id and returns the full ordered
// history.
func GetSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s, ok := loadSession(w, r, ps.ByName("id"))
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{
		"ok": true,
		"data": utils.M{
			"id":        s.ID,
			"prompt":    s.Prompt,
			"createdAt": s.CreatedAt,
			"history":   s.History,
		},
		"scoped": s.TokenHash != "",
	})
}
