package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/collecokzn-creator/colleco-mvp-sub004/db"
	"github.com/collecokzn-creator/colleco-mvp-sub004/middleware"
	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
	"github.com/collecokzn-creator/colleco-mvp-sub004/utils"
)

type draftRequest struct {
	Prompt string          `json:"prompt"`
	Data   models.TripPlan `json:"data"`
}

// CreateDraft handles POST /api/ai/draft: persists a plan and returns its
// id. Drafts are scoped to the caller's token hash when one is present.
func CreateDraft(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft := models.AIDraft{
		ID:        utils.GetUUID(),
		Prompt:    req.Prompt,
		Data:      req.Data,
		CreatedAt: time.Now().UnixMilli(),
		TokenHash: middleware.TokenHash(r),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.AIDraftsCollection.InsertOne(ctx, draft); err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to store draft")
		return
	}

	metrics.draft()
	utils.JSON(w, http.StatusCreated, utils.M{"ok": true, "id": draft.ID, "scoped": draft.TokenHash != ""})
}

// GetDraft handles GET /api/ai/draft/:id. A scoped draft is only visible
// to the token that created it.
func GetDraft(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var draft models.AIDraft
	err := db.AIDraftsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&draft)
	if err == mongo.ErrNoDocuments {
		utils.Error(w, http.StatusNotFound, "draft not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to load draft")
		return
	}
	if draft.TokenHash != "" && middleware.TokenHash(r) != draft.TokenHash {
		utils.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	utils.JSON(w, http.StatusOK, utils.M{
		"ok":        true,
		"id":        draft.ID,
		"prompt":    draft.Prompt,
		"data":      draft.Data,
		"createdAt": draft.CreatedAt,
		"scoped":    draft.TokenHash != "",
	})
}
