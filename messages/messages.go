package messages

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/collecokzn-creator/colleco-mvp-sub004/db"
	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
	"github.com/collecokzn-creator/colleco-mvp-sub004/notify"
	"github.com/collecokzn-creator/colleco-mvp-sub004/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// POST /api/conversations
// Reuses an existing conversation between the same participants.
func StartConversation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		With    string `json:"with"`
		Subject string `json:"subject"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.With == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	participants := []string{userID, body.With}
	sort.Strings(participants)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Conversation
	err := db.ConversationsCollection.FindOne(ctx, bson.M{
		"participants": participants,
		"deleted":      bson.M{"$ne": true},
	}).Decode(&existing)
	if err == nil {
		utils.RespondWithJSON(w, http.StatusOK, bson.M{"conversationid": existing.ConversationID})
		return
	}
	if err != mongo.ErrNoDocuments {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	conv := models.Conversation{
		ConversationID: utils.GetUUID(),
		Participants:   participants,
		Subject:        body.Subject,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := db.ConversationsCollection.InsertOne(ctx, conv); err != nil {
		log.Println("StartConversation insert error:", err)
		http.Error(w, "Failed to create conversation", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, bson.M{"conversationid": conv.ConversationID})
}

// GET /api/conversations
func GetConversations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.ConversationsCollection.Find(ctx, bson.M{
		"participants": bson.M{"$in": []string{userID}},
		"deleted":      bson.M{"$ne": true},
	}, options.Find().
		SetSort(bson.M{"updated_at": -1}).
		SetLimit(20),
	)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var conversations []models.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		http.Error(w, "Decode error", http.StatusInternalServerError)
		return
	}
	if len(conversations) == 0 {
		conversations = []models.Conversation{}
	}

	utils.RespondWithJSON(w, http.StatusOK, conversations)
}

func participantConversation(ctx context.Context, w http.ResponseWriter, id, userID string) (models.Conversation, bool) {
	var conv models.Conversation
	err := db.ConversationsCollection.FindOne(ctx, bson.M{
		"conversationid": id,
		"deleted":        bson.M{"$ne": true},
	}).Decode(&conv)
	if err != nil {
		http.Error(w, "Conversation not found", http.StatusNotFound)
		return conv, false
	}
	for _, p := range conv.Participants {
		if p == userID {
			return conv, true
		}
	}
	http.Error(w, "Forbidden", http.StatusForbidden)
	return conv, false
}

// GET /api/conversations/:id/messages
func GetMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	convID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := participantConversation(ctx, w, convID, userID); !ok {
		return
	}

	cursor, err := db.MessagesCollection.Find(ctx, bson.M{"conversationid": convID},
		options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var msgs []models.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		http.Error(w, "Decode error", http.StatusInternalServerError)
		return
	}
	if len(msgs) == 0 {
		msgs = []models.Message{}
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{
		"conversationid": convID,
		"messages":       msgs,
	})
}

// POST /api/conversations/:id/messages
func SendMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	convID := ps.ByName("id")

	var input struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Content == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	conv, ok := participantConversation(ctx, w, convID, userID)
	if !ok {
		return
	}

	msg := models.Message{
		MessageID:      utils.GetUUID(),
		ConversationID: convID,
		SenderID:       userID,
		Content:        input.Content,
		CreatedAt:      time.Now(),
		ReadBy:         []string{userID},
	}
	if _, err := db.MessagesCollection.InsertOne(ctx, msg); err != nil {
		http.Error(w, "Insert failed", http.StatusInternalServerError)
		return
	}

	db.ConversationsCollection.UpdateOne(ctx, bson.M{"conversationid": convID}, bson.M{
		"$set": bson.M{
			"last_message": input.Content,
			"updated_at":   time.Now(),
		},
	})

	for _, p := range conv.Participants {
		if p == userID {
			continue
		}
		notify.Emit(context.Background(), models.Notification{
			Type:     "new_message",
			UserID:   p,
			EntityID: convID,
			Message:  input.Content,
		})
	}

	utils.RespondWithJSON(w, http.StatusCreated, msg)
}

// PUT /api/conversations/:id/messages/:msgid/read
func MarkMessageRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := participantConversation(ctx, w, ps.ByName("id"), userID); !ok {
		return
	}

	res, err := db.MessagesCollection.UpdateOne(ctx,
		bson.M{"messageid": ps.ByName("msgid"), "conversationid": ps.ByName("id")},
		bson.M{"$addToSet": bson.M{"read_by": userID}})
	if err != nil {
		http.Error(w, "Update failed", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Message not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DELETE /api/conversations/:id/messages/:msgid
func DeleteMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var msg models.Message
	err := db.MessagesCollection.FindOne(ctx, bson.M{"messageid": ps.ByName("msgid")}).Decode(&msg)
	if err != nil {
		http.Error(w, "Message not found", http.StatusNotFound)
		return
	}
	if msg.SenderID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if _, err := db.MessagesCollection.DeleteOne(ctx, bson.M{"messageid": msg.MessageID}); err != nil {
		http.Error(w, "Delete failed", http.StatusInternalServerError)
		return
	}

	db.ConversationsCollection.UpdateOne(ctx,
		bson.M{"conversationid": msg.ConversationID},
		bson.M{"$set": bson.M{"updated_at": time.Now()}})

	w.WriteHeader(http.StatusOK)
}
