package quotes

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/collecokzn-creator/colleco-mvp-sub004/db"
	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
	"github.com/collecokzn-creator/colleco-mvp-sub004/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Recalculate fills subtotal and total from the line items. Amounts are
// rounded to cents.
func Recalculate(q *models.Quote) {
	var subtotal float64
	for _, it := range q.Items {
		subtotal += it.UnitPrice * float64(it.Quantity)
	}
	q.Subtotal = round2(subtotal)
	q.Total = round2(subtotal * (1 + q.TaxRate/100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// POST /api/quotes
// With {"fromBasket": true} the quote is seeded from the user's basket.
func CreateQuote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		models.Quote `bson:",inline"`
		FromBasket   bool `json:"fromBasket"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	quote := payload.Quote
	quote.QuoteID = utils.GenerateRandomString(13)
	quote.UserID = userID
	if quote.Status == "" {
		quote.Status = "Draft"
	}
	if quote.Title == "" {
		quote.Title = "Travel Quote"
	}
	now := time.Now()
	quote.CreatedAt = now
	quote.UpdatedAt = now

	if payload.FromBasket {
		items, err := utils.FindAndDecode[models.BasketItem](ctx, db.BasketCollection, bson.M{"userId": userID})
		if err != nil {
			log.Println("CreateQuote basket load error:", err)
			http.Error(w, "Could not load basket", http.StatusInternalServerError)
			return
		}
		for _, it := range items {
			quote.Items = append(quote.Items, models.QuoteItem{
				Title:     it.Item,
				Category:  it.Category,
				UnitPrice: it.Price,
				Quantity:  it.Quantity,
			})
			if quote.Currency == "" {
				quote.Currency = it.Currency
			}
		}
	}
	if quote.Currency == "" {
		quote.Currency = "ZAR"
	}
	Recalculate(&quote)

	if _, err := db.QuotesCollection.InsertOne(ctx, quote); err != nil {
		log.Println("CreateQuote insert error:", err)
		http.Error(w, "Failed to create quote", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, quote)
}

// GET /api/quotes
func GetQuotes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filter := bson.M{"user_id": userID, "deleted": bson.M{"$ne": true}}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	quotes, err := utils.FindAndDecode[models.Quote](ctx, db.QuotesCollection, filter)
	if err != nil {
		http.Error(w, "Could not retrieve quotes", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, quotes)
}

func loadOwnQuote(ctx context.Context, w http.ResponseWriter, r *http.Request, id string) (models.Quote, bool) {
	var quote models.Quote
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return quote, false
	}
	err := db.QuotesCollection.FindOne(ctx, bson.M{
		"quoteid": id,
		"deleted": bson.M{"$ne": true},
	}).Decode(&quote)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Quote not found", http.StatusNotFound)
		return quote, false
	}
	if err != nil {
		http.Error(w, "Could not retrieve quote", http.StatusInternalServerError)
		return quote, false
	}
	if quote.UserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return quote, false
	}
	return quote, true
}

// GET /api/quotes/:id
func GetQuote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	quote, ok := loadOwnQuote(ctx, w, r, ps.ByName("id"))
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, quote)
}

// POST /api/quotes/:id/items
func AddQuoteItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	quote, ok := loadOwnQuote(ctx, w, r, ps.ByName("id"))
	if !ok {
		return
	}

	var item models.QuoteItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil || item.Title == "" {
		http.Error(w, "Invalid item payload", http.StatusBadRequest)
		return
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	quote.Items = append(quote.Items, item)
	Recalculate(&quote)

	update := bson.M{"$set": bson.M{
		"items":      quote.Items,
		"subtotal":   quote.Subtotal,
		"total":      quote.Total,
		"updated_at": time.Now(),
	}}
	if _, err := db.QuotesCollection.UpdateOne(ctx, bson.M{"quoteid": quote.QuoteID}, update); err != nil {
		http.Error(w, "Failed to update quote", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, quote)
}

// PUT /api/quotes/:id/status
func UpdateQuoteStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	quote, ok := loadOwnQuote(ctx, w, r, ps.ByName("id"))
	if !ok {
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	switch payload.Status {
	case "Draft", "Sent", "Accepted":
	default:
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	update := bson.M{"$set": bson.M{"status": payload.Status, "updated_at": time.Now()}}
	if _, err := db.QuotesCollection.UpdateOne(ctx, bson.M{"quoteid": quote.QuoteID}, update); err != nil {
		http.Error(w, "Failed to update status", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": payload.Status})
}

// DELETE /api/quotes/:id
func DeleteQuote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	quote, ok := loadOwnQuote(ctx, w, r, ps.ByName("id"))
	if !ok {
		return
	}

	update := bson.M{"$set": bson.M{"deleted": true, "updated_at": time.Now()}}
	if _, err := db.QuotesCollection.UpdateOne(ctx, bson.M{"quoteid": quote.QuoteID}, update); err != nil {
		http.Error(w, "Failed to delete quote", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
