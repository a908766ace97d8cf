package basket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/collecokzn-creator/colleco-mvp-sub004/db"
	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
	"github.com/collecokzn-creator/colleco-mvp-sub004/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddToBasket increments quantity if the item exists, or inserts a new
// BasketItem.
func AddToBasket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var item models.BasketItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		log.Println("AddToBasket decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	item.UserID = userID
	if item.ItemID == "" {
		item.ItemID = utils.GetUUID()
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	if item.Item == "" || item.Category == "" || item.Price < 0 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	filter := bson.M{
		"userId":   item.UserID,
		"item":     item.Item,
		"category": item.Category,
		"city":     item.City,
	}
	update := bson.M{
		"$inc": bson.M{"quantity": item.Quantity},
		"$setOnInsert": bson.M{
			"itemId":   item.ItemID,
			"price":    item.Price,
			"currency": item.Currency,
			"addedAt":  time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := db.BasketCollection.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Println("AddToBasket UpdateOne error:", err)
		http.Error(w, "Failed to add to basket", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// GetBasket returns all basket items for the user, optional ?category=
// filter.
func GetBasket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filter := bson.M{"userId": userID}
	if cat := r.URL.Query().Get("category"); cat != "" {
		filter["category"] = cat
	}

	items, err := utils.FindAndDecode[models.BasketItem](ctx, db.BasketCollection, filter)
	if err != nil {
		log.Println("GetBasket error:", err)
		http.Error(w, "Could not retrieve basket", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, items)
}

// UpdateBasket replaces *all* items in a given category for the user.
func UpdateBasket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Category string              `json:"category"`
		Items    []models.BasketItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateBasket decode error:", err)
		http.Error(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}
	if payload.Category == "" {
		http.Error(w, "Category is required", http.StatusBadRequest)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if _, err := db.BasketCollection.DeleteMany(ctx, bson.M{
		"userId":   userID,
		"category": payload.Category,
	}); err != nil {
		log.Println("UpdateBasket DeleteMany error:", err)
		http.Error(w, "Failed to clear existing basket items", http.StatusInternalServerError)
		return
	}

	if len(payload.Items) > 0 {
		now := time.Now()
		docs := make([]interface{}, 0, len(payload.Items))
		for _, it := range payload.Items {
			it.UserID = userID
			it.Category = payload.Category
			if it.ItemID == "" {
				it.ItemID = utils.GetUUID()
			}
			it.AddedAt = now
			docs = append(docs, it)
		}
		if _, err := db.BasketCollection.InsertMany(ctx, docs); err != nil {
			log.Println("UpdateBasket InsertMany error:", err)
			http.Error(w, "Failed to update basket", http.StatusInternalServerError)
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"status": "updated"})
}

// RemoveFromBasket deletes one item by id.
func RemoveFromBasket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	res, err := db.BasketCollection.DeleteOne(ctx, bson.M{
		"userId": userID,
		"itemId": ps.ByName("itemId"),
	})
	if err != nil {
		log.Println("RemoveFromBasket error:", err)
		http.Error(w, "Failed to remove item", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ClearBasket removes every item for the user.
func ClearBasket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if _, err := db.BasketCollection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		log.Println("ClearBasket error:", err)
		http.Error(w, "Failed to clear basket", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// BasketSummary totals the basket per category.
func BasketSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := utils.FindAndDecode[models.BasketItem](ctx, db.BasketCollection, bson.M{"userId": userID})
	if err != nil {
		http.Error(w, "Could not retrieve basket", http.StatusInternalServerError)
		return
	}

	byCategory := map[string]float64{}
	var total float64
	var count int
	for _, it := range items {
		line := it.Price * float64(it.Quantity)
		byCategory[it.Category] += line
		total += line
		count += it.Quantity
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"itemCount":  count,
		"byCategory": byCategory,
		"total":      total,
	})
}
