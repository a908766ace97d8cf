// itinerary.go
package itinerary

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/collecokzn-creator/colleco-mvp-sub004/db"
	"github.com/collecokzn-creator/colleco-mvp-sub004/middleware"
	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
	"github.com/collecokzn-creator/colleco-mvp-sub004/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Utility function to extract user ID from JWT
func GetRequestingUserID(w http.ResponseWriter, r *http.Request) string {
	tokenString := r.Header.Get("Authorization")
	claims, err := middleware.ValidateJWT(tokenString)
	if err != nil {
		log.Printf("JWT validation error: %v", err)
		return ""
	}
	return claims.UserID
}

// POST /api/itineraries
func CreateItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var itinerary models.Itinerary
	if err := json.NewDecoder(r.Body).Decode(&itinerary); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	userID := GetRequestingUserID(w, r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	itinerary.UserID = userID
	itinerary.ItineraryID = utils.GenerateRandomString(13)
	if itinerary.Status == "" {
		itinerary.Status = "Draft"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.ItineraryCollection.InsertOne(ctx, itinerary)
	if err != nil {
		http.Error(w, "Error inserting itinerary", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

// POST /api/itinerary/import-draft
// Imports the latest applied AI draft handoff as a new itinerary.
func ImportDraft(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := GetRequestingUserID(w, r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var handoff models.DraftHandoff
	if err := json.NewDecoder(r.Body).Decode(&handoff); err != nil {
		// No body means import the most recent stored handoff.
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		err := db.DraftHandoffCollection.FindOne(ctx, bson.M{},
			latestHandoffOptions()).Decode(&handoff)
		if err != nil {
			utils.Error(w, http.StatusNotFound, "No applied draft to import")
			return
		}
	}
	if len(handoff.Itinerary) == 0 {
		utils.Error(w, http.StatusBadRequest, "Draft has no itinerary days")
		return
	}

	name := "AI Draft"
	if len(handoff.Meta.Destinations) > 0 {
		name = "AI Draft - " + handoff.Meta.Destinations[0]
	}
	itinerary := models.Itinerary{
		ItineraryID:  utils.GenerateRandomString(13),
		UserID:       userID,
		Name:         name,
		Description:  handoff.SourcePrompt,
		SourcePrompt: handoff.SourcePrompt,
		Status:       "Draft",
		Days:         handoff.Itinerary,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.ItineraryCollection.InsertOne(ctx, itinerary); err != nil {
		http.Error(w, "Error importing draft", http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusCreated, itinerary)
}

// GET /api/itineraries/all/:id
func GetItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	itineraryID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"itineraryid": itineraryID, "deleted": bson.M{"$ne": true}}

	var itinerary models.Itinerary
	err := db.ItineraryCollection.FindOne(ctx, filter).Decode(&itinerary)
	if err != nil {
		http.Error(w, "Itinerary not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(itinerary)
}

// PUT /api/itineraries/:id
func UpdateItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := GetRequestingUserID(w, r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	itineraryID := ps.ByName("id")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var existing models.Itinerary
	err := db.ItineraryCollection.FindOne(ctx, bson.M{"itineraryid": itineraryID}).Decode(&existing)
	if err != nil {
		http.Error(w, "Itinerary not found", http.StatusNotFound)
		return
	}

	if existing.UserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var updated models.Itinerary
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	update := bson.M{"$set": bson.M{
		"name":        updated.Name,
		"description": updated.Description,
		"start_date":  updated.StartDate,
		"end_date":    updated.EndDate,
		"status":      updated.Status,
		"published":   updated.Published,
		"days":        updated.Days,
	}}

	_, err = db.ItineraryCollection.UpdateOne(ctx, bson.M{"itineraryid": itineraryID}, update)
	if err != nil {
		http.Error(w, "Error updating itinerary", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(bson.M{"message": "Itinerary updated successfully"})
}

// DELETE /api/itineraries/:id
func DeleteItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := GetRequestingUserID(w, r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	itineraryID := ps.ByName("id")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var itinerary models.Itinerary
	err := db.ItineraryCollection.FindOne(ctx, bson.M{"itineraryid": itineraryID}).Decode(&itinerary)
	if err != nil {
		http.Error(w, "Itinerary not found", http.StatusNotFound)
		return
	}

	if itinerary.UserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	update := bson.M{"$set": bson.M{"deleted": true}}
	_, err = db.ItineraryCollection.UpdateOne(ctx, bson.M{"itineraryid": itineraryID}, update)
	if err != nil {
		http.Error(w, "Error deleting itinerary", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(bson.M{"message": "Itinerary deleted successfully"})
}

// POST /api/itineraries/:id/fork
func ForkItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := GetRequestingUserID(w, r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	originalID := ps.ByName("id")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var original models.Itinerary
	err := db.ItineraryCollection.FindOne(ctx, bson.M{"itineraryid": originalID}).Decode(&original)
	if err != nil {
		http.Error(w, "Original itinerary not found", http.StatusNotFound)
		return
	}

	newItinerary := models.Itinerary{
		ItineraryID: utils.GenerateRandomString(13),
		UserID:      userID,
		Name:        "Forked - " + original.Name,
		Description: original.Description,
		StartDate:   original.StartDate,
		EndDate:     original.EndDate,
		Days:        original.Days,
		Status:      "Draft",
		Published:   false,
		ForkedFrom:  &originalID,
	}

	result, err := db.ItineraryCollection.InsertOne(ctx, newItinerary)
	if err != nil {
		http.Error(w, "Error forking itinerary", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

// PUT /api/itineraries/:id/publish
func PublishItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := GetRequestingUserID(w, r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := ps.ByName("id")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"itineraryid": id, "user_id": userID}
	update := bson.M{"$set": bson.M{"published": true}}

	result, err := db.ItineraryCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		http.Error(w, "Error publishing itinerary", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}
