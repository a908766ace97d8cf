package itinerary

import (
	"context"
	"net/http"
	"time"

	"github.com/collecokzn-creator/colleco-mvp-sub004/db"
	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
	"github.com/collecokzn-creator/colleco-mvp-sub004/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func latestHandoffOptions() *options.FindOneOptions {
	return options.FindOne().SetSort(bson.D{{Key: "appliedAt", Value: -1}})
}

// GET /api/itineraries
func GetItineraries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"deleted": bson.M{"$ne": true}}
	itineraries, err := utils.FindAndDecode[models.Itinerary](ctx, db.ItineraryCollection, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching itineraries")
		return
	}

	for i := range itineraries {
		if itineraries[i].Days == nil {
			itineraries[i].Days = []models.TripDay{}
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, itineraries)
}

// GET /api/itineraries/search
func SearchItineraries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	filter := bson.M{"deleted": bson.M{"$ne": true}}
	if start := query.Get("start_date"); start != "" {
		filter["start_date"] = start
	}
	if destination := query.Get("destination"); destination != "" {
		filter["days.destination"] = bson.M{"$in": []string{destination}}
	}
	if status := query.Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	itineraries, err := utils.FindAndDecode[models.Itinerary](ctx, db.ItineraryCollection, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching itineraries")
		return
	}

	for i := range itineraries {
		if itineraries[i].Days == nil {
			itineraries[i].Days = []models.TripDay{}
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, itineraries)
}
