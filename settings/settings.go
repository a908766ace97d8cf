package settings

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/collecokzn-creator/colleco-mvp-sub004/db"
	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
	"github.com/collecokzn-creator/colleco-mvp-sub004/notify"
	"github.com/collecokzn-creator/colleco-mvp-sub004/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserSettings holds per-user planner preferences.
type UserSettings struct {
	UserID        string `json:"userID,omitempty" bson:"userID"`
	Theme         string `json:"theme" bson:"theme"`
	Notifications bool   `json:"notifications" bson:"notifications"`
	Currency      string `json:"currency" bson:"currency"`
	HomeCity      string `json:"home_city" bson:"home_city"`
	Language      string `json:"language" bson:"language"`
	TimeZone      string `json:"time_zone" bson:"time_zone"`
	LastAIPrompt  string `json:"last_ai_prompt" bson:"last_ai_prompt"`
}

func getDefaultSettings(userID string) UserSettings {
	return UserSettings{
		UserID:        userID,
		Theme:         "light",
		Notifications: true,
		Currency:      "ZAR",
		HomeCity:      "",
		Language:      "english",
		TimeZone:      "Africa/Johannesburg",
	}
}

// Fetch user settings as an array (frontend expects this format)
func GetUserSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var userSettings UserSettings
	err := db.SettingsCollection.FindOne(r.Context(), bson.M{"userID": userID}).Decode(&userSettings)
	if err == mongo.ErrNoDocuments {
		userSettings = getDefaultSettings(userID)
		_, _ = db.SettingsCollection.InsertOne(r.Context(), userSettings)
	} else if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	settingsArray := []map[string]any{
		{"type": "theme", "value": userSettings.Theme, "description": "Choose theme mode"},
		{"type": "notifications", "value": userSettings.Notifications, "description": "Enable notifications"},
		{"type": "currency", "value": userSettings.Currency, "description": "Preferred pricing currency"},
		{"type": "home_city", "value": userSettings.HomeCity, "description": "Default departure city"},
		{"type": "language", "value": userSettings.Language, "description": "Select language"},
		{"type": "time_zone", "value": userSettings.TimeZone, "description": "Select time zone"},
		{"type": "last_ai_prompt", "value": userSettings.LastAIPrompt, "description": "Most recent planner prompt"},
	}

	utils.RespondWithJSON(w, http.StatusOK, settingsArray)
}

// Update a specific user setting
func UpdateUserSetting(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	settingType := ps.ByName("type")

	validSettings := map[string]bool{
		"theme":          true,
		"notifications":  true,
		"currency":       true,
		"home_city":      true,
		"language":       true,
		"time_zone":      true,
		"last_ai_prompt": true,
	}
	if !validSettings[settingType] {
		http.Error(w, "Invalid setting type", http.StatusBadRequest)
		return
	}

	var update struct {
		Value any `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	filter := bson.M{"userID": userID}
	updateDoc := bson.M{"$set": bson.M{settingType: update.Value}}

	opts := options.Update().SetUpsert(true)
	_, err := db.SettingsCollection.UpdateOne(r.Context(), filter, updateDoc, opts)
	if err != nil {
		http.Error(w, "Failed to update setting", http.StatusInternalServerError)
		return
	}

	notify.Emit(context.Background(), models.Notification{
		Type:   "settings_updated",
		UserID: userID,
	})

	response := map[string]any{
		"status":  "success",
		"message": "Setting updated successfully",
		"type":    settingType,
		"value":   update.Value,
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Initialize user settings if they don't exist
func InitUserSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var existingSettings UserSettings
	err := db.SettingsCollection.FindOne(r.Context(), bson.M{"userID": userID}).Decode(&existingSettings)
	if err == mongo.ErrNoDocuments {
		newSettings := getDefaultSettings(userID)
		if _, err := db.SettingsCollection.InsertOne(r.Context(), newSettings); err != nil {
			http.Error(w, "Failed to initialize settings", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(true)
		return
	} else if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(false)
}
