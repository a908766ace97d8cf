package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	SettingsCollection      *mongo.Collection
	ItineraryCollection     *mongo.Collection
	AIDraftsCollection      *mongo.Collection
	AISessionsCollection    *mongo.Collection
	DraftHandoffCollection  *mongo.Collection
	QuotesCollection        *mongo.Collection
	BasketCollection        *mongo.Collection
	ConversationsCollection *mongo.Collection
	MessagesCollection      *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	ClientOptions := options.Client().ApplyURI(uri)
	Client, err = mongo.Connect(context.TODO(), ClientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("collecodb")
	UserCollection = database.Collection("users")
	SettingsCollection = database.Collection("settings")
	ItineraryCollection = database.Collection("itinerary")
	AIDraftsCollection = database.Collection("aidrafts")
	AISessionsCollection = database.Collection("aisessions")
	DraftHandoffCollection = database.Collection("drafthandoffs")
	QuotesCollection = database.Collection("quotes")
	BasketCollection = database.Collection("basket")
	ConversationsCollection = database.Collection("conversations")
	MessagesCollection = database.Collection("messages")
}
