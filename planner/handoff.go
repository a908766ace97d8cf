package planner

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

// ComposePlan flattens a phased draft into the server plan shape. It
// returns false when the draft has no parse phase yet, since nothing
// meaningful can be composed before the prompt has been parsed.
func ComposePlan(d models.Draft) (models.TripPlan, bool) {
	if d.Parse == nil {
		return models.TripPlan{}, false
	}
	plan := models.TripPlan{TripBase: d.Parse.Clone()}
	if d.Plan != nil {
		plan.Itinerary = make([]models.TripDay, len(d.Plan.Itinerary))
		for i, day := range d.Plan.Itinerary {
			plan.Itinerary[i] = day.Clone()
		}
	}
	if d.Pricing != nil && d.Pricing.Pricing != nil {
		p := d.Pricing.Pricing.Clone()
		plan.Pricing = &p
	}
	return plan, true
}

// BaseFrom extracts the parse-phase fields of a flat plan, filling the
// nights count from the itinerary length when it was not stated.
func BaseFrom(plan models.TripPlan) models.TripBase {
	base := plan.TripBase.Clone()
	if base.Nights == 0 {
		base.Nights = len(plan.Itinerary)
	}
	if base.Destinations == nil {
		base.Destinations = []string{}
	}
	if base.Interests == nil {
		base.Interests = []string{}
	}
	return base
}

// BuildHandoff serializes a confirmed plan into the fixed handoff record
// the itinerary page imports.
func BuildHandoff(plan models.TripPlan, sourcePrompt string) models.DraftHandoff {
	base := BaseFrom(plan)
	days := make([]models.TripDay, len(plan.Itinerary))
	for i, day := range plan.Itinerary {
		days[i] = day.Clone()
	}
	return models.DraftHandoff{
		AppliedAt:    time.Now().UnixMilli(),
		SourcePrompt: sourcePrompt,
		Itinerary:    days,
		Meta: models.HandoffMeta{
			Nights:       base.Nights,
			Destinations: base.Destinations,
			Interests:    base.Interests,
			Budget:       base.Budget,
		},
	}
}

// DraftStore persists handoff records for later import.
type DraftStore interface {
	SaveHandoff(ctx context.Context, rec models.DraftHandoff) error
	LatestHandoff(ctx context.Context) (models.DraftHandoff, error)
}

// MongoDraftStore stores handoff records in a Mongo collection.
type MongoDraftStore struct {
	Coll *mongo.Collection
}

func NewMongoDraftStore(coll *mongo.Collection) *MongoDraftStore {
	return &MongoDraftStore{Coll: coll}
}

func (s *MongoDraftStore) SaveHandoff(ctx context.Context, rec models.DraftHandoff) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := s.Coll.InsertOne(ctx, rec); err != nil {
		return &StorageError{Err: err}
	}
	return nil
}

func (s *MongoDraftStore) LatestHandoff(ctx context.Context) (models.DraftHandoff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var rec models.DraftHandoff
	opts := options.FindOne().SetSort(bson.D{{Key: "appliedAt", Value: -1}})
	if err := s.Coll.FindOne(ctx, bson.M{}, opts).Decode(&rec); err != nil {
		return rec, &StorageError{Err: err}
	}
	return rec, nil
}
