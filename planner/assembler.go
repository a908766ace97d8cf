package planner

import (
	"encoding/json"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

// Apply folds one frame into the draft and returns the result. Each phase
// is replaced wholesale by its frame; "done" only flips the flag; unknown
// event types are a no-op so newer servers can add frames without breaking
// older clients. Payload shape is not validated here — a payload that does
// not decode into the phase type leaves the draft unchanged.
func Apply(d models.Draft, f Frame) models.Draft {
	switch f.Event {
	case EventParse:
		var p models.TripBase
		if err := json.Unmarshal(f.Data, &p); err != nil {
			return d
		}
		d.Parse = &p
	case EventPlan:
		var p models.PlanPhase
		if err := json.Unmarshal(f.Data, &p); err != nil {
			return d
		}
		d.Plan = &p
	case EventPricing:
		var p models.PricingPhase
		if err := json.Unmarshal(f.Data, &p); err != nil {
			return d
		}
		d.Pricing = &p
	case EventDone:
		d.Done = true
	}
	return d
}
