package seating

import "maps"

// Weights are the coefficients turning seating facts into a scalar score.
// The engine never mutates a Weights value it is given.
type Weights struct {
	// Relationships is added once per tablemate the guest has a relationship
	// toward. Negative values (avoid) act as penalties.
	Relationships map[RelationshipType]float64 `json:"relationships" yaml:"relationships" mapstructure:"relationships"`
	// Constraints is the reward (or penalty) per constraint priority.
	Constraints map[ConstraintPriority]float64 `json:"constraints" yaml:"constraints" mapstructure:"constraints"`
	// GroupCohesion is added per tablemate sharing the guest's group label.
	GroupCohesion float64 `json:"groupCohesion" yaml:"groupCohesion" mapstructure:"groupCohesion"`
	// InterestMatch is added per interest tag shared with a tablemate.
	InterestMatch float64 `json:"interestMatch" yaml:"interestMatch" mapstructure:"interestMatch"`
}

// DefaultWeights returns the stock weighting. Each call returns fresh maps.
func DefaultWeights() Weights {
	return Weights{
		Relationships: map[RelationshipType]float64{
			RelPartner:      100,
			RelFamily:       50,
			RelFriend:       30,
			RelColleague:    15,
			RelAcquaintance: 5,
			RelAvoid:        -200,
		},
		Constraints: map[ConstraintPriority]float64{
			PriorityRequired:  500,
			PriorityPreferred: 100,
			PriorityOptional:  25,
		},
		GroupCohesion: 20,
		InterestMatch: 10,
	}
}

// Clone returns a deep copy of w. The maps of the copy are never nil.
func (w Weights) Clone() Weights {
	out := w
	out.Relationships = make(map[RelationshipType]float64, len(w.Relationships))
	maps.Copy(out.Relationships, w.Relationships)
	out.Constraints = make(map[ConstraintPriority]float64, len(w.Constraints))
	maps.Copy(out.Constraints, w.Constraints)
	return out
}
