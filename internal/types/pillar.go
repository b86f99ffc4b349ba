package types

// Pillar is one of the seven fixed health dimensions the assessment scores.
type Pillar string

const (
	PillarMovement  Pillar = "MOVEMENT"
	PillarNutrition Pillar = "NUTRITION"
	PillarSleep     Pillar = "SLEEP"
	PillarSocial    Pillar = "SOCIAL_ENGAGEMENT"
	PillarStress    Pillar = "STRESS"
	PillarGratitude Pillar = "GRATITUDE"
	PillarCognitive Pillar = "COGNITIVE_ENHANCEMENT"
)

// AllPillars fixes the pillar enumeration order. Cross-pillar answer fallback
// and score-ordered scheduling both scan in this order, which keeps runs
// deterministic.
var AllPillars = []Pillar{
	PillarMovement,
	PillarNutrition,
	PillarSleep,
	PillarSocial,
	PillarStress,
	PillarGratitude,
	PillarCognitive,
}

// HealthScores maps each pillar to its score in [0,80].
type HealthScores map[Pillar]float64

// AnswerMap holds one questionnaire section: question text to raw answer
// (int, float, string or list of strings).
type AnswerMap map[string]interface{}

// UserData is the full answer set, grouped by pillar section. Read-only for
// the rule and scheduling core.
type UserData map[Pillar]AnswerMap

type Rating string

const (
	RatingActionNeeded Rating = "AKTIONSBEFARF"
	RatingImprovable   Rating = "AUSBAUFÄHIG"
	RatingOptimal      Rating = "OPTIMAL"
)

// RatingForScore maps a pillar score in [0,80] onto its report rating.
func RatingForScore(score float64) Rating {
	switch {
	case score < 40:
		return RatingActionNeeded
	case score < 64:
		return RatingImprovable
	default:
		return RatingOptimal
	}
}

// OrderForScore maps a pillar health score onto the 1-5 display order used by
// the display-order gate and package selection.
func OrderForScore(score float64) int {
	switch {
	case score <= 16:
		return 1
	case score <= 32:
		return 2
	case score <= 48:
		return 3
	case score <= 64:
		return 4
	default:
		return 5
	}
}

// MovementOrders carries the user's 1-5 proficiency order per movement
// dimension, derived from self-reported answers with a health-score fallback.
type MovementOrders struct {
	Mobility int
	Cardio   int
	Strength int
}

// OrderFor returns the order matching a routine's movement type. Unknown or
// empty movement types fall back to mobility.
func (m MovementOrders) OrderFor(movementType string) int {
	switch movementType {
	case "CARDIO":
		return m.Cardio
	case "STRENGTH":
		return m.Strength
	default:
		return m.Mobility
	}
}
