package assessment

import (
	"strconv"
	"strings"

	"github.com/yungbote/vitalplan-backend/internal/types"
)

// Question is one scored questionnaire item. Raw answers are on a 1-5
// scale; reversed items invert via 6-raw so that higher always means
// healthier before weighting.
type Question struct {
	Text     string
	Weight   float64
	Reversed bool
}

// pillarQuestions fixes the scored items per pillar. Weights are relative;
// each pillar is normalized to the 0-80 score range.
var pillarQuestions = map[types.Pillar][]Question{
	types.PillarMovement: {
		{Text: "Wie oft treibst du pro Woche Sport?", Weight: 2},
		{Text: "Wie schätzt du deine Beweglichkeit ein?", Weight: 1},
		{Text: "Wie schätzt du deine Ausdauer ein?", Weight: 1},
		{Text: "Wie schätzt du deine Kraft ein?", Weight: 1},
	},
	types.PillarNutrition: {
		{Text: "Wie oft isst du Gemüse und Obst?", Weight: 2},
		{Text: "Wie oft isst du stark verarbeitete Lebensmittel?", Weight: 1, Reversed: true},
		{Text: "Wie viel Wasser trinkst du täglich?", Weight: 1},
	},
	types.PillarSleep: {
		{Text: "Wie erholt wachst du morgens auf?", Weight: 2},
		{Text: "Wie oft wachst du nachts auf?", Weight: 1, Reversed: true},
		{Text: "Wie regelmäßig sind deine Schlafenszeiten?", Weight: 1},
	},
	types.PillarSocial: {
		{Text: "Wie oft triffst du Freunde oder Familie?", Weight: 2},
		{Text: "Fühlst du dich einsam?", Weight: 2, Reversed: true},
	},
	types.PillarStress: {
		{Text: "Wie gestresst fühlst du dich im Alltag?", Weight: 2, Reversed: true},
		{Text: "Wie gut kannst du abschalten?", Weight: 1},
	},
	types.PillarGratitude: {
		{Text: "Wie oft nimmst du dir Zeit für Dankbarkeit?", Weight: 2},
		{Text: "Wie zufrieden bist du mit deinem Leben?", Weight: 1},
	},
	types.PillarCognitive: {
		{Text: "Wie oft lernst du etwas Neues?", Weight: 2},
		{Text: "Wie gut kannst du dich konzentrieren?", Weight: 1},
	},
}

const (
	maxRawAnswer   = 5
	pillarScoreMax = 80
)

// AnswerValue normalizes a raw answer (reversed items flip on the 1-5
// scale). Out-of-range and non-numeric answers clamp into [1,5].
func AnswerValue(q Question, raw interface{}) float64 {
	v, ok := toNumber(raw)
	if !ok {
		v = 1
	}
	if v < 1 {
		v = 1
	}
	if v > maxRawAnswer {
		v = maxRawAnswer
	}
	if q.Reversed {
		v = 6 - v
	}
	return v
}

// Score computes every pillar's health score as a weighted sum of its
// answers, scaled to [0,80]. Unanswered questions count as the scale
// minimum.
func Score(userData types.UserData) types.HealthScores {
	scores := types.HealthScores{}
	for _, pillar := range types.AllPillars {
		questions := pillarQuestions[pillar]
		if len(questions) == 0 {
			scores[pillar] = 0
			continue
		}
		total, max := 0.0, 0.0
		for _, q := range questions {
			raw, _ := lookupAnswer(userData, pillar, q.Text)
			total += q.Weight * AnswerValue(q, raw)
			max += q.Weight * maxRawAnswer
		}
		scores[pillar] = total / max * pillarScoreMax
	}
	return scores
}

// TotalScore aggregates pillar scores onto the 0-100 scale.
func TotalScore(scores types.HealthScores) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, pillar := range types.AllPillars {
		sum += scores[pillar]
	}
	return sum / float64(len(types.AllPillars)) / pillarScoreMax * 100
}

const timeBudgetQuestion = "Wie viel Zeit kannst du täglich investieren?"

// timeBudgets maps the questionnaire's time-budget options onto minute
// budgets. Unknown answers fall back to 40 minutes.
var timeBudgets = map[string]int{
	"Weniger als 20 Minuten": 20,
	"20-45 Minuten":          40,
	"45-60 Minuten":          50,
	"Mehr als 60 Minuten":    90,
}

const defaultTimeBudget = 40

// TimeBudget extracts the user's total daily time budget in minutes.
func TimeBudget(userData types.UserData) int {
	raw, ok := lookupAnswer(userData, types.PillarMovement, timeBudgetQuestion)
	if !ok {
		return defaultTimeBudget
	}
	s, ok := raw.(string)
	if !ok {
		return defaultTimeBudget
	}
	if budget, ok := timeBudgets[strings.TrimSpace(s)]; ok {
		return budget
	}
	return defaultTimeBudget
}

// Self-reported movement proficiency items. Missing answers fall back to
// the order derived from the movement health score.
const (
	mobilityQuestion = "Wie schätzt du deine Beweglichkeit ein?"
	cardioQuestion   = "Wie schätzt du deine Ausdauer ein?"
	strengthQuestion = "Wie schätzt du deine Kraft ein?"
)

// MovementOrders derives the user's 1-5 order per movement dimension.
func MovementOrders(userData types.UserData, scores types.HealthScores) types.MovementOrders {
	fallback := types.OrderForScore(scores[types.PillarMovement])
	return types.MovementOrders{
		Mobility: movementOrder(userData, mobilityQuestion, fallback),
		Cardio:   movementOrder(userData, cardioQuestion, fallback),
		Strength: movementOrder(userData, strengthQuestion, fallback),
	}
}

func movementOrder(userData types.UserData, question string, fallback int) int {
	raw, ok := lookupAnswer(userData, types.PillarMovement, question)
	if !ok {
		return fallback
	}
	v, ok := toNumber(raw)
	if !ok || v < 1 || v > 5 {
		return fallback
	}
	return int(v)
}

// lookupAnswer prefers the pillar's own section, then scans the others in
// fixed pillar order.
func lookupAnswer(userData types.UserData, pillar types.Pillar, question string) (interface{}, bool) {
	if section, ok := userData[pillar]; ok {
		if v, ok := section[question]; ok {
			return v, true
		}
	}
	for _, p := range types.AllPillars {
		if p == pillar {
			continue
		}
		if section, ok := userData[p]; ok {
			if v, ok := section[question]; ok {
				return v, true
			}
		}
	}
	return nil, false
}

func toNumber(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
