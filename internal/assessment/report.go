package assessment

import (
	"github.com/yungbote/vitalplan-backend/internal/types"
)

// interpretations holds the static per-pillar report text per rating.
var interpretations = map[types.Pillar]map[types.Rating]string{
	types.PillarMovement: {
		types.RatingActionNeeded: "Dein Bewegungslevel ist deutlich zu niedrig. Beginne mit kurzen täglichen Einheiten.",
		types.RatingImprovable:   "Du bewegst dich, aber nicht regelmäßig genug. Baue feste Routinen auf.",
		types.RatingOptimal:      "Dein Bewegungsverhalten ist sehr gut. Halte dein Niveau.",
	},
	types.PillarNutrition: {
		types.RatingActionNeeded: "Deine Ernährung braucht dringend mehr Ausgewogenheit.",
		types.RatingImprovable:   "Deine Ernährung ist solide, lässt aber Luft nach oben.",
		types.RatingOptimal:      "Du ernährst dich ausgewogen. Weiter so.",
	},
	types.PillarSleep: {
		types.RatingActionNeeded: "Dein Schlaf ist stark verbesserungswürdig. Feste Schlafenszeiten helfen.",
		types.RatingImprovable:   "Dein Schlaf ist in Ordnung, könnte aber erholsamer sein.",
		types.RatingOptimal:      "Du schläfst erholsam und regelmäßig.",
	},
	types.PillarSocial: {
		types.RatingActionNeeded: "Pflege deine sozialen Kontakte aktiver, sie tragen deine Gesundheit.",
		types.RatingImprovable:   "Deine sozialen Kontakte sind da, dürfen aber intensiver werden.",
		types.RatingOptimal:      "Dein soziales Umfeld ist eine starke Ressource.",
	},
	types.PillarStress: {
		types.RatingActionNeeded: "Dein Stresslevel ist hoch. Plane bewusste Erholungspausen ein.",
		types.RatingImprovable:   "Dein Umgang mit Stress funktioniert, braucht aber mehr Ausgleich.",
		types.RatingOptimal:      "Du hast deinen Stress gut im Griff.",
	},
	types.PillarGratitude: {
		types.RatingActionNeeded: "Nimm dir täglich einen Moment für Dankbarkeit.",
		types.RatingImprovable:   "Dankbarkeit ist Teil deines Alltags, darf aber regelmäßiger werden.",
		types.RatingOptimal:      "Deine dankbare Grundhaltung stärkt dein Wohlbefinden.",
	},
	types.PillarCognitive: {
		types.RatingActionNeeded: "Fordere deinen Kopf öfter mit neuen Aufgaben.",
		types.RatingImprovable:   "Du hältst deinen Kopf fit, mit Potential für mehr.",
		types.RatingOptimal:      "Deine geistige Fitness ist ausgezeichnet.",
	},
}

// BuildReport derives the health-score report document from the score set
// using the fixed rating thresholds and interpretation table.
func BuildReport(accountID string, scores types.HealthScores) types.HealthReportDocument {
	pillarScores := make([]types.PillarScoreReport, 0, len(types.AllPillars))
	for _, pillar := range types.AllPillars {
		score := scores[pillar]
		rating := types.RatingForScore(score)
		pillarScores = append(pillarScores, types.PillarScoreReport{
			Pillar:              pillar,
			Score:               score,
			ScoreInterpretation: interpretations[pillar][rating],
			Rating:              rating,
		})
	}
	return types.HealthReportDocument{
		Data: types.HealthReportData{
			TotalScore:   TotalScore(scores),
			AccountID:    accountID,
			PillarScores: pillarScores,
		},
	}
}
