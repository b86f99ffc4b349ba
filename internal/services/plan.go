package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/vitalplan-backend/internal/assessment"
	"github.com/yungbote/vitalplan-backend/internal/logger"
	"github.com/yungbote/vitalplan-backend/internal/plan"
	"github.com/yungbote/vitalplan-backend/internal/repos"
	"github.com/yungbote/vitalplan-backend/internal/rules"
	"github.com/yungbote/vitalplan-backend/internal/types"
)

type GeneratePlanRequest struct {
	AccountID string         `json:"accountId"`
	Gender    string         `json:"gender"`
	Answers   types.UserData `json:"answers"`
}

type PlanService interface {
	GeneratePlan(ctx context.Context, req GeneratePlanRequest) (*types.ActionPlanDocument, *types.HealthReportDocument, error)
	LatestPlan(ctx context.Context, accountID string) (*types.ActionPlanRecord, error)
	LatestReport(ctx context.Context, accountID string) (*types.HealthReportRecord, error)
}

type planService struct {
	db             *gorm.DB
	log            *logger.Logger
	catalogService CatalogService
	planRepo       repos.ActionPlanRepo
	reportRepo     repos.HealthReportRepo
	seed           func() int64
}

func NewPlanService(db *gorm.DB, baseLog *logger.Logger, catalogService CatalogService, planRepo repos.ActionPlanRepo, reportRepo repos.HealthReportRepo) PlanService {
	return &planService{
		db:             db,
		log:            baseLog.With("service", "PlanService"),
		catalogService: catalogService,
		planRepo:       planRepo,
		reportRepo:     reportRepo,
		seed:           func() int64 { return time.Now().UnixNano() },
	}
}

// GeneratePlan runs the full pipeline for one account: score the answers,
// evaluate the rule table against the catalog snapshot, select and schedule
// routines, then persist the plan and the health report.
func (s *planService) GeneratePlan(ctx context.Context, req GeneratePlanRequest) (*types.ActionPlanDocument, *types.HealthReportDocument, error) {
	if req.AccountID == "" {
		return nil, nil, fmt.Errorf("accountId is required")
	}
	if len(req.Answers) == 0 {
		return nil, nil, fmt.Errorf("answers are required")
	}

	scores := assessment.Score(req.Answers)
	budget := assessment.TimeBudget(req.Answers)
	movementOrders := assessment.MovementOrders(req.Answers, scores)

	snapshot, err := s.catalogService.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	routines := snapshot.Routines()

	audit := &rules.Audit{}
	engine := rules.NewEngine(s.log)
	engine.ApplyExclusionRules(req.Answers, snapshot.Rules.ExclusionRules, routines, audit)
	for _, pillar := range types.AllPillars {
		if ruleList, ok := snapshot.Rules.InclusionRules[pillar]; ok {
			engine.ApplyInclusionRules(pillar, ruleList, routines, req.Answers, audit)
		}
	}

	filter := plan.NewFilter(s.log)
	filter.ApplyDefaults(routines)
	filter.ApplyDisplayOrderGate(routines, scores, movementOrders)
	filter.ApplyEquipmentGate(routines)

	packages := map[types.Pillar]*types.RoutinePackage{}
	intensity := plan.IntensityForBudget(budget)
	for _, pillar := range types.AllPillars {
		order := types.OrderForScore(scores[pillar])
		packages[pillar] = plan.SelectPackage(s.log, snapshot.Packages, pillar, "", order, intensity)
	}

	previousPlanID := ""
	if previous, err := s.planRepo.GetLatestByAccount(ctx, nil, req.AccountID); err != nil {
		return nil, nil, err
	} else if previous != nil {
		previousPlanID = previous.PlanUniqueID
	}

	input := plan.Input{
		AccountID:            req.AccountID,
		Gender:               req.Gender,
		PreviousPlanUniqueID: previousPlanID,
		TotalDailyTimeInMins: budget,
		Scores:               scores,
		MovementOrders:       movementOrders,
		Routines:             routines,
		Packages:             packages,
		Templates:            snapshot.Templates,
		PlanStart:            time.Now().UTC().Truncate(24 * time.Hour),
	}
	scheduler := plan.NewScheduler(s.log, s.seed())
	entries := scheduler.BuildSchedule(input)

	planUniqueID := uuid.NewString()
	document := plan.BuildActionPlan(input, entries, planUniqueID)
	report := assessment.BuildReport(req.AccountID, scores)

	s.log.Info("Plan generated",
		"accountId", req.AccountID,
		"routines", len(document.Data.Routines),
		"exclusionHits", len(audit.Exclusions),
		"inclusionHits", len(audit.Inclusions),
	)

	if err := s.persist(ctx, req, &document, &report); err != nil {
		return nil, nil, err
	}
	return &document, &report, nil
}

func (s *planService) persist(ctx context.Context, req GeneratePlanRequest, document *types.ActionPlanDocument, report *types.HealthReportDocument) error {
	routinesJSON, err := json.Marshal(document.Data.Routines)
	if err != nil {
		return fmt.Errorf("marshal plan routines: %w", err)
	}
	pillarScoresJSON, err := json.Marshal(report.Data.PillarScores)
	if err != nil {
		return fmt.Errorf("marshal pillar scores: %w", err)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.planRepo.Create(ctx, tx, &types.ActionPlanRecord{
			ID:                   uuid.New(),
			AccountID:            req.AccountID,
			PlanUniqueID:         document.Data.ActionPlanUniqueID,
			PreviousPlanUniqueID: document.Data.PreviousActionPlanUniqueID,
			PeriodInDays:         document.Data.PeriodInDays,
			TotalDailyTimeInMins: document.Data.TotalDailyTimeInMins,
			Gender:               document.Data.Gender,
			Routines:             routinesJSON,
		}); err != nil {
			return err
		}
		_, err := s.reportRepo.Create(ctx, tx, &types.HealthReportRecord{
			ID:           uuid.New(),
			AccountID:    report.Data.AccountID,
			TotalScore:   report.Data.TotalScore,
			PillarScores: pillarScoresJSON,
		})
		return err
	})
}

func (s *planService) LatestPlan(ctx context.Context, accountID string) (*types.ActionPlanRecord, error) {
	return s.planRepo.GetLatestByAccount(ctx, nil, accountID)
}

func (s *planService) LatestReport(ctx context.Context, accountID string) (*types.HealthReportRecord, error) {
	return s.reportRepo.GetLatestByAccount(ctx, nil, accountID)
}
