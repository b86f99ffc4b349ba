package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActionPlanRecord is the persisted form of one generated action plan. The
// scheduled-routine list is stored as a JSON document; plans are written once
// per run and never mutated.
type ActionPlanRecord struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID            string         `gorm:"index;not null;column:account_id" json:"account_id"`
	PlanUniqueID         string         `gorm:"uniqueIndex;not null;column:plan_unique_id" json:"plan_unique_id"`
	PreviousPlanUniqueID string         `gorm:"column:previous_plan_unique_id" json:"previous_plan_unique_id"`
	PeriodInDays         int            `gorm:"not null;column:period_in_days" json:"period_in_days"`
	TotalDailyTimeInMins int            `gorm:"column:total_daily_time_in_mins" json:"total_daily_time_in_mins"`
	Gender               string         `gorm:"column:gender" json:"gender"`
	Routines             datatypes.JSON `gorm:"column:routines" json:"routines"`
	CreatedAt            time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (ActionPlanRecord) TableName() string {
	return "action_plan"
}

type HealthReportRecord struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID    string         `gorm:"index;not null;column:account_id" json:"account_id"`
	TotalScore   float64        `gorm:"not null;column:total_score" json:"total_score"`
	PillarScores datatypes.JSON `gorm:"column:pillar_scores" json:"pillar_scores"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (HealthReportRecord) TableName() string {
	return "health_report"
}
