package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/vitalplan-backend/internal/logger"
	"github.com/yungbote/vitalplan-backend/internal/types"
)

type ActionPlanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, record *types.ActionPlanRecord) (*types.ActionPlanRecord, error)
	GetLatestByAccount(ctx context.Context, tx *gorm.DB, accountID string) (*types.ActionPlanRecord, error)
}

type actionPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActionPlanRepo(db *gorm.DB, baseLog *logger.Logger) ActionPlanRepo {
	return &actionPlanRepo{db: db, log: baseLog.With("repo", "ActionPlanRepo")}
}

func (r *actionPlanRepo) Create(ctx context.Context, tx *gorm.DB, record *types.ActionPlanRecord) (*types.ActionPlanRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// GetLatestByAccount returns the newest plan for an account, or (nil, nil)
// when the account has none yet.
func (r *actionPlanRepo) GetLatestByAccount(ctx context.Context, tx *gorm.DB, accountID string) (*types.ActionPlanRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var record types.ActionPlanRecord
	err := transaction.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
