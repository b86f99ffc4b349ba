package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/vitalplan-backend/internal/logger"
	"github.com/yungbote/vitalplan-backend/internal/types"
)

type HealthReportRepo interface {
	Create(ctx context.Context, tx *gorm.DB, record *types.HealthReportRecord) (*types.HealthReportRecord, error)
	GetLatestByAccount(ctx context.Context, tx *gorm.DB, accountID string) (*types.HealthReportRecord, error)
}

type healthReportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHealthReportRepo(db *gorm.DB, baseLog *logger.Logger) HealthReportRepo {
	return &healthReportRepo{db: db, log: baseLog.With("repo", "HealthReportRepo")}
}

func (r *healthReportRepo) Create(ctx context.Context, tx *gorm.DB, record *types.HealthReportRecord) (*types.HealthReportRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *healthReportRepo) GetLatestByAccount(ctx context.Context, tx *gorm.DB, accountID string) (*types.HealthReportRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var record types.HealthReportRecord
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
