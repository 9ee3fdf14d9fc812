package repository

import (
	"context"

	"gumroad-relay/internal/model"

	"gorm.io/gorm"
)

type CheckHistoryRepository interface {
	Record(ctx context.Context, rec *model.CheckRecord) error
	Recent(ctx context.Context, limit int) ([]*model.CheckRecord, error)
}

type checkHistoryRepoImpl struct {
	db *gorm.DB
}

func NewCheckHistoryRepository(db *gorm.DB) CheckHistoryRepository {
	return &checkHistoryRepoImpl{
		db: db,
	}
}

func (r *checkHistoryRepoImpl) Record(ctx context.Context, rec *model.CheckRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *checkHistoryRepoImpl) Recent(ctx context.Context, limit int) ([]*model.CheckRecord, error) {
	var records []*model.CheckRecord
	err := r.db.WithContext(ctx).
		Order("checked_at DESC").
		Limit(limit).
		Find(&records).
		Error

	if err != nil {
		return nil, err
	}

	return records, nil
}
