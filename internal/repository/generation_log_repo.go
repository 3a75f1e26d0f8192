package repository

import (
	"context"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
	"gorm.io/gorm"
)

type generationLogRepository struct {
	db *gorm.DB
}

func NewGenerationLogRepository(db *gorm.DB) GenerationLogRepository {
	return &generationLogRepository{db: db}
}

func (r *generationLogRepository) Create(ctx context.Context, log *model.GenerationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *generationLogRepository) ListByPetition(ctx context.Context, parishID string, petitionID uint, limit int) ([]model.GenerationLog, error) {
	var logs []model.GenerationLog
	tx := r.db.WithContext(ctx).
		Where("parish_id = ? AND petition_id = ?", parishID, petitionID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&logs).Error
	return logs, err
}

// DeleteByPetition 删除祈祷意向的全部生成记录，返回删除行数
func (r *generationLogRepository) DeleteByPetition(ctx context.Context, parishID string, petitionID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("parish_id = ? AND petition_id = ?", parishID, petitionID).
		Delete(&model.GenerationLog{})
	return result.RowsAffected, result.Error
}
