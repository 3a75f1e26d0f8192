package repository

import (
	"context"
	"errors"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, parishID string) (*model.ParishSettings, error) {
	var settings model.ParishSettings
	err := r.db.WithContext(ctx).Where("parish_id = ?", parishID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *model.ParishSettings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "parish_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"prompt_template", "updated_at"}),
		}).
		Create(settings).Error
}

func (r *settingsRepository) Delete(ctx context.Context, parishID string) error {
	return r.db.WithContext(ctx).
		Where("parish_id = ?", parishID).
		Delete(&model.ParishSettings{}).Error
}
