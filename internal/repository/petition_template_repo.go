package repository

import (
	"context"
	"errors"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
	"gorm.io/gorm"
)

type petitionTemplateRepository struct {
	db *gorm.DB
}

func NewPetitionTemplateRepository(db *gorm.DB) PetitionTemplateRepository {
	return &petitionTemplateRepository{db: db}
}

func (r *petitionTemplateRepository) Create(ctx context.Context, template *model.PetitionTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *petitionTemplateRepository) CreateBatch(ctx context.Context, templates []model.PetitionTemplate) error {
	if len(templates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&templates).Error
}

func (r *petitionTemplateRepository) Get(ctx context.Context, parishID string, id uint) (*model.PetitionTemplate, error) {
	var template model.PetitionTemplate
	err := r.db.WithContext(ctx).
		Where("id = ? AND parish_id = ?", id, parishID).
		First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &template, nil
}

func (r *petitionTemplateRepository) List(ctx context.Context, parishID string) ([]model.PetitionTemplate, error) {
	var templates []model.PetitionTemplate
	err := r.db.WithContext(ctx).
		Where("parish_id = ?", parishID).
		Order("title ASC, id ASC").
		Find(&templates).Error
	return templates, err
}

func (r *petitionTemplateRepository) Save(ctx context.Context, template *model.PetitionTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *petitionTemplateRepository) Delete(ctx context.Context, parishID string, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND parish_id = ?", id, parishID).
		Delete(&model.PetitionTemplate{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
