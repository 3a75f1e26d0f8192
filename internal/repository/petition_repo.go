package repository

import (
	"context"
	"errors"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
	"gorm.io/gorm"
)

type petitionRepository struct {
	db *gorm.DB
}

func NewPetitionRepository(db *gorm.DB) PetitionRepository {
	return &petitionRepository{db: db}
}

func (r *petitionRepository) Create(ctx context.Context, petition *model.Petition) error {
	if petition.Version == 0 {
		petition.Version = 1
	}
	return r.db.WithContext(ctx).Create(petition).Error
}

func (r *petitionRepository) Get(ctx context.Context, parishID string, id uint) (*model.Petition, error) {
	var petition model.Petition
	err := r.db.WithContext(ctx).
		Where("id = ? AND parish_id = ?", id, parishID).
		First(&petition).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &petition, nil
}

func (r *petitionRepository) List(ctx context.Context, parishID string) ([]model.Petition, error) {
	var petitions []model.Petition
	err := r.db.WithContext(ctx).
		Where("parish_id = ?", parishID).
		Order("date DESC, id DESC").
		Find(&petitions).Error
	return petitions, err
}

// Update 单条语句更新，成功后重新读取记录以获得新的版本号
func (r *petitionRepository) Update(ctx context.Context, petition *model.Petition, expectedVersion int) error {
	tx := r.db.WithContext(ctx).
		Model(&model.Petition{}).
		Where("id = ? AND parish_id = ?", petition.ID, petition.ParishID)
	if expectedVersion > 0 {
		tx = tx.Where("version = ?", expectedVersion)
	}

	result := tx.Updates(map[string]interface{}{
		"title":             petition.Title,
		"date":              petition.Date,
		"language":          petition.Language,
		"details":           petition.Details,
		"template_id":       petition.TemplateID,
		"generated_content": petition.GeneratedContent,
		"generation_source": petition.GenerationSource,
		"version":           gorm.Expr("version + 1"),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, petition.ParishID, petition.ID); err != nil {
			return err
		}
		return ErrVersionConflict
	}

	return r.db.WithContext(ctx).
		Where("id = ? AND parish_id = ?", petition.ID, petition.ParishID).
		First(petition).Error
}

func (r *petitionRepository) Delete(ctx context.Context, parishID string, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND parish_id = ?", id, parishID).
		Delete(&model.Petition{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
