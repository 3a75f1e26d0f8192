package repository

import (
	"context"
	"errors"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
	"gorm.io/gorm"
)

type parishRepository struct {
	db *gorm.DB
}

func NewParishRepository(db *gorm.DB) ParishRepository {
	return &parishRepository{db: db}
}

func (r *parishRepository) Create(ctx context.Context, parish *model.Parish) error {
	return r.db.WithContext(ctx).Create(parish).Error
}

func (r *parishRepository) Get(ctx context.Context, id string) (*model.Parish, error) {
	var parish model.Parish
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&parish).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &parish, nil
}
