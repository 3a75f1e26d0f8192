package repository

import (
	"context"
	"errors"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

// ErrVersionConflict 乐观锁版本不匹配
var ErrVersionConflict = errors.New("version conflict")

type ParishRepository interface {
	Create(ctx context.Context, parish *model.Parish) error
	Get(ctx context.Context, id string) (*model.Parish, error)
}

// PetitionRepository 所有查询都同时按堂区和主键限定
type PetitionRepository interface {
	Create(ctx context.Context, petition *model.Petition) error
	Get(ctx context.Context, parishID string, id uint) (*model.Petition, error)
	List(ctx context.Context, parishID string) ([]model.Petition, error)
	// Update 整体替换可编辑字段；expectedVersion 为 0 时不做版本检查
	Update(ctx context.Context, petition *model.Petition, expectedVersion int) error
	Delete(ctx context.Context, parishID string, id uint) error
}

type PetitionTemplateRepository interface {
	Create(ctx context.Context, template *model.PetitionTemplate) error
	CreateBatch(ctx context.Context, templates []model.PetitionTemplate) error
	Get(ctx context.Context, parishID string, id uint) (*model.PetitionTemplate, error)
	List(ctx context.Context, parishID string) ([]model.PetitionTemplate, error)
	Save(ctx context.Context, template *model.PetitionTemplate) error
	Delete(ctx context.Context, parishID string, id uint) error
}

type SettingsRepository interface {
	Get(ctx context.Context, parishID string) (*model.ParishSettings, error)
	Upsert(ctx context.Context, settings *model.ParishSettings) error
	Delete(ctx context.Context, parishID string) error
}

type GenerationLogRepository interface {
	Create(ctx context.Context, log *model.GenerationLog) error
	ListByPetition(ctx context.Context, parishID string, petitionID uint, limit int) ([]model.GenerationLog, error)
	DeleteByPetition(ctx context.Context, parishID string, petitionID uint) (int64, error)
}
