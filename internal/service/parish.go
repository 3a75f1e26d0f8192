package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/repository"
	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// CreateParishRequest 创建堂区请求
type CreateParishRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type ParishService interface {
	Create(ctx context.Context, req CreateParishRequest) (*model.Parish, error)
	Get(ctx context.Context, id string) (*model.Parish, error)
}

type parishService struct {
	parishRepo   repository.ParishRepository
	templateRepo repository.PetitionTemplateRepository
}

func NewParishService(parishRepo repository.ParishRepository, templateRepo repository.PetitionTemplateRepository) ParishService {
	return &parishService{parishRepo: parishRepo, templateRepo: templateRepo}
}

// Create 创建堂区并预置上下文模板
// 预置模板失败不影响堂区创建
func (s *parishService) Create(ctx context.Context, req CreateParishRequest) (*model.Parish, error) {
	parish := &model.Parish{
		ID:   uuid.New().String(),
		Name: req.Name,
	}
	if err := s.parishRepo.Create(ctx, parish); err != nil {
		klog.Errorf("CreateParish: failed to create parish: %v", err)
		return nil, fmt.Errorf("failed to create parish: %w", err)
	}

	if s.templateRepo != nil {
		if err := s.templateRepo.CreateBatch(ctx, DefaultTemplates(parish.ID)); err != nil {
			klog.Warningf("CreateParish: failed to seed default templates for parish=%s: %v", parish.ID, err)
		}
	}

	klog.V(6).Infof("CreateParish: id=%s, name=%s", parish.ID, parish.Name)
	return parish, nil
}

func (s *parishService) Get(ctx context.Context, id string) (*model.Parish, error) {
	parish, err := s.parishRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrParishNotFound
		}
		return nil, fmt.Errorf("failed to get parish: %w", err)
	}
	return parish, nil
}
