package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/repository"
	"k8s.io/klog/v2"
)

// CreateTemplateRequest 创建上下文模板请求
type CreateTemplateRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=1000"`
	Context     string `json:"context"`
}

// UpdateTemplateRequest 更新上下文模板请求
type UpdateTemplateRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=1000"`
	Context     string `json:"context"`
}

// TemplateService 上下文模板服务接口
type TemplateService interface {
	List(ctx context.Context, parishID string) ([]model.PetitionTemplate, error)
	Get(ctx context.Context, parishID string, id uint) (*model.PetitionTemplate, error)
	Create(ctx context.Context, parishID string, req CreateTemplateRequest) (*model.PetitionTemplate, error)
	Update(ctx context.Context, parishID string, id uint, req UpdateTemplateRequest) (*model.PetitionTemplate, error)
	Delete(ctx context.Context, parishID string, id uint) error
}

type templateService struct {
	templateRepo repository.PetitionTemplateRepository
}

func NewTemplateService(templateRepo repository.PetitionTemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

func (s *templateService) List(ctx context.Context, parishID string) ([]model.PetitionTemplate, error) {
	templates, err := s.templateRepo.List(ctx, parishID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

func (s *templateService) Get(ctx context.Context, parishID string, id uint) (*model.PetitionTemplate, error) {
	template, err := s.templateRepo.Get(ctx, parishID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return template, nil
}

func (s *templateService) Create(ctx context.Context, parishID string, req CreateTemplateRequest) (*model.PetitionTemplate, error) {
	template := &model.PetitionTemplate{
		ParishID:    parishID,
		Title:       req.Title,
		Description: req.Description,
		Context:     req.Context,
	}
	if err := s.templateRepo.Create(ctx, template); err != nil {
		klog.Errorf("CreateTemplate: failed to create template: %v", err)
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	klog.V(6).Infof("CreateTemplate: parish=%s, id=%d", parishID, template.ID)
	return template, nil
}

func (s *templateService) Update(ctx context.Context, parishID string, id uint, req UpdateTemplateRequest) (*model.PetitionTemplate, error) {
	template, err := s.Get(ctx, parishID, id)
	if err != nil {
		return nil, err
	}

	template.Title = req.Title
	template.Description = req.Description
	template.Context = req.Context

	if err := s.templateRepo.Save(ctx, template); err != nil {
		klog.Errorf("UpdateTemplate: failed to update template: %v", err)
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	return template, nil
}

// Delete 预置模板不允许删除
func (s *templateService) Delete(ctx context.Context, parishID string, id uint) error {
	template, err := s.Get(ctx, parishID, id)
	if err != nil {
		return err
	}
	if template.IsSystem {
		return ErrSystemTemplate
	}

	if err := s.templateRepo.Delete(ctx, parishID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to delete template: %w", err)
	}
	klog.V(6).Infof("DeleteTemplate: parish=%s, id=%d", parishID, id)
	return nil
}
