package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/pkg/cache"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/pkg/prompt"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/repository"
	"k8s.io/klog/v2"
)

// SettingsDTO 堂区设置
type SettingsDTO struct {
	ParishID       string   `json:"parish_id"`
	PromptTemplate string   `json:"prompt_template"`
	IsDefault      bool     `json:"is_default"`
	Placeholders   []string `json:"placeholders"`
}

// UpdateSettingsRequest 空字符串表示恢复默认模板
type UpdateSettingsRequest struct {
	PromptTemplate string `json:"prompt_template"`
}

// InvalidPromptTemplateError 包含未知占位符列表
type InvalidPromptTemplateError struct {
	Unknown []string
}

func (e *InvalidPromptTemplateError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidPromptTemplate, strings.Join(e.Unknown, ", "))
}

func (e *InvalidPromptTemplateError) Unwrap() error {
	return ErrInvalidPromptTemplate
}

type SettingsService interface {
	Get(ctx context.Context, parishID string) (*SettingsDTO, error)
	Update(ctx context.Context, parishID string, req UpdateSettingsRequest) (*SettingsDTO, error)
	// PromptTemplate 返回生效的提示词模板，没有自定义时返回默认模板
	PromptTemplate(ctx context.Context, parishID string) (string, error)
}

type settingsService struct {
	repo  repository.SettingsRepository
	cache cache.Cache
}

func NewSettingsService(repo repository.SettingsRepository, c cache.Cache) SettingsService {
	if c == nil {
		c = cache.Noop{}
	}
	return &settingsService{repo: repo, cache: c}
}

func promptCacheKey(parishID string) string {
	return "parish:" + parishID + ":prompt_template"
}

func (s *settingsService) Get(ctx context.Context, parishID string) (*SettingsDTO, error) {
	settings, err := s.repo.Get(ctx, parishID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return defaultSettings(parishID), nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &SettingsDTO{
		ParishID:       parishID,
		PromptTemplate: settings.PromptTemplate,
		Placeholders:   prompt.Placeholders,
	}, nil
}

func (s *settingsService) Update(ctx context.Context, parishID string, req UpdateSettingsRequest) (*SettingsDTO, error) {
	klog.V(6).Infof("UpdateSettings: parish=%s", parishID)

	if strings.TrimSpace(req.PromptTemplate) == "" {
		if err := s.repo.Delete(ctx, parishID); err != nil {
			return nil, fmt.Errorf("failed to reset settings: %w", err)
		}
		s.storeCache(ctx, parishID, prompt.DefaultTemplate)
		return defaultSettings(parishID), nil
	}

	if unknown := prompt.Unknown(req.PromptTemplate); len(unknown) > 0 {
		return nil, &InvalidPromptTemplateError{Unknown: unknown}
	}

	settings := &model.ParishSettings{ParishID: parishID, PromptTemplate: req.PromptTemplate}
	if err := s.repo.Upsert(ctx, settings); err != nil {
		klog.Errorf("UpdateSettings: failed to save settings: %v", err)
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	s.storeCache(ctx, parishID, req.PromptTemplate)
	return &SettingsDTO{
		ParishID:       parishID,
		PromptTemplate: req.PromptTemplate,
		Placeholders:   prompt.Placeholders,
	}, nil
}

// storeCache 写入最新模板，覆盖并发读回填的旧值；写入失败时删除缓存
func (s *settingsService) storeCache(ctx context.Context, parishID, tpl string) {
	key := promptCacheKey(parishID)
	err := s.cache.Set(ctx, key, tpl)
	if err == nil {
		return
	}
	klog.Warningf("UpdateSettings: failed to write cache for parish=%s: %v", parishID, err)
	if err := s.cache.Delete(ctx, key); err != nil {
		klog.Warningf("UpdateSettings: failed to invalidate cache for parish=%s: %v", parishID, err)
	}
}

func (s *settingsService) PromptTemplate(ctx context.Context, parishID string) (string, error) {
	key := promptCacheKey(parishID)
	if value, ok, err := s.cache.Get(ctx, key); err != nil {
		klog.Warningf("PromptTemplate: cache read failed for parish=%s: %v", parishID, err)
	} else if ok {
		return value, nil
	}

	tpl := prompt.DefaultTemplate
	settings, err := s.repo.Get(ctx, parishID)
	switch {
	case err == nil:
		tpl = settings.PromptTemplate
	case errors.Is(err, repository.ErrNotFound):
		klog.V(6).Infof("PromptTemplate: parish=%s has no custom template, using default", parishID)
	default:
		return "", err
	}

	// 只在缓存为空时回填，避免覆盖并发更新写入的新模板
	if _, err := s.cache.SetIfAbsent(ctx, key, tpl); err != nil {
		klog.Warningf("PromptTemplate: cache write failed for parish=%s: %v", parishID, err)
	}
	return tpl, nil
}

func defaultSettings(parishID string) *SettingsDTO {
	return &SettingsDTO{
		ParishID:       parishID,
		PromptTemplate: prompt.DefaultTemplate,
		IsDefault:      true,
		Placeholders:   prompt.Placeholders,
	}
}
