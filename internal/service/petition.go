package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/eventbus"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/repository"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/service/petitiongen"
	"k8s.io/klog/v2"
)

const generationHistoryLimit = 50

// CreatePetitionRequest 创建祈祷意向请求
type CreatePetitionRequest struct {
	Title         string `json:"title" binding:"required,min=1,max=255"`
	Date          string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Language      string `json:"language" binding:"omitempty,liturgical_language"`
	CommunityInfo string `json:"community_info"`
	TemplateID    *uint  `json:"template_id"`
}

// UpdatePetitionRequest 更新后会重新生成内容；Version 为 0 时不做并发检查
type UpdatePetitionRequest struct {
	Title         string `json:"title" binding:"required,min=1,max=255"`
	Date          string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Language      string `json:"language" binding:"omitempty,liturgical_language"`
	CommunityInfo string `json:"community_info"`
	TemplateID    *uint  `json:"template_id"`
	Version       int    `json:"version" binding:"min=0"`
}

// UpdateContentRequest 手工编辑生成内容
type UpdateContentRequest struct {
	Content string `json:"content"`
	Version int    `json:"version" binding:"min=0"`
}

// ContentGenerator 祈祷意向内容生成器
type ContentGenerator interface {
	Generate(ctx context.Context, in petitiongen.Input) (*petitiongen.Result, error)
}

type PetitionService interface {
	Create(ctx context.Context, parishID string, req CreatePetitionRequest) (*model.Petition, error)
	Get(ctx context.Context, parishID string, id uint) (*model.Petition, error)
	List(ctx context.Context, parishID string) ([]model.Petition, error)
	Update(ctx context.Context, parishID string, id uint, req UpdatePetitionRequest) (*model.Petition, error)
	UpdateContent(ctx context.Context, parishID string, id uint, req UpdateContentRequest) (*model.Petition, error)
	Regenerate(ctx context.Context, parishID string, id uint) (*model.Petition, error)
	Delete(ctx context.Context, parishID string, id uint) error
	ListGenerations(ctx context.Context, parishID string, id uint) ([]model.GenerationLog, error)
}

type petitionService struct {
	petitionRepo repository.PetitionRepository
	templateRepo repository.PetitionTemplateRepository
	logRepo      repository.GenerationLogRepository
	generator    ContentGenerator
	bus          *eventbus.PetitionEventBus
}

func NewPetitionService(
	petitionRepo repository.PetitionRepository,
	templateRepo repository.PetitionTemplateRepository,
	logRepo repository.GenerationLogRepository,
	generator ContentGenerator,
	bus *eventbus.PetitionEventBus,
) PetitionService {
	return &petitionService{
		petitionRepo: petitionRepo,
		templateRepo: templateRepo,
		logRepo:      logRepo,
		generator:    generator,
		bus:          bus,
	}
}

func normalizeLanguage(language string) (model.Language, error) {
	if language == "" {
		return model.LanguageEnglish, nil
	}
	lang := model.Language(language)
	if !lang.IsValid() {
		return "", ErrInvalidLanguage
	}
	return lang, nil
}

// checkTemplate 模板必须属于同一堂区
func (s *petitionService) checkTemplate(ctx context.Context, parishID string, templateID *uint) error {
	if templateID == nil {
		return nil
	}
	if _, err := s.templateRepo.Get(ctx, parishID, *templateID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to get template: %w", err)
	}
	return nil
}

func (s *petitionService) Create(ctx context.Context, parishID string, req CreatePetitionRequest) (*model.Petition, error) {
	klog.V(6).Infof("CreatePetition: parish=%s, title=%s", parishID, req.Title)

	lang, err := normalizeLanguage(req.Language)
	if err != nil {
		return nil, err
	}
	if err := s.checkTemplate(ctx, parishID, req.TemplateID); err != nil {
		return nil, err
	}

	petition := &model.Petition{
		ParishID:   parishID,
		Title:      req.Title,
		Date:       req.Date,
		Language:   lang,
		Details:    req.CommunityInfo,
		TemplateID: req.TemplateID,
	}

	result, err := s.generate(ctx, petition)
	if err != nil {
		klog.Errorf("CreatePetition: failed to generate content: %v", err)
		return nil, err
	}
	petition.GeneratedContent = result.Text
	petition.GenerationSource = result.Source

	if err := s.petitionRepo.Create(ctx, petition); err != nil {
		klog.Errorf("CreatePetition: failed to create petition: %v", err)
		return nil, fmt.Errorf("failed to create petition: %w", err)
	}

	s.publishGenerated(ctx, petition, result)
	klog.V(6).Infof("CreatePetition: id=%d, source=%s", petition.ID, petition.GenerationSource)
	return petition, nil
}

func (s *petitionService) Get(ctx context.Context, parishID string, id uint) (*model.Petition, error) {
	petition, err := s.petitionRepo.Get(ctx, parishID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPetitionNotFound
		}
		return nil, fmt.Errorf("failed to get petition: %w", err)
	}
	return petition, nil
}

func (s *petitionService) List(ctx context.Context, parishID string) ([]model.Petition, error) {
	petitions, err := s.petitionRepo.List(ctx, parishID)
	if err != nil {
		return nil, fmt.Errorf("failed to list petitions: %w", err)
	}
	return petitions, nil
}

// Update 更新字段并重新生成内容，生成内容整体替换
func (s *petitionService) Update(ctx context.Context, parishID string, id uint, req UpdatePetitionRequest) (*model.Petition, error) {
	klog.V(6).Infof("UpdatePetition: parish=%s, id=%d", parishID, id)

	lang, err := normalizeLanguage(req.Language)
	if err != nil {
		return nil, err
	}

	petition, err := s.Get(ctx, parishID, id)
	if err != nil {
		return nil, err
	}
	if req.Version > 0 && petition.Version != req.Version {
		return nil, ErrVersionConflict
	}
	if err := s.checkTemplate(ctx, parishID, req.TemplateID); err != nil {
		return nil, err
	}

	petition.Title = req.Title
	petition.Date = req.Date
	petition.Language = lang
	petition.Details = req.CommunityInfo
	petition.TemplateID = req.TemplateID

	result, err := s.generate(ctx, petition)
	if err != nil {
		klog.Errorf("UpdatePetition: failed to generate content: %v", err)
		return nil, err
	}
	petition.GeneratedContent = result.Text
	petition.GenerationSource = result.Source

	if err := s.save(ctx, petition, req.Version); err != nil {
		return nil, err
	}
	s.publishGenerated(ctx, petition, result)
	return petition, nil
}

func (s *petitionService) UpdateContent(ctx context.Context, parishID string, id uint, req UpdateContentRequest) (*model.Petition, error) {
	petition, err := s.Get(ctx, parishID, id)
	if err != nil {
		return nil, err
	}
	if req.Version > 0 && petition.Version != req.Version {
		return nil, ErrVersionConflict
	}

	petition.GeneratedContent = req.Content
	petition.GenerationSource = model.SourceManual
	if err := s.save(ctx, petition, req.Version); err != nil {
		return nil, err
	}
	return petition, nil
}

// Regenerate 使用当前字段重新生成，总是覆盖已有内容
func (s *petitionService) Regenerate(ctx context.Context, parishID string, id uint) (*model.Petition, error) {
	klog.V(6).Infof("RegeneratePetition: parish=%s, id=%d", parishID, id)

	petition, err := s.Get(ctx, parishID, id)
	if err != nil {
		return nil, err
	}

	result, err := s.generate(ctx, petition)
	if err != nil {
		klog.Errorf("RegeneratePetition: failed to generate content: %v", err)
		return nil, err
	}
	petition.GeneratedContent = result.Text
	petition.GenerationSource = result.Source

	if err := s.save(ctx, petition, 0); err != nil {
		return nil, err
	}
	s.publishGenerated(ctx, petition, result)
	return petition, nil
}

func (s *petitionService) Delete(ctx context.Context, parishID string, id uint) error {
	if err := s.petitionRepo.Delete(ctx, parishID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPetitionNotFound
		}
		klog.Errorf("DeletePetition: failed to delete petition: %v", err)
		return fmt.Errorf("failed to delete petition: %w", err)
	}
	if s.bus != nil {
		if err := s.bus.Publish(ctx, eventbus.PetitionEventDeleted, eventbus.PetitionEvent{
			Type:       eventbus.PetitionEventDeleted,
			ParishID:   parishID,
			PetitionID: id,
		}); err != nil {
			klog.Warningf("DeletePetition: event handlers failed: %v", err)
		}
	}
	return nil
}

func (s *petitionService) ListGenerations(ctx context.Context, parishID string, id uint) ([]model.GenerationLog, error) {
	if _, err := s.Get(ctx, parishID, id); err != nil {
		return nil, err
	}
	logs, err := s.logRepo.ListByPetition(ctx, parishID, id, generationHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	return logs, nil
}

func (s *petitionService) generate(ctx context.Context, petition *model.Petition) (*petitiongen.Result, error) {
	return s.generator.Generate(ctx, petitiongen.Input{
		ParishID:      petition.ParishID,
		Title:         petition.Title,
		Date:          petition.Date,
		Language:      string(petition.Language),
		CommunityInfo: petition.Details,
		TemplateID:    petition.TemplateID,
	})
}

func (s *petitionService) save(ctx context.Context, petition *model.Petition, expectedVersion int) error {
	if err := s.petitionRepo.Update(ctx, petition, expectedVersion); err != nil {
		switch {
		case errors.Is(err, repository.ErrVersionConflict):
			return ErrVersionConflict
		case errors.Is(err, repository.ErrNotFound):
			return ErrPetitionNotFound
		}
		klog.Errorf("UpdatePetition: failed to save petition id=%d: %v", petition.ID, err)
		return fmt.Errorf("failed to update petition: %w", err)
	}
	return nil
}

// publishGenerated 事件处理失败只记录日志，不影响已保存的结果
func (s *petitionService) publishGenerated(ctx context.Context, petition *model.Petition, result *petitiongen.Result) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, eventbus.PetitionEventGenerated, eventbus.PetitionEvent{
		Type:       eventbus.PetitionEventGenerated,
		ParishID:   petition.ParishID,
		PetitionID: petition.ID,
		Source:     result.Source,
		Model:      result.Model,
		Duration:   result.Duration,
		Err:        result.Err,
	}); err != nil {
		klog.Warningf("petition event handlers failed: petitionID=%d: %v", petition.ID, err)
	}
}
