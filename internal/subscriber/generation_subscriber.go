package subscriber

import (
	"context"
	"fmt"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/eventbus"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/pkg/metrics"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/utils"
	"k8s.io/klog/v2"
)

const maxErrorLength = 2000

// GenerationSubscriber 记录生成审计日志和指标，祈祷意向删除时清理其日志
type GenerationSubscriber struct {
	logRepo generationLogStore
}

type generationLogStore interface {
	Create(ctx context.Context, log *model.GenerationLog) error
	DeleteByPetition(ctx context.Context, parishID string, petitionID uint) (int64, error)
}

func NewGenerationSubscriber(logRepo generationLogStore) *GenerationSubscriber {
	return &GenerationSubscriber{logRepo: logRepo}
}

func (s *GenerationSubscriber) Register(bus *eventbus.PetitionEventBus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.PetitionEventGenerated, s.handleGenerated)
	bus.Subscribe(eventbus.PetitionEventDeleted, s.handleDeleted)
}

func (s *GenerationSubscriber) handleGenerated(ctx context.Context, event eventbus.PetitionEvent) error {
	if event.ParishID == "" {
		return fmt.Errorf("堂区ID为空")
	}

	metrics.PetitionGenerations.WithLabelValues(string(event.Source)).Inc()
	metrics.PetitionGenerationDuration.WithLabelValues(string(event.Source)).Observe(event.Duration.Seconds())

	entry := &model.GenerationLog{
		ParishID:   event.ParishID,
		PetitionID: event.PetitionID,
		Source:     event.Source,
		Model:      event.Model,
		DurationMS: event.Duration.Milliseconds(),
	}
	if event.Err != nil {
		entry.Error = utils.Truncate(event.Err.Error(), maxErrorLength)
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		klog.Errorf("生成事件处理失败: type=%s, petitionID=%d, error=%v", event.Type, event.PetitionID, err)
		return err
	}
	klog.V(6).Infof("生成事件处理成功: type=%s, petitionID=%d, source=%s", event.Type, event.PetitionID, event.Source)
	return nil
}

func (s *GenerationSubscriber) handleDeleted(ctx context.Context, event eventbus.PetitionEvent) error {
	if event.ParishID == "" {
		return fmt.Errorf("堂区ID为空")
	}
	removed, err := s.logRepo.DeleteByPetition(ctx, event.ParishID, event.PetitionID)
	if err != nil {
		klog.Errorf("清理生成记录失败: parish=%s, petitionID=%d, error=%v", event.ParishID, event.PetitionID, err)
		return err
	}
	klog.V(6).Infof("祈祷意向已删除: parish=%s, petitionID=%d, 清理生成记录 %d 条", event.ParishID, event.PetitionID, removed)
	return nil
}
