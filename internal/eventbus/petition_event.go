package eventbus

import (
	"time"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
)

type PetitionEventType string

const (
	PetitionEventGenerated PetitionEventType = "PetitionGenerated"
	PetitionEventDeleted   PetitionEventType = "PetitionDeleted"
)

type PetitionEvent struct {
	Type       PetitionEventType
	ParishID   string
	PetitionID uint
	Source     model.GenerationSource
	Model      string
	Duration   time.Duration
	Err        error // 回退原因，仅 fallback 时有值
}

type PetitionEventHandler = Handler[PetitionEvent]
type PetitionEventBus = Bus[PetitionEventType, PetitionEvent]

func NewPetitionEventBus() *PetitionEventBus {
	return NewBus[PetitionEventType, PetitionEvent]()
}
