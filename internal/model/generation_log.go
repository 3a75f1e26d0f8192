package model

import "time"

// GenerationLog 每次生成祈祷意向内容的审计记录
type GenerationLog struct {
	ID         uint             `json:"id" gorm:"primaryKey"`
	ParishID   string           `json:"parish_id" gorm:"size:36;index;not null"`
	PetitionID uint             `json:"petition_id" gorm:"index"`
	Source     GenerationSource `json:"source" gorm:"size:20;index"`
	Model      string           `json:"model" gorm:"size:255"`
	DurationMS int64            `json:"duration_ms"`
	Error      string           `json:"error" gorm:"size:2000"`
	CreatedAt  time.Time        `json:"created_at"`
}

// TableName 指定表名
func (GenerationLog) TableName() string {
	return "generation_logs"
}
