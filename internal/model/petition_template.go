package model

import "time"

// PetitionTemplate 堂区可复用的祈祷意向上下文模板
type PetitionTemplate struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ParishID    string    `json:"parish_id" gorm:"size:36;index;not null"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"size:1000"`
	Context     string    `json:"context" gorm:"type:text"`
	IsSystem    bool      `json:"is_system" gorm:"default:false"` // 创建堂区时预置
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (PetitionTemplate) TableName() string {
	return "petition_templates"
}
