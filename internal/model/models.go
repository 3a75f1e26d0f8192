package model

import (
	"time"
)

// Language 祈祷意向的礼仪语言
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageSpanish Language = "spanish"
	LanguageFrench  Language = "french"
	LanguageLatin   Language = "latin"
)

// Languages 支持的语言列表
var Languages = []Language{LanguageEnglish, LanguageSpanish, LanguageFrench, LanguageLatin}

// IsValid 判断语言是否受支持
func (l Language) IsValid() bool {
	for _, lang := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// GenerationSource 生成内容的来源
type GenerationSource string

const (
	SourceGenerated GenerationSource = "generated" // 由模型生成
	SourceFallback  GenerationSource = "fallback"  // 模型不可用时的固定模板
	SourceManual    GenerationSource = "manual"    // 用户手工编辑
)

// Parish 堂区（租户）
type Parish struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Petition struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	ParishID         string           `json:"parish_id" gorm:"size:36;index;not null"`
	Title            string           `json:"title" gorm:"size:255;not null"`
	Date             string           `json:"date" gorm:"size:10;index"` // YYYY-MM-DD，仅用于展示
	Language         Language         `json:"language" gorm:"size:20;default:english"`
	Details          string           `json:"details" gorm:"type:text"` // community info
	TemplateID       *uint            `json:"template_id" gorm:"index"`
	GeneratedContent string           `json:"generated_content" gorm:"type:text"`
	GenerationSource GenerationSource `json:"generation_source" gorm:"size:20"`
	Version          int              `json:"version" gorm:"not null;default:1"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
