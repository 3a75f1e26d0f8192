package model

import "time"

// ParishSettings 堂区设置，目前只保存生成祈祷意向用的提示词模板
type ParishSettings struct {
	ParishID       string    `json:"parish_id" gorm:"primaryKey;size:36"`
	PromptTemplate string    `json:"prompt_template" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName 指定表名
func (ParishSettings) TableName() string {
	return "parish_settings"
}
