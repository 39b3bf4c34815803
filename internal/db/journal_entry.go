package db

import "gorm.io/gorm"

// JournalEntry 定义了私密日记模型
// Mood 可选，与心情打卡使用同一组标签
type JournalEntry struct {
	gorm.Model
	UserID  uint `gorm:"index"`
	Title   string
	Content string
	Mood    string
	Tags    []string `gorm:"serializer:json"`
}
