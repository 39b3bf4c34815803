package db

import "gorm.io/gorm"

// MoodEntry 记录一次心情打卡
// Mood 为五档标签，Score 为对应的 1-5 分值
// Factors 是影响因素标签集合（如 睡眠/学业），以 JSON 数组落库
// CreatedAt 即打卡时间，创建后不再修改
type MoodEntry struct {
	gorm.Model
	UserID  uint `gorm:"index"`
	Mood    string
	Score   int
	Factors []string `gorm:"serializer:json"`
	Notes   string
}
