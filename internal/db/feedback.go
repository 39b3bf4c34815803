package db

import "gorm.io/gorm"

// Feedback 记录用户对资源/咨询师/平台的评分反馈
// 只追加不修改，目标对象的聚合评分完全可由反馈日志重算
type Feedback struct {
	gorm.Model
	UserID   uint `gorm:"index"`
	Type     string
	TargetID *uint `gorm:"index"`
	Rating   int
	Comment  string
	Category string
	Status   string
}
