package db

import "gorm.io/gorm"

// ChatSession 定义了支持聊天会话
// SessionID 是对外暴露的不透明标识，内部仍用自增主键关联消息
type ChatSession struct {
	gorm.Model
	SessionID string `gorm:"uniqueIndex"`
	UserID    uint   `gorm:"index"`
	Status    string
}

// ChatMessage 记录会话中的单条消息，Sender 取值 user/bot
type ChatMessage struct {
	gorm.Model
	ChatSessionID uint `gorm:"index"`
	Sender        string
	Body          string
}
