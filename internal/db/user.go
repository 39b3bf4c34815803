package db

import (
	"time"

	"gorm.io/gorm"
)

// UserPreferences 记录用户的通知与数据偏好，整体以 JSON 形式落库
type UserPreferences struct {
	Notifications  bool `json:"notifications"`
	Newsletter     bool `json:"newsletter"`
	DataCollection bool `json:"dataCollection"`
}

// User 定义了平台用户模型
// Role 取值 student/counselor/admin，默认 student
// Password 存 bcrypt 哈希，序列化时永不外露
type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null"`
	Password    string `gorm:"not null"`
	Name        string
	Phone       string
	Institution string
	Role        string
	Bio         string
	AvatarURL   string
	Preferences UserPreferences `gorm:"serializer:json"`
	IsActive    bool
	LastLoginAt *time.Time
}
