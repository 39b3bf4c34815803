package db

import "gorm.io/gorm"

// NewsletterSubscription 记录邮件订阅
type NewsletterSubscription struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex"`
	Name     string
	IsActive bool
}
