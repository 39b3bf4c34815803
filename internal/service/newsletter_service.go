package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/mindcare/internal/db"
	"gorm.io/gorm"
)

// ErrAlreadySubscribed 在邮箱已订阅时返回
var ErrAlreadySubscribed = errors.New("email already subscribed")

// NewsletterService 负责邮件订阅
type NewsletterService struct {
	db *gorm.DB
}

// NewNewsletterService 构造 NewsletterService
func NewNewsletterService(gdb *gorm.DB) *NewsletterService {
	return &NewsletterService{db: gdb}
}

// Subscribe 创建一条订阅记录，重复邮箱视为冲突
func (s *NewsletterService) Subscribe(email, name string) (*db.NewsletterSubscription, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, fmt.Errorf("%w: email 格式不正确", ErrValidation)
	}
	if name != "" {
		length := len([]rune(strings.TrimSpace(name)))
		if length < 2 || length > 100 {
			return nil, fmt.Errorf("%w: name 长度应在 2 到 100 之间", ErrValidation)
		}
	}

	var existing db.NewsletterSubscription
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadySubscribed
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check subscription: %w", err)
	}

	subscription := db.NewsletterSubscription{
		Email:    email,
		Name:     sanitizeText(name),
		IsActive: true,
	}

	if err := s.db.Create(&subscription).Error; err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return &subscription, nil
}
