package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/mindcare/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrEmailTaken 在邮箱已被注册时返回
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials 在邮箱或密码不匹配时返回
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound 在用户不存在或已停用时返回
	ErrUserNotFound = errors.New("user not found")
)

// UserService 负责注册、登录与个人资料维护
type UserService struct {
	db *gorm.DB
}

// RegisterInput 定义注册时可配置字段
type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	Phone       string
	Institution string
}

// ProfileUpdateInput 定义资料更新字段，nil 表示不修改
type ProfileUpdateInput struct {
	Name        *string
	Phone       *string
	Institution *string
	Bio         *string
	Preferences *db.UserPreferences
}

// NewUserService 构造 UserService
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// Register 创建一个学生账号，密码以 bcrypt 哈希落库
func (s *UserService) Register(input RegisterInput) (*db.User, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing db.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := db.User{
		Email:       email,
		Password:    string(hashed),
		Name:        sanitizeText(input.Name),
		Phone:       strings.TrimSpace(input.Phone),
		Institution: sanitizeText(input.Institution),
		Role:        "student",
		IsActive:    true,
		Preferences: db.UserPreferences{
			Notifications:  true,
			Newsletter:     true,
			DataCollection: true,
		},
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Login 校验凭据并更新最近登录时间
func (s *UserService) Login(email, password string) (*db.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user db.User
	if err := s.db.Where("email = ? AND is_active = ?", email, true).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.db.Model(&user).UpdateColumn("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}

	return &user, nil
}

// Get 返回在用账号
func (s *UserService) Get(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.Where("id = ? AND is_active = ?", id, true).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// UpdateProfile 应用资料变更，只允许白名单字段
func (s *UserService) UpdateProfile(id uint, input ProfileUpdateInput) (*db.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := sanitizeText(*input.Name)
		if len([]rune(name)) < 2 || len([]rune(name)) > 100 {
			return nil, fmt.Errorf("%w: name 长度应在 2 到 100 之间", ErrValidation)
		}
		user.Name = name
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Institution != nil {
		if len([]rune(*input.Institution)) > 200 {
			return nil, fmt.Errorf("%w: institution 不能超过 200 字", ErrValidation)
		}
		user.Institution = sanitizeText(*input.Institution)
	}
	if input.Bio != nil {
		if len([]rune(*input.Bio)) > 500 {
			return nil, fmt.Errorf("%w: bio 不能超过 500 字", ErrValidation)
		}
		user.Bio = sanitizeText(*input.Bio)
	}
	if input.Preferences != nil {
		user.Preferences = *input.Preferences
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// SetAvatar 更新用户头像地址
func (s *UserService) SetAvatar(id uint, avatarURL string) error {
	if err := s.db.Model(&db.User{}).
		Where("id = ?", id).
		UpdateColumn("avatar_url", avatarURL).Error; err != nil {
		return fmt.Errorf("set avatar: %w", err)
	}
	return nil
}

func validateRegisterInput(input RegisterInput) error {
	email := strings.TrimSpace(input.Email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return fmt.Errorf("%w: email 格式不正确", ErrValidation)
	}

	if err := validatePassword(input.Password); err != nil {
		return err
	}

	name := strings.TrimSpace(input.Name)
	if len([]rune(name)) < 2 {
		return fmt.Errorf("%w: name 至少需要 2 个字符", ErrValidation)
	}
	return nil
}

// validatePassword 要求至少 8 位，且同时包含大写、小写字母与数字
func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password 至少需要 8 位", ErrValidation)
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("%w: password 需同时包含大小写字母和数字", ErrValidation)
	}
	return nil
}
