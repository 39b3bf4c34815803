package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mindcare/internal/db"
	"gorm.io/gorm"
	"slices"
)

var (
	// ErrSessionTypeUnavailable 在咨询师不提供所选会谈形式时返回
	ErrSessionTypeUnavailable = errors.New("counselor does not offer this session type")

	// AppointmentStatuses 是预约状态枚举，流转由咨询师侧流程负责
	AppointmentStatuses = []string{"pending", "confirmed", "completed", "cancelled"}
	// UrgencyLevels 是预约紧急程度枚举
	UrgencyLevels = []string{"low", "medium", "high", "emergency"}

	preferredTimePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// AppointmentService 负责预约申请的创建与查询
type AppointmentService struct {
	db *gorm.DB
}

// AppointmentInput 定义创建预约时可配置字段
type AppointmentInput struct {
	UserID        uint
	CounselorID   uint
	SessionType   string
	PreferredDate time.Time
	PreferredTime string
	Reason        string
	Urgency       string
}

// AppointmentFilter 描述预约列表的查询条件
type AppointmentFilter struct {
	UserID uint
	Status string
	Limit  int
	Offset int
}

// AppointmentListResult 聚合分页后的预约列表，咨询师信息已预加载
type AppointmentListResult struct {
	Appointments []db.Appointment
	Pagination   Pagination
}

// NewAppointmentService 构造 AppointmentService
func NewAppointmentService(gdb *gorm.DB) *AppointmentService {
	return &AppointmentService{db: gdb}
}

// Create 校验咨询师在岗且提供所选会谈形式后写入预约，初始状态 pending
func (s *AppointmentService) Create(input AppointmentInput) (*db.Appointment, error) {
	if err := validateAppointmentInput(input); err != nil {
		return nil, err
	}

	var counselor db.Counselor
	if err := s.db.Where("id = ? AND is_active = ?", input.CounselorID, true).
		First(&counselor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCounselorNotFound
		}
		return nil, fmt.Errorf("find counselor: %w", err)
	}

	if !slices.Contains(counselor.SessionTypes, input.SessionType) {
		return nil, ErrSessionTypeUnavailable
	}

	urgency := input.Urgency
	if urgency == "" {
		urgency = "medium"
	}

	appointment := db.Appointment{
		UserID:        input.UserID,
		CounselorID:   input.CounselorID,
		SessionType:   input.SessionType,
		PreferredDate: input.PreferredDate,
		PreferredTime: input.PreferredTime,
		Reason:        sanitizeText(input.Reason),
		Urgency:       urgency,
		Status:        "pending",
	}

	if err := s.db.Create(&appointment).Error; err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	appointment.Counselor = counselor
	return &appointment, nil
}

// List 返回用户的预约申请，按创建时间倒序，可按状态过滤
func (s *AppointmentService) List(filter AppointmentFilter) (*AppointmentListResult, error) {
	if err := validateEnum("status", filter.Status, AppointmentStatuses); err != nil {
		return nil, err
	}

	query := s.db.Model(&db.Appointment{}).Where("user_id = ?", filter.UserID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}

	var appointments []db.Appointment
	if err := query.Preload("Counselor").
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return &AppointmentListResult{
		Appointments: appointments,
		Pagination:   NewPagination(int(total), filter.Limit, filter.Offset),
	}, nil
}

// ListAll 返回用户的全部预约（数据导出用）
func (s *AppointmentService) ListAll(userID uint) ([]db.Appointment, error) {
	var appointments []db.Appointment
	if err := s.db.Preload("Counselor").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}

func validateAppointmentInput(input AppointmentInput) error {
	if input.CounselorID == 0 {
		return fmt.Errorf("%w: counselorId 不能为空", ErrValidation)
	}
	if input.SessionType == "" {
		return fmt.Errorf("%w: sessionType 不能为空", ErrValidation)
	}
	if err := validateEnum("sessionType", input.SessionType, SessionTypes); err != nil {
		return err
	}
	if err := validateEnum("urgency", input.Urgency, UrgencyLevels); err != nil {
		return err
	}
	if input.PreferredDate.IsZero() {
		return fmt.Errorf("%w: preferredDate 不能为空", ErrValidation)
	}
	if !preferredTimePattern.MatchString(input.PreferredTime) {
		return fmt.Errorf("%w: preferredTime 应为 HH:MM 格式", ErrValidation)
	}

	reason := strings.TrimSpace(input.Reason)
	length := len([]rune(reason))
	if length < 10 || length > 500 {
		return fmt.Errorf("%w: reason 长度应在 10 到 500 之间", ErrValidation)
	}
	return nil
}
