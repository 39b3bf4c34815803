package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/mindcare/internal/db"
	"gorm.io/gorm"
	"slices"
)

var (
	// ErrCounselorNotFound 在咨询师不存在或已停用时返回
	ErrCounselorNotFound = errors.New("counselor not found")

	// CounselorSpecialties 是专长方向枚举
	CounselorSpecialties = []string{"anxiety", "depression", "stress", "academic", "career"}
	// SessionTypes 是会谈形式枚举
	SessionTypes = []string{"individual", "group", "online"}
	// AvailabilityWindows 是可预约窗口枚举
	AvailabilityWindows = []string{"today", "week", "month"}
)

// CounselorService 负责咨询师目录的筛选列表与详情读取
type CounselorService struct {
	db *gorm.DB
}

// CounselorFilter 描述咨询师列表的查询条件，空字段表示无约束
type CounselorFilter struct {
	Specialty    string
	Location     string
	Availability string
	SessionType  string
	Limit        int
	Offset       int
}

// CounselorListResult 聚合分页后的咨询师列表
type CounselorListResult struct {
	Counselors []db.Counselor
	Pagination Pagination
}

// NewCounselorService 构造 CounselorService
func NewCounselorService(gdb *gorm.DB) *CounselorService {
	return &CounselorService{db: gdb}
}

// List 返回在岗咨询师的过滤结果，评分降序、同分按从业年限降序。
// 可预约窗口以 now 为基准：today 要求 NextAvailable 与当天同日，
// week/month 要求 NextAvailable 不晚于 now+7 天 / now+30 天。
func (s *CounselorService) List(filter CounselorFilter, now time.Time) (*CounselorListResult, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}

	var counselors []db.Counselor
	if err := s.db.Where("is_active = ?", true).Find(&counselors).Error; err != nil {
		return nil, fmt.Errorf("load counselors: %w", err)
	}

	filtered := make([]db.Counselor, 0, len(counselors))
	for _, c := range counselors {
		if matchesCounselor(c, filter, now) {
			filtered = append(filtered, c)
		}
	}

	slices.SortFunc(filtered, func(a, b db.Counselor) int {
		if a.Rating != b.Rating {
			if b.Rating > a.Rating {
				return 1
			}
			return -1
		}
		return b.Experience - a.Experience
	})

	page, meta := paginate(filtered, filter.Limit, filter.Offset)
	return &CounselorListResult{Counselors: page, Pagination: meta}, nil
}

// Get 返回单个在岗咨询师，停用视同不存在
func (s *CounselorService) Get(id uint) (*db.Counselor, error) {
	var counselor db.Counselor
	if err := s.db.Where("id = ? AND is_active = ?", id, true).
		First(&counselor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCounselorNotFound
		}
		return nil, fmt.Errorf("get counselor: %w", err)
	}
	return &counselor, nil
}

func matchesCounselor(c db.Counselor, filter CounselorFilter, now time.Time) bool {
	if filter.Specialty != "" && !slices.Contains(c.Specialties, filter.Specialty) {
		return false
	}
	if filter.SessionType != "" && !slices.Contains(c.SessionTypes, filter.SessionType) {
		return false
	}
	if filter.Location != "" {
		if !containsFold(c.City, filter.Location) && !containsFold(c.State, filter.Location) {
			return false
		}
	}
	if filter.Availability != "" && !withinAvailability(c.NextAvailable, filter.Availability, now) {
		return false
	}
	return true
}

func withinAvailability(nextAvailable time.Time, window string, now time.Time) bool {
	switch window {
	case "today":
		y1, m1, d1 := nextAvailable.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case "week":
		return !nextAvailable.After(now.AddDate(0, 0, 7))
	case "month":
		return !nextAvailable.After(now.AddDate(0, 0, 30))
	default:
		return true
	}
}

func (f CounselorFilter) validate() error {
	if err := validateEnum("specialty", f.Specialty, CounselorSpecialties); err != nil {
		return err
	}
	if err := validateEnum("sessionType", f.SessionType, SessionTypes); err != nil {
		return err
	}
	if err := validateEnum("availability", f.Availability, AvailabilityWindows); err != nil {
		return err
	}
	if f.Location != "" {
		length := len([]rune(f.Location))
		if length < 2 || length > 50 {
			return fmt.Errorf("%w: location 长度应在 2 到 50 之间", ErrValidation)
		}
	}
	return nil
}
