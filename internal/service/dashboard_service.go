package service

import (
	"fmt"
	"time"

	"github.com/mindcare/internal/db"
	"gorm.io/gorm"
)

// DashboardService 聚合平台层面的运营统计，供管理端仪表盘使用
type DashboardService struct {
	db *gorm.DB
}

// DashboardOverview 汇总全站统计数据
type DashboardOverview struct {
	TotalUsers          int64   `json:"totalUsers"`
	ActiveUsers         int64   `json:"activeUsers"`
	TotalMoodEntries    int64   `json:"totalMoodEntries"`
	TotalJournalEntries int64   `json:"totalJournalEntries"`
	TotalAppointments   int64   `json:"totalAppointments"`
	PendingAppointments int64   `json:"pendingAppointments"`
	AverageMoodScore    float64 `json:"averageMoodScore"`
	ResourceViews       int64   `json:"resourceViews"`
}

// NewDashboardService 构造 DashboardService
func NewDashboardService(gdb *gorm.DB) *DashboardService {
	return &DashboardService{db: gdb}
}

// Overview 汇总用户、打卡、日记、预约与资源浏览数据。
// 活跃用户指最近 30 天内登录过的账号。
func (s *DashboardService) Overview(now time.Time) (*DashboardOverview, error) {
	var overview DashboardOverview

	if err := s.db.Model(&db.User{}).Count(&overview.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	activeSince := now.AddDate(0, 0, -30)
	if err := s.db.Model(&db.User{}).
		Where("last_login_at > ?", activeSince).
		Count(&overview.ActiveUsers).Error; err != nil {
		return nil, fmt.Errorf("count active users: %w", err)
	}

	if err := s.db.Model(&db.MoodEntry{}).Count(&overview.TotalMoodEntries).Error; err != nil {
		return nil, fmt.Errorf("count mood entries: %w", err)
	}
	if err := s.db.Model(&db.JournalEntry{}).Count(&overview.TotalJournalEntries).Error; err != nil {
		return nil, fmt.Errorf("count journal entries: %w", err)
	}
	if err := s.db.Model(&db.Appointment{}).Count(&overview.TotalAppointments).Error; err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}
	if err := s.db.Model(&db.Appointment{}).
		Where("status = ?", "pending").
		Count(&overview.PendingAppointments).Error; err != nil {
		return nil, fmt.Errorf("count pending appointments: %w", err)
	}

	var averageScore struct {
		Value float64
	}
	if err := s.db.Model(&db.MoodEntry{}).
		Select("COALESCE(AVG(score), 0) AS value").
		Scan(&averageScore).Error; err != nil {
		return nil, fmt.Errorf("average mood score: %w", err)
	}
	overview.AverageMoodScore = round2(averageScore.Value)

	var views struct {
		Value int64
	}
	if err := s.db.Model(&db.Resource{}).
		Select("COALESCE(SUM(views), 0) AS value").
		Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("sum resource views: %w", err)
	}
	overview.ResourceViews = views.Value

	return &overview, nil
}
