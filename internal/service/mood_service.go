package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/mindcare/internal/db"
	"gorm.io/gorm"
)

// MoodLabels 是心情打卡支持的五档标签
var MoodLabels = []string{"excellent", "good", "okay", "not-great", "struggling"}

const trendWindow = 30 * 24 * time.Hour

// MoodService 负责心情打卡的写入、查询与统计分析
type MoodService struct {
	db *gorm.DB
}

// MoodInput 定义创建打卡时可配置字段
type MoodInput struct {
	UserID  uint
	Mood    string
	Score   int
	Factors []string
	Notes   string
}

// MoodFilter 描述打卡列表的查询条件，日期区间为闭区间
type MoodFilter struct {
	UserID uint
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// MoodListResult 聚合分页后的打卡列表
type MoodListResult struct {
	Entries    []db.MoodEntry
	Pagination Pagination
}

// FactorStat 描述单个影响因素的出现次数与对应均分
type FactorStat struct {
	Count        int     `json:"count"`
	AverageScore float64 `json:"averageScore"`
}

// TrendPoint 是趋势序列中的单个数据点
type TrendPoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
	Mood  string `json:"mood"`
}

// MoodAnalytics 汇总单个用户的心情统计。
// 四项输出均独立由同一份打卡日志推导，相互无先后依赖。
type MoodAnalytics struct {
	TotalEntries     int                   `json:"totalEntries"`
	AverageScore     float64               `json:"averageScore"`
	MoodDistribution map[string]int        `json:"moodDistribution"`
	FactorAnalysis   map[string]FactorStat `json:"factorAnalysis"`
	Trend            []TrendPoint          `json:"trend"`
}

// NewMoodService 构造 MoodService
func NewMoodService(gdb *gorm.DB) *MoodService {
	return &MoodService{db: gdb}
}

// Create 写入一条打卡记录，创建后不可修改
func (s *MoodService) Create(input MoodInput) (*db.MoodEntry, error) {
	if err := validateMoodInput(input); err != nil {
		return nil, err
	}

	factors := make([]string, 0, len(input.Factors))
	for _, factor := range input.Factors {
		trimmed := strings.TrimSpace(factor)
		if trimmed != "" {
			factors = append(factors, trimmed)
		}
	}

	entry := db.MoodEntry{
		UserID:  input.UserID,
		Mood:    input.Mood,
		Score:   input.Score,
		Factors: factors,
		Notes:   sanitizeText(input.Notes),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create mood entry: %w", err)
	}
	return &entry, nil
}

// List 返回指定用户的打卡记录，按时间倒序，支持闭区间日期过滤。
// 分页严格在过滤之后应用，Total 与过滤集一致。
func (s *MoodService) List(filter MoodFilter) (*MoodListResult, error) {
	query := s.db.Model(&db.MoodEntry{}).Where("user_id = ?", filter.UserID)

	if filter.From != nil {
		query = query.Where("created_at >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count mood entries: %w", err)
	}

	var entries []db.MoodEntry
	if err := query.Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}

	return &MoodListResult{
		Entries:    entries,
		Pagination: NewPagination(int(total), filter.Limit, filter.Offset),
	}, nil
}

// ListAll 返回用户的全部打卡记录，按时间倒序（数据导出用）
func (s *MoodService) ListAll(userID uint) ([]db.MoodEntry, error) {
	var entries []db.MoodEntry
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	return entries, nil
}

// Analytics 基于用户的全部打卡日志计算统计结果。
// 没有任何记录时返回 nil 而非错误，调用方据此回复 "no data"。
func (s *MoodService) Analytics(userID uint, now time.Time) (*MoodAnalytics, error) {
	var entries []db.MoodEntry
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("load mood entries: %w", err)
	}

	if len(entries) == 0 {
		return nil, nil
	}

	return buildMoodAnalytics(entries, now), nil
}

// buildMoodAnalytics 在按时间升序排列的日志上计算四项统计
func buildMoodAnalytics(entries []db.MoodEntry, now time.Time) *MoodAnalytics {
	analytics := &MoodAnalytics{
		TotalEntries:     len(entries),
		MoodDistribution: make(map[string]int),
		FactorAnalysis:   make(map[string]FactorStat),
	}

	type factorAcc struct {
		count      int
		totalScore int
	}
	factorTotals := make(map[string]*factorAcc)

	scoreSum := 0
	windowStart := now.Add(-trendWindow)

	for _, entry := range entries {
		scoreSum += entry.Score
		analytics.MoodDistribution[entry.Mood]++

		// 一条记录的分值计入其全部因素（多重归属，而非互斥划分）
		for _, factor := range entry.Factors {
			acc := factorTotals[factor]
			if acc == nil {
				acc = &factorAcc{}
				factorTotals[factor] = acc
			}
			acc.count++
			acc.totalScore += entry.Score
		}

		if !entry.CreatedAt.Before(windowStart) {
			analytics.Trend = append(analytics.Trend, TrendPoint{
				Date:  entry.CreatedAt.Format("2006-01-02"),
				Score: entry.Score,
				Mood:  entry.Mood,
			})
		}
	}

	analytics.AverageScore = round2(float64(scoreSum) / float64(len(entries)))

	for factor, acc := range factorTotals {
		analytics.FactorAnalysis[factor] = FactorStat{
			Count:        acc.count,
			AverageScore: float64(acc.totalScore) / float64(acc.count),
		}
	}

	return analytics
}

func validateMoodInput(input MoodInput) error {
	if err := validateEnum("mood", input.Mood, MoodLabels); err != nil {
		return err
	}
	if input.Mood == "" {
		return fmt.Errorf("%w: mood 不能为空", ErrValidation)
	}
	if input.Score < 1 || input.Score > 5 {
		return fmt.Errorf("%w: score 必须在 1 到 5 之间", ErrValidation)
	}
	if len([]rune(input.Notes)) > 1000 {
		return fmt.Errorf("%w: notes 不能超过 1000 字", ErrValidation)
	}
	return nil
}
