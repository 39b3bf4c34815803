package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/mindcare/internal/db"
	"gorm.io/gorm"
)

// JournalService 负责私密日记的写入与查询
type JournalService struct {
	db *gorm.DB
}

// JournalInput 定义创建日记时可配置字段
type JournalInput struct {
	UserID  uint
	Title   string
	Content string
	Mood    string
	Tags    []string
}

// JournalFilter 描述日记列表的查询条件
type JournalFilter struct {
	UserID uint
	Search string
	Limit  int
	Offset int
}

// JournalListResult 聚合分页后的日记列表
type JournalListResult struct {
	Entries    []db.JournalEntry
	Pagination Pagination
}

// NewJournalService 构造 JournalService
func NewJournalService(gdb *gorm.DB) *JournalService {
	return &JournalService{db: gdb}
}

// Create 写入一篇日记，标题缺省时按日期生成
func (s *JournalService) Create(input JournalInput) (*db.JournalEntry, error) {
	if err := validateJournalInput(input); err != nil {
		return nil, err
	}

	title := sanitizeText(input.Title)
	if title == "" {
		title = fmt.Sprintf("日记 - %s", time.Now().Format("2006-01-02"))
	}

	tags := make([]string, 0, len(input.Tags))
	for _, tag := range input.Tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	entry := db.JournalEntry{
		UserID:  input.UserID,
		Title:   title,
		Content: sanitizeText(input.Content),
		Mood:    input.Mood,
		Tags:    tags,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create journal entry: %w", err)
	}
	return &entry, nil
}

// List 返回用户的日记，按创建时间倒序；
// 搜索对标题/正文/标签做大小写不敏感的子串匹配，任一字段命中即保留。
func (s *JournalService) List(filter JournalFilter) (*JournalListResult, error) {
	if len([]rune(filter.Search)) > 100 {
		return nil, fmt.Errorf("%w: search 不能超过 100 字", ErrValidation)
	}

	var entries []db.JournalEntry
	if err := s.db.Where("user_id = ?", filter.UserID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}

	if filter.Search != "" {
		matched := make([]db.JournalEntry, 0, len(entries))
		for _, entry := range entries {
			if containsFold(entry.Title, filter.Search) ||
				containsFold(entry.Content, filter.Search) ||
				anyContainsFold(entry.Tags, filter.Search) {
				matched = append(matched, entry)
			}
		}
		entries = matched
	}

	page, meta := paginate(entries, filter.Limit, filter.Offset)
	return &JournalListResult{Entries: page, Pagination: meta}, nil
}

// ListAll 返回用户的全部日记（数据导出用）
func (s *JournalService) ListAll(userID uint) ([]db.JournalEntry, error) {
	var entries []db.JournalEntry
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return entries, nil
}

func validateJournalInput(input JournalInput) error {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return fmt.Errorf("%w: content 不能为空", ErrValidation)
	}
	if len([]rune(content)) > 10000 {
		return fmt.Errorf("%w: content 不能超过 10000 字", ErrValidation)
	}
	if len([]rune(input.Title)) > 200 {
		return fmt.Errorf("%w: title 不能超过 200 字", ErrValidation)
	}
	return validateEnum("mood", input.Mood, MoodLabels)
}
