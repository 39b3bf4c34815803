package service

import (
	"fmt"

	"github.com/mindcare/internal/db"
	"gorm.io/gorm"
)

var (
	// FeedbackTypes 是反馈对象类型枚举
	FeedbackTypes = []string{"resource", "counselor", "platform"}
	// FeedbackCategories 是平台反馈的分类枚举
	FeedbackCategories = []string{"bug", "feature", "content", "usability"}
)

// FeedbackService 负责反馈写入与目标对象的聚合评分重算
type FeedbackService struct {
	db *gorm.DB
}

// FeedbackInput 定义提交反馈时可配置字段
type FeedbackInput struct {
	UserID   uint
	Type     string
	TargetID *uint
	Rating   int
	Comment  string
	Category string
}

// NewFeedbackService 构造 FeedbackService
func NewFeedbackService(gdb *gorm.DB) *FeedbackService {
	return &FeedbackService{db: gdb}
}

// Create 追加一条反馈，并在同一事务内重算目标对象的聚合评分。
// 目标不存在时反馈仍然写入成功，评分更新按尽力而为处理。
func (s *FeedbackService) Create(input FeedbackInput) (*db.Feedback, error) {
	if err := validateFeedbackInput(input); err != nil {
		return nil, err
	}

	feedback := db.Feedback{
		UserID:   input.UserID,
		Type:     input.Type,
		TargetID: input.TargetID,
		Rating:   input.Rating,
		Comment:  sanitizeText(input.Comment),
		Category: input.Category,
		Status:   "pending",
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&feedback).Error; err != nil {
			return err
		}

		if input.TargetID != nil && (input.Type == "resource" || input.Type == "counselor") {
			return recomputeTargetRating(tx, input.Type, *input.TargetID)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	return &feedback, nil
}

// Recompute 按反馈日志全量重算指定目标的评分，可重复执行且结果一致
func (s *FeedbackService) Recompute(feedbackType string, targetID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return recomputeTargetRating(tx, feedbackType, targetID)
	})
}

// recomputeTargetRating 扫描目标的全部反馈求均值，round(mean*10)/10。
// 每次写入都全量重算，避免增量均值漂移。
func recomputeTargetRating(tx *gorm.DB, feedbackType string, targetID uint) error {
	var ratings []int
	if err := tx.Model(&db.Feedback{}).
		Where("type = ? AND target_id = ?", feedbackType, targetID).
		Pluck("rating", &ratings).Error; err != nil {
		return err
	}

	if len(ratings) == 0 {
		return nil
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	average := round1(float64(sum) / float64(len(ratings)))

	switch feedbackType {
	case "resource":
		return tx.Model(&db.Resource{}).
			Where("id = ?", targetID).
			UpdateColumn("rating", average).Error
	case "counselor":
		return tx.Model(&db.Counselor{}).
			Where("id = ?", targetID).
			UpdateColumns(map[string]interface{}{
				"rating":  average,
				"reviews": len(ratings),
			}).Error
	default:
		return nil
	}
}

func validateFeedbackInput(input FeedbackInput) error {
	if input.Type == "" {
		return fmt.Errorf("%w: type 不能为空", ErrValidation)
	}
	if err := validateEnum("type", input.Type, FeedbackTypes); err != nil {
		return err
	}
	if err := validateEnum("category", input.Category, FeedbackCategories); err != nil {
		return err
	}
	if input.Rating < 1 || input.Rating > 5 {
		return fmt.Errorf("%w: rating 必须在 1 到 5 之间", ErrValidation)
	}
	if len([]rune(input.Comment)) > 1000 {
		return fmt.Errorf("%w: comment 不能超过 1000 字", ErrValidation)
	}
	return nil
}
