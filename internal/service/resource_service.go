package service

import (
	"errors"
	"fmt"

	"github.com/mindcare/internal/db"
	"gorm.io/gorm"
	"slices"
)

var (
	// ErrResourceNotFound 在资源不存在或未发布时返回
	ErrResourceNotFound = errors.New("resource not found")

	// ResourceCategories 是资源分类枚举
	ResourceCategories = []string{"anxiety", "depression", "stress", "wellness", "academic"}
	// ResourceTypes 是资源形态枚举
	ResourceTypes = []string{"article", "video", "guide", "interactive"}
	// ResourceDifficulties 是资源难度枚举
	ResourceDifficulties = []string{"beginner", "intermediate", "advanced"}
)

// ResourceService 负责资源库的筛选列表与详情读取
type ResourceService struct {
	db *gorm.DB
}

// ResourceFilter 描述资源列表的查询条件，空字段表示无约束
type ResourceFilter struct {
	Category   string
	Type       string
	Difficulty string
	Search     string
	Limit      int
	Offset     int
}

// ResourceListResult 聚合分页后的资源列表
type ResourceListResult struct {
	Resources  []db.Resource
	Pagination Pagination
}

// NewResourceService 构造 ResourceService
func NewResourceService(gdb *gorm.DB) *ResourceService {
	return &ResourceService{db: gdb}
}

// List 返回已发布资源的过滤结果，评分降序、同分按发布日期降序。
// 标签列存 JSON 数组，文本搜索在内存中做谓词过滤；
// 分页严格在过滤与排序之后应用。
func (s *ResourceService) List(filter ResourceFilter) (*ResourceListResult, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}

	var resources []db.Resource
	if err := s.db.Where("is_published = ?", true).Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("load resources: %w", err)
	}

	filtered := make([]db.Resource, 0, len(resources))
	for _, r := range resources {
		if matchesResource(r, filter) {
			filtered = append(filtered, r)
		}
	}

	slices.SortFunc(filtered, func(a, b db.Resource) int {
		if a.Rating != b.Rating {
			if b.Rating > a.Rating {
				return 1
			}
			return -1
		}
		return b.PublishDate.Compare(a.PublishDate)
	})

	page, meta := paginate(filtered, filter.Limit, filter.Offset)
	return &ResourceListResult{Resources: page, Pagination: meta}, nil
}

// Get 返回单个已发布资源，未发布视同不存在
func (s *ResourceService) Get(id uint) (*db.Resource, error) {
	var resource db.Resource
	if err := s.db.Where("id = ? AND is_published = ?", id, true).
		First(&resource).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("get resource: %w", err)
	}
	return &resource, nil
}

// IncrementViews 将资源浏览数加一，在数据库侧原子完成
func (s *ResourceService) IncrementViews(id uint) error {
	if err := s.db.Model(&db.Resource{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return fmt.Errorf("increment resource views: %w", err)
	}
	return nil
}

func matchesResource(r db.Resource, filter ResourceFilter) bool {
	if filter.Category != "" && r.Category != filter.Category {
		return false
	}
	if filter.Type != "" && r.Type != filter.Type {
		return false
	}
	if filter.Difficulty != "" && r.Difficulty != filter.Difficulty {
		return false
	}
	if filter.Search != "" {
		if !containsFold(r.Title, filter.Search) &&
			!containsFold(r.Description, filter.Search) &&
			!anyContainsFold(r.Tags, filter.Search) {
			return false
		}
	}
	return true
}

func (f ResourceFilter) validate() error {
	if err := validateEnum("category", f.Category, ResourceCategories); err != nil {
		return err
	}
	if err := validateEnum("type", f.Type, ResourceTypes); err != nil {
		return err
	}
	if err := validateEnum("difficulty", f.Difficulty, ResourceDifficulties); err != nil {
		return err
	}
	if len([]rune(f.Search)) > 100 {
		return fmt.Errorf("%w: search 不能超过 100 字", ErrValidation)
	}
	return nil
}
