package service

import (
	"fmt"

	"github.com/mindcare/internal/db"
	"gorm.io/gorm"
	"slices"
)

// SearchScopes 限定跨集合搜索的范围
var SearchScopes = []string{"all", "resources", "counselors"}

// SearchService 负责资源与咨询师的跨集合文本搜索
type SearchService struct {
	db *gorm.DB
}

// SearchResult 是搜索命中的统一投影
type SearchResult struct {
	ID          uint     `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Rating      float64  `json:"rating"`
	Location    string   `json:"location,omitempty"`
}

// SearchOutcome 聚合一次搜索的结果
type SearchOutcome struct {
	Query        string
	Results      []SearchResult
	TotalResults int
}

// NewSearchService 构造 SearchService
func NewSearchService(gdb *gorm.DB) *SearchService {
	return &SearchService{db: gdb}
}

// Search 在已发布资源与在岗咨询师中做大小写不敏感的子串匹配。
// 排序只做二元相关性提升：标题命中的排在仅描述/标签命中的之前，
// 其余保持稳定顺序，不做打分排名。
func (s *SearchService) Search(query, scope string, limit int) (*SearchOutcome, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: q 不能为空", ErrValidation)
	}
	if len([]rune(query)) > 100 {
		return nil, fmt.Errorf("%w: q 不能超过 100 字", ErrValidation)
	}
	if scope == "" {
		scope = "all"
	}
	if err := validateEnum("type", scope, SearchScopes); err != nil {
		return nil, err
	}

	var results []SearchResult

	if scope == "all" || scope == "resources" {
		var resources []db.Resource
		if err := s.db.Where("is_published = ?", true).Find(&resources).Error; err != nil {
			return nil, fmt.Errorf("search resources: %w", err)
		}
		for _, r := range resources {
			if containsFold(r.Title, query) ||
				containsFold(r.Description, query) ||
				anyContainsFold(r.Tags, query) {
				results = append(results, SearchResult{
					ID:          r.ID,
					Type:        "resource",
					Title:       r.Title,
					Description: r.Description,
					Category:    r.Category,
					Tags:        r.Tags,
					Rating:      r.Rating,
				})
			}
		}
	}

	if scope == "all" || scope == "counselors" {
		var counselors []db.Counselor
		if err := s.db.Where("is_active = ?", true).Find(&counselors).Error; err != nil {
			return nil, fmt.Errorf("search counselors: %w", err)
		}
		for _, c := range counselors {
			if containsFold(c.Name, query) ||
				containsFold(c.Title, query) ||
				containsFold(c.Bio, query) ||
				anyContainsFold(c.Specialties, query) {
				results = append(results, SearchResult{
					ID:          c.ID,
					Type:        "counselor",
					Title:       c.Name,
					Description: c.Title,
					Specialties: c.Specialties,
					Rating:      c.Rating,
					Location:    c.City,
				})
			}
		}
	}

	total := len(results)

	slices.SortStableFunc(results, func(a, b SearchResult) int {
		return titleBoost(b, query) - titleBoost(a, query)
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return &SearchOutcome{Query: query, Results: results, TotalResults: total}, nil
}

func titleBoost(result SearchResult, query string) int {
	if containsFold(result.Title, query) {
		return 1
	}
	return 0
}
