package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mindcare/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSearchServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:search-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Resource{}, &db.Counselor{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func TestSearchService_TitleMatchesRankFirst(t *testing.T) {
	gdb := setupSearchServiceTestDB(t)
	svc := NewSearchService(gdb)

	resources := []db.Resource{
		{Title: "睡前准备", Description: "包含 anxiety 应对技巧", IsPublished: true},
		{Title: "Anxiety 自助手册", Description: "完整指南", IsPublished: true},
	}
	for i := range resources {
		if err := gdb.Create(&resources[i]).Error; err != nil {
			t.Fatalf("seed resource: %v", err)
		}
	}

	outcome, err := svc.Search("anxiety", "resources", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if outcome.TotalResults != 2 {
		t.Fatalf("expected 2 results, got %d", outcome.TotalResults)
	}
	// 标题命中排在仅描述命中之前
	if outcome.Results[0].Title != "Anxiety 自助手册" {
		t.Fatalf("expected title match first, got %s", outcome.Results[0].Title)
	}
}

func TestSearchService_TotalCountsBeforeLimit(t *testing.T) {
	gdb := setupSearchServiceTestDB(t)
	svc := NewSearchService(gdb)

	for i := 0; i < 5; i++ {
		resource := db.Resource{Title: fmt.Sprintf("压力管理 %d", i), IsPublished: true}
		if err := gdb.Create(&resource).Error; err != nil {
			t.Fatalf("seed resource: %v", err)
		}
	}

	outcome, err := svc.Search("压力", "all", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if outcome.TotalResults != 5 {
		t.Fatalf("totalResults should count all matches, got %d", outcome.TotalResults)
	}
	if len(outcome.Results) != 2 {
		t.Fatalf("expected 2 results after limit, got %d", len(outcome.Results))
	}
}

func TestSearchService_ScopeCounselorsOnly(t *testing.T) {
	gdb := setupSearchServiceTestDB(t)
	svc := NewSearchService(gdb)

	resource := db.Resource{Title: "焦虑指南", IsPublished: true}
	if err := gdb.Create(&resource).Error; err != nil {
		t.Fatalf("seed resource: %v", err)
	}
	counselor := db.Counselor{Name: "赵敏", Specialties: []string{"焦虑"}, IsActive: true}
	if err := gdb.Create(&counselor).Error; err != nil {
		t.Fatalf("seed counselor: %v", err)
	}

	outcome, err := svc.Search("焦虑", "counselors", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if outcome.TotalResults != 1 || outcome.Results[0].Type != "counselor" {
		t.Fatalf("expected counselor-only results, got %+v", outcome.Results)
	}
}

func TestSearchService_Validation(t *testing.T) {
	gdb := setupSearchServiceTestDB(t)
	svc := NewSearchService(gdb)

	if _, err := svc.Search("", "all", 10); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty query, got %v", err)
	}
	if _, err := svc.Search("焦虑", "everything", 10); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for bad scope, got %v", err)
	}
}
