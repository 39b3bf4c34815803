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

func setupCounselorServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:counselor-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Counselor{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func TestCounselorService_ListSortAndSpecialtyFilter(t *testing.T) {
	gdb := setupCounselorServiceTestDB(t)
	svc := NewCounselorService(gdb)

	now := time.Now()
	counselors := []db.Counselor{
		{Name: "王芳", Specialties: []string{"anxiety"}, Rating: 4.5, Experience: 10, NextAvailable: now, IsActive: true},
		{Name: "李明", Specialties: []string{"anxiety", "academic"}, Rating: 4.9, Experience: 5, NextAvailable: now, IsActive: true},
		{Name: "张伟", Specialties: []string{"anxiety"}, Rating: 4.5, Experience: 3, NextAvailable: now, IsActive: true},
		{Name: "休假中", Specialties: []string{"anxiety"}, Rating: 5.0, Experience: 20, NextAvailable: now, IsActive: false},
		{Name: "陈静", Specialties: []string{"career"}, Rating: 4.8, Experience: 8, NextAvailable: now, IsActive: true},
	}
	for i := range counselors {
		if err := gdb.Create(&counselors[i]).Error; err != nil {
			t.Fatalf("seed counselor: %v", err)
		}
	}

	result, err := svc.List(CounselorFilter{Specialty: "anxiety", Limit: 10}, now)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	// 评分降序，同分按从业年限降序；停用与不匹配专长的不出现
	if result.Pagination.Total != 3 {
		t.Fatalf("expected total 3, got %d", result.Pagination.Total)
	}
	got := []string{result.Counselors[0].Name, result.Counselors[1].Name, result.Counselors[2].Name}
	want := []string{"李明", "王芳", "张伟"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got %v, want %v", got, want)
		}
	}
}

func TestCounselorService_AvailabilityWindows(t *testing.T) {
	gdb := setupCounselorServiceTestDB(t)
	svc := NewCounselorService(gdb)

	now := time.Date(2026, 5, 10, 10, 0, 0, 0, time.Local)
	counselors := []db.Counselor{
		{Name: "今天", NextAvailable: now.Add(6 * time.Hour), IsActive: true},
		{Name: "三天后", NextAvailable: now.AddDate(0, 0, 3), IsActive: true},
		{Name: "两周后", NextAvailable: now.AddDate(0, 0, 14), IsActive: true},
		{Name: "两月后", NextAvailable: now.AddDate(0, 2, 0), IsActive: true},
	}
	for i := range counselors {
		if err := gdb.Create(&counselors[i]).Error; err != nil {
			t.Fatalf("seed counselor: %v", err)
		}
	}

	cases := []struct {
		window string
		want   int
	}{
		{"today", 1},
		{"week", 2},
		{"month", 3},
	}
	for _, tc := range cases {
		result, err := svc.List(CounselorFilter{Availability: tc.window, Limit: 10}, now)
		if err != nil {
			t.Fatalf("list %s: %v", tc.window, err)
		}
		if result.Pagination.Total != tc.want {
			t.Fatalf("window %s: expected %d counselors, got %d", tc.window, tc.want, result.Pagination.Total)
		}
	}
}

func TestCounselorService_LocationMatchesCityOrState(t *testing.T) {
	gdb := setupCounselorServiceTestDB(t)
	svc := NewCounselorService(gdb)

	now := time.Now()
	counselors := []db.Counselor{
		{Name: "A", City: "杭州", State: "浙江", NextAvailable: now, IsActive: true},
		{Name: "B", City: "南京", State: "江苏", NextAvailable: now, IsActive: true},
	}
	for i := range counselors {
		if err := gdb.Create(&counselors[i]).Error; err != nil {
			t.Fatalf("seed counselor: %v", err)
		}
	}

	result, err := svc.List(CounselorFilter{Location: "浙江", Limit: 10}, now)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Pagination.Total != 1 || result.Counselors[0].Name != "A" {
		t.Fatalf("expected state match only, got %+v", result.Counselors)
	}
}

func TestCounselorService_ListValidation(t *testing.T) {
	gdb := setupCounselorServiceTestDB(t)
	svc := NewCounselorService(gdb)

	now := time.Now()
	if _, err := svc.List(CounselorFilter{Specialty: "astrology", Limit: 10}, now); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.List(CounselorFilter{Availability: "tomorrow", Limit: 10}, now); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.List(CounselorFilter{Location: "杭", Limit: 10}, now); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for short location, got %v", err)
	}
}

func TestCounselorService_GetInactiveNotFound(t *testing.T) {
	gdb := setupCounselorServiceTestDB(t)
	svc := NewCounselorService(gdb)

	counselor := db.Counselor{Name: "离职", IsActive: false}
	if err := gdb.Create(&counselor).Error; err != nil {
		t.Fatalf("seed counselor: %v", err)
	}

	if _, err := svc.Get(counselor.ID); !errors.Is(err, ErrCounselorNotFound) {
		t.Fatalf("expected ErrCounselorNotFound, got %v", err)
	}
}
