package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindcare/internal/config"
	"github.com/mindcare/internal/db"
	"github.com/mindcare/internal/router"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type e2eSuite struct {
	handler   http.Handler
	gdb       *gorm.DB
	token     string
	counselor db.Counselor
	resource  db.Resource
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:e2e-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := gdb.AutoMigrate(
		&db.User{}, &db.MoodEntry{}, &db.JournalEntry{}, &db.Resource{},
		&db.Counselor{}, &db.Feedback{}, &db.Appointment{},
		&db.EmergencyContact{}, &db.ChatSession{}, &db.ChatMessage{},
		&db.NewsletterSubscription{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	suite := &e2eSuite{gdb: gdb}

	suite.resource = db.Resource{
		Title:       "考试焦虑应对指南",
		Description: "一步步缓解考前紧张",
		Content:     "# 指南\n\n深呼吸，从小目标开始。",
		Type:        "guide",
		Category:    "anxiety",
		Difficulty:  "beginner",
		Tags:        []string{"考试", "焦虑"},
		PublishDate: time.Now().AddDate(0, -1, 0),
		Rating:      4.5,
		IsPublished: true,
	}
	if err := gdb.Create(&suite.resource).Error; err != nil {
		t.Fatalf("seed resource: %v", err)
	}

	suite.counselor = db.Counselor{
		Name:          "王芳",
		Title:         "国家二级心理咨询师",
		Specialties:   []string{"anxiety", "academic"},
		Experience:    8,
		City:          "杭州",
		State:         "浙江",
		NextAvailable: time.Now().AddDate(0, 0, 2),
		Rating:        4.8,
		Languages:     []string{"中文"},
		SessionTypes:  []string{"individual", "online"},
		IsActive:      true,
	}
	if err := gdb.Create(&suite.counselor).Error; err != nil {
		t.Fatalf("seed counselor: %v", err)
	}

	hotline := db.EmergencyContact{
		Name:      "全国心理援助热线",
		Phone:     "12356",
		Type:      "hotline",
		Available: "24/7",
		IsActive:  true,
	}
	if err := gdb.Create(&hotline).Error; err != nil {
		t.Fatalf("seed emergency contact: %v", err)
	}

	suite.handler = router.SetupRouter(gdb, config.AppConfig{
		JWTSecret:     "e2e-secret",
		GinMode:       gin.TestMode,
		UploadDir:     t.TempDir(),
		UploadURLPath: "/uploads",
	})
	return suite
}

func (s *e2eSuite) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *e2eSuite) decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return payload
}

func TestE2E_StudentJourney(t *testing.T) {
	suite := newE2ESuite(t)

	t.Run("health", suite.testHealth)
	t.Run("register and login", suite.testAuth)
	t.Run("mood checkin and analytics", suite.testMood)
	t.Run("resources and feedback", suite.testResources)
	t.Run("counselors and appointment", suite.testCounselors)
	t.Run("search", suite.testSearch)
	t.Run("support chat", suite.testChat)
	t.Run("profile and export", suite.testProfile)
	t.Run("public misc", suite.testMisc)
}

func (s *e2eSuite) testHealth(t *testing.T) {
	w := s.do(t, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health check failed: %d", w.Code)
	}
}

func (s *e2eSuite) testAuth(t *testing.T) {
	w := s.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":       "xiaoli@example.edu",
		"password":    "Sunny2026",
		"name":        "小李",
		"institution": "浙江大学",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "xiaoli@example.edu",
		"password": "Sunny2026",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	s.token, _ = s.decode(t, w)["token"].(string)
	if s.token == "" {
		t.Fatal("login response missing token")
	}

	w = s.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "xiaoli@example.edu",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", w.Code)
	}
}

func (s *e2eSuite) testMood(t *testing.T) {
	checkins := []gin.H{
		{"mood": "good", "score": 4, "factors": []string{"sleep"}, "notes": "睡得不错"},
		{"mood": "okay", "score": 3, "factors": []string{"sleep", "academic"}},
	}
	for _, body := range checkins {
		w := s.do(t, http.MethodPost, "/api/mood", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("mood checkin failed: %d %s", w.Code, w.Body.String())
		}
	}

	w := s.do(t, http.MethodGet, "/api/mood?limit=10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("mood list failed: %d", w.Code)
	}
	payload := s.decode(t, w)
	entries := payload["entries"].([]interface{})
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	w = s.do(t, http.MethodGet, "/api/mood/analytics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("analytics failed: %d", w.Code)
	}
	analytics := s.decode(t, w)["analytics"].(map[string]interface{})
	if analytics["averageScore"].(float64) != 3.5 {
		t.Fatalf("expected averageScore 3.5, got %v", analytics["averageScore"])
	}
	factors := analytics["factorAnalysis"].(map[string]interface{})
	sleep := factors["sleep"].(map[string]interface{})
	if sleep["count"].(float64) != 2 {
		t.Fatalf("expected sleep factor count 2, got %v", sleep["count"])
	}
}

func (s *e2eSuite) testResources(t *testing.T) {
	w := s.do(t, http.MethodGet, "/api/resources?category=anxiety", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("resource list failed: %d", w.Code)
	}
	payload := s.decode(t, w)
	if payload["pagination"].(map[string]interface{})["total"].(float64) != 1 {
		t.Fatalf("unexpected resource total: %v", payload["pagination"])
	}

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/resources/%d", s.resource.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("resource detail failed: %d", w.Code)
	}

	w = s.do(t, http.MethodPost, "/api/feedback", gin.H{
		"type":     "resource",
		"targetId": s.resource.ID,
		"rating":   5,
		"comment":  "很实用",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("feedback failed: %d %s", w.Code, w.Body.String())
	}

	var updated db.Resource
	if err := s.gdb.First(&updated, s.resource.ID).Error; err != nil {
		t.Fatalf("reload resource: %v", err)
	}
	if updated.Rating != 5 {
		t.Fatalf("expected recomputed rating 5, got %v", updated.Rating)
	}
}

func (s *e2eSuite) testCounselors(t *testing.T) {
	w := s.do(t, http.MethodGet, "/api/counselors?specialty=anxiety&availability=week", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("counselor list failed: %d %s", w.Code, w.Body.String())
	}
	payload := s.decode(t, w)
	counselors := payload["counselors"].([]interface{})
	if len(counselors) != 1 {
		t.Fatalf("expected 1 counselor, got %d", len(counselors))
	}

	w = s.do(t, http.MethodPost, "/api/appointments", gin.H{
		"counselorId":   s.counselor.ID,
		"sessionType":   "online",
		"preferredDate": time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		"preferredTime": "15:00",
		"reason":        "期末临近，最近很难集中精力",
		"urgency":       "medium",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("appointment failed: %d %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodGet, "/api/appointments?status=pending", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("appointment list failed: %d", w.Code)
	}
	appointments := s.decode(t, w)["appointments"].([]interface{})
	if len(appointments) != 1 {
		t.Fatalf("expected 1 pending appointment, got %d", len(appointments))
	}
}

func (s *e2eSuite) testSearch(t *testing.T) {
	w := s.do(t, http.MethodGet, "/api/search?q=%E7%84%A6%E8%99%91", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("search failed: %d %s", w.Code, w.Body.String())
	}
	payload := s.decode(t, w)
	if payload["totalResults"].(float64) < 1 {
		t.Fatalf("expected at least one search hit, got %v", payload["totalResults"])
	}

	w = s.do(t, http.MethodGet, "/api/search", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty query should be rejected, got %d", w.Code)
	}
}

func (s *e2eSuite) testChat(t *testing.T) {
	w := s.do(t, http.MethodPost, "/api/chat/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("start chat failed: %d %s", w.Code, w.Body.String())
	}
	sessionID, _ := s.decode(t, w)["sessionId"].(string)
	if sessionID == "" {
		t.Fatal("missing sessionId")
	}

	w = s.do(t, http.MethodPost, "/api/chat/sessions/"+sessionID+"/messages", gin.H{
		"message": "最近考试压力好大",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("chat message failed: %d %s", w.Code, w.Body.String())
	}
	botMessage := s.decode(t, w)["botMessage"].(map[string]interface{})
	if botMessage["body"].(string) == "" {
		t.Fatal("bot reply should not be empty")
	}
}

func (s *e2eSuite) testProfile(t *testing.T) {
	w := s.do(t, http.MethodPut, "/api/profile", gin.H{
		"bio": "心理学爱好者",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("profile update failed: %d %s", w.Code, w.Body.String())
	}
	user := s.decode(t, w)["user"].(map[string]interface{})
	if user["bio"] != "心理学爱好者" {
		t.Fatalf("bio not applied: %v", user["bio"])
	}
	if _, exposed := user["password"]; exposed {
		t.Fatal("password must never be serialized")
	}

	w = s.do(t, http.MethodGet, "/api/export/user-data", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export failed: %d", w.Code)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Fatal("export should be sent as attachment")
	}
	export := s.decode(t, w)
	if len(export["moodEntries"].([]interface{})) != 2 {
		t.Fatalf("export should include mood entries: %v", export["moodEntries"])
	}
}

func (s *e2eSuite) testMisc(t *testing.T) {
	w := s.do(t, http.MethodGet, "/api/emergency-contacts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("emergency contacts failed: %d", w.Code)
	}
	contacts := s.decode(t, w)["contacts"].([]interface{})
	if len(contacts) != 1 {
		t.Fatalf("expected 1 hotline, got %d", len(contacts))
	}

	w = s.do(t, http.MethodPost, "/api/newsletter/subscribe", gin.H{
		"email": "xiaoli@example.edu",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("subscribe failed: %d %s", w.Code, w.Body.String())
	}
	w = s.do(t, http.MethodPost, "/api/newsletter/subscribe", gin.H{
		"email": "xiaoli@example.edu",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate subscribe should be 409, got %d", w.Code)
	}

	// 学生角色不可见运营概览
	w = s.do(t, http.MethodGet, "/api/analytics/dashboard", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student dashboard, got %d", w.Code)
	}
}
