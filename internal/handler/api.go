package handler

import (
	"github.com/mindcare/internal/config"
	"github.com/mindcare/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	users        *service.UserService
	moods        *service.MoodService
	journals     *service.JournalService
	resources    *service.ResourceService
	counselors   *service.CounselorService
	feedback     *service.FeedbackService
	appointments *service.AppointmentService
	search       *service.SearchService
	chats        *service.ChatService
	emergency    *service.EmergencyService
	newsletter   *service.NewsletterService
	dashboard    *service.DashboardService
	jwtSecret    []byte
	uploadDir    string
	uploadURL    string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, cfg config.AppConfig) *API {
	return &API{
		db:           gdb,
		users:        service.NewUserService(gdb),
		moods:        service.NewMoodService(gdb),
		journals:     service.NewJournalService(gdb),
		resources:    service.NewResourceService(gdb),
		counselors:   service.NewCounselorService(gdb),
		feedback:     service.NewFeedbackService(gdb),
		appointments: service.NewAppointmentService(gdb),
		search:       service.NewSearchService(gdb),
		chats:        service.NewChatService(gdb),
		emergency:    service.NewEmergencyService(gdb),
		newsletter:   service.NewNewsletterService(gdb),
		dashboard:    service.NewDashboardService(gdb),
		jwtSecret:    []byte(cfg.JWTSecret),
		uploadDir:    cfg.UploadDir,
		uploadURL:    cfg.UploadURLPath,
	}
}

// DB exposes the underlying gorm instance for test setup paths.
func (a *API) DB() *gorm.DB {
	return a.db
}
