package service

import (
	"fmt"

	"github.com/mindcare/internal/db"
	"gorm.io/gorm"
)

// EmergencyService 提供紧急求助热线目录
type EmergencyService struct {
	db *gorm.DB
}

// NewEmergencyService 构造 EmergencyService
func NewEmergencyService(gdb *gorm.DB) *EmergencyService {
	return &EmergencyService{db: gdb}
}

// ListActive 返回全部启用中的热线
func (s *EmergencyService) ListActive() ([]db.EmergencyContact, error) {
	var contacts []db.EmergencyContact
	if err := s.db.Where("is_active = ?", true).
		Order("id ASC").
		Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("list emergency contacts: %w", err)
	}
	return contacts, nil
}
