package db

import "gorm.io/gorm"

// EmergencyContact 记录紧急求助热线信息
type EmergencyContact struct {
	gorm.Model
	Name        string
	Phone       string
	Type        string
	Available   string
	Description string
	Website     string
	IsActive    bool
}
