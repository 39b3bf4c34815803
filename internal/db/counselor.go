package db

import (
	"time"

	"gorm.io/gorm"
)

// Counselor 定义了咨询师模型
// Rating/Reviews 由反馈日志重算，不可独立改写
// NextAvailable/EmergencyAvailable 描述可预约状态
type Counselor struct {
	gorm.Model
	Name               string
	Title              string
	Email              string
	Bio                string
	Specialties        []string `gorm:"serializer:json"`
	Qualifications     []string `gorm:"serializer:json"`
	Experience         int
	City               string
	State              string
	Schedule           string
	NextAvailable      time.Time
	EmergencyAvailable bool
	Rating             float64
	Reviews            int
	Languages          []string `gorm:"serializer:json"`
	SessionTypes       []string `gorm:"serializer:json"`
	ConsultationFee    int
	FollowUpFee        int
	IsActive           bool
}
