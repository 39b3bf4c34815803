package db

import (
	"time"

	"gorm.io/gorm"
)

// Appointment 定义了预约申请模型
// Status 取值 pending/confirmed/completed/cancelled，
// 状态流转由咨询师侧流程负责，这里只负责创建与查询
type Appointment struct {
	gorm.Model
	UserID        uint `gorm:"index"`
	CounselorID   uint `gorm:"index"`
	Counselor     Counselor
	SessionType   string
	PreferredDate time.Time
	PreferredTime string
	Reason        string
	Urgency       string
	Status        string
}
