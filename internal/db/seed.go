package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Seed 在对应表为空时写入初始数据，保证新实例启动后即可对外提供
// 资源库、咨询师目录与紧急热线。已有数据时不做任何改动。
func Seed() error {
	if DB == nil {
		return errors.New("database not initialized")
	}

	if err := seedResources(DB); err != nil {
		return err
	}
	if err := seedCounselors(DB); err != nil {
		return err
	}
	return seedEmergencyContacts(DB)
}

func seedResources(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&Resource{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	resources := []Resource{
		{
			Title:             "焦虑与压力管理指南",
			Description:       "应对策略、呼吸练习与正念技巧的综合指南。",
			Content:           "## 认识焦虑\n\n焦虑是身体对压力的自然反应……\n\n## 呼吸练习\n\n尝试 4-7-8 呼吸法：吸气 4 秒，屏息 7 秒，呼气 8 秒。",
			Type:              "guide",
			Category:          "anxiety",
			Difficulty:        "beginner",
			Tags:              []string{"焦虑", "压力", "自助"},
			Author:            "临床心理科",
			PublishDate:       now,
			Rating:            4.5,
			EstimatedReadTime: "10 分钟",
			IsPublished:       true,
		},
		{
			Title:             "认识抑郁",
			Description:       "关于抑郁症状、治疗选择与康复策略的科普内容。",
			Content:           "## 什么是抑郁\n\n抑郁不只是心情不好……",
			Type:              "article",
			Category:          "depression",
			Difficulty:        "intermediate",
			Tags:              []string{"抑郁", "科普", "康复"},
			Author:            "临床心理科",
			PublishDate:       now,
			Rating:            4.7,
			EstimatedReadTime: "15 分钟",
			IsPublished:       true,
		},
	}

	return gdb.Create(&resources).Error
}

func seedCounselors(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&Counselor{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	counselors := []Counselor{
		{
			Name:               "李雯",
			Title:              "临床心理学家",
			Email:              "liwen@mindcare.dev",
			Bio:                "专注于学生焦虑、抑郁与学业压力干预，八年临床经验。",
			Specialties:        []string{"anxiety", "depression", "academic"},
			Qualifications:     []string{"临床心理学博士", "注册心理师"},
			Experience:         8,
			City:               "北京",
			State:              "北京",
			Schedule:           "周一至周五 9:00-18:00",
			NextAvailable:      time.Now().Add(24 * time.Hour),
			EmergencyAvailable: true,
			Rating:             4.8,
			Reviews:            156,
			Languages:          []string{"中文", "English"},
			SessionTypes:       []string{"individual", "group", "online"},
			ConsultationFee:    400,
			FollowUpFee:        300,
			IsActive:           true,
		},
		{
			Name:               "张启航",
			Title:              "精神科医师",
			Email:              "zhangqh@mindcare.dev",
			Bio:                "擅长压力管理、学业高压人群的评估与药物管理。",
			Specialties:        []string{"stress", "academic", "career"},
			Qualifications:     []string{"精神医学硕士", "主治医师"},
			Experience:         12,
			City:               "上海",
			State:              "上海",
			Schedule:           "周一至周六 10:00-20:00",
			NextAvailable:      time.Now().Add(48 * time.Hour),
			EmergencyAvailable: false,
			Rating:             4.9,
			Reviews:            203,
			Languages:          []string{"中文"},
			SessionTypes:       []string{"individual", "online"},
			ConsultationFee:    500,
			FollowUpFee:        400,
			IsActive:           true,
		},
	}

	return gdb.Create(&counselors).Error
}

func seedEmergencyContacts(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&EmergencyContact{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	contacts := []EmergencyContact{
		{
			Name:        "全国心理援助热线",
			Phone:       "12356",
			Type:        "national",
			Available:   "24/7",
			Description: "全国统一心理援助热线，全天候提供支持。",
			IsActive:    true,
		},
		{
			Name:        "北京心理危机研究与干预中心",
			Phone:       "010-82951332",
			Type:        "crisis",
			Available:   "24/7",
			Description: "危机干预与心理支持热线。",
			Website:     "http://www.crisis.org.cn/",
			IsActive:    true,
		},
		{
			Name:        "青少年心理咨询热线",
			Phone:       "12355",
			Type:        "emotional",
			Available:   "9:00-21:00",
			Description: "面向青少年的情绪支持与咨询服务。",
			IsActive:    true,
		},
	}

	return gdb.Create(&contacts).Error
}
