package db

import (
	"time"

	"gorm.io/gorm"
)

// Resource 定义了心理健康资源模型
// Rating 由关联反馈的平均分重算得出，Views 在详情访问时自增，
// 二者是创建后唯一由服务端改写的字段
type Resource struct {
	gorm.Model
	Title             string
	Description       string
	Content           string
	Type              string
	Category          string
	Difficulty        string
	Tags              []string `gorm:"serializer:json"`
	Author            string
	PublishDate       time.Time
	Views             int
	Rating            float64
	EstimatedReadTime string
	IsPublished       bool
}
