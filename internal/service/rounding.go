package service

import "math"

// round1 保留 1 位小数，用于聚合评分
func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// round2 保留 2 位小数，用于心情均分
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
