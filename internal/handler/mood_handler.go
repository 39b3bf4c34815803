package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindcare/internal/db"
	"github.com/mindcare/internal/service"
)

type moodPayload struct {
	Mood    string   `json:"mood"`
	Score   int      `json:"score"`
	Factors []string `json:"factors"`
	Notes   string   `json:"notes"`
}

// CreateMood 写入一条心情打卡
func (a *API) CreateMood(c *gin.Context) {
	var payload moodPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	entry, err := a.moods.Create(service.MoodInput{
		UserID:  currentUserID(c),
		Mood:    payload.Mood,
		Score:   payload.Score,
		Factors: payload.Factors,
		Notes:   payload.Notes,
	})
	if err != nil {
		handleServiceError(c, err, "保存打卡记录失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "打卡成功",
		"entry":   moodToPayload(*entry),
	})
}

// ListMood 返回当前用户的打卡记录，支持闭区间日期过滤与分页
func (a *API) ListMood(c *gin.Context) {
	limit, offset, ok := parsePagination(c, 50, 100)
	if !ok {
		return
	}

	from, ok := parseOptionalTime(c.Query("from"))
	if !ok {
		respondError(c, http.StatusBadRequest, "无效的 from 日期")
		return
	}
	to, ok := parseOptionalTime(c.Query("to"))
	if !ok {
		respondError(c, http.StatusBadRequest, "无效的 to 日期")
		return
	}

	result, err := a.moods.List(service.MoodFilter{
		UserID: currentUserID(c),
		From:   from,
		To:     to,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		handleServiceError(c, err, "获取打卡记录失败")
		return
	}

	entries := make([]gin.H, 0, len(result.Entries))
	for _, entry := range result.Entries {
		entries = append(entries, moodToPayload(entry))
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":    entries,
		"pagination": result.Pagination,
	})
}

// GetMoodAnalytics 返回当前用户的心情统计。
// 没有任何打卡时回复 no data，analytics 为 null。
func (a *API) GetMoodAnalytics(c *gin.Context) {
	analytics, err := a.moods.Analytics(currentUserID(c), time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "生成心情统计失败")
		return
	}

	if analytics == nil {
		c.JSON(http.StatusOK, gin.H{
			"message":   "暂无心情数据",
			"analytics": nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analytics": analytics})
}

func moodToPayload(entry db.MoodEntry) gin.H {
	return gin.H{
		"id":        entry.ID,
		"mood":      entry.Mood,
		"score":     entry.Score,
		"factors":   entry.Factors,
		"notes":     entry.Notes,
		"timestamp": entry.CreatedAt.Format(time.RFC3339),
	}
}
