package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindcare/internal/db"
	"github.com/mindcare/internal/service"
)

type journalPayload struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Mood    string   `json:"mood"`
	Tags    []string `json:"tags"`
}

// CreateJournal 写入一篇私密日记
func (a *API) CreateJournal(c *gin.Context) {
	var payload journalPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	entry, err := a.journals.Create(service.JournalInput{
		UserID:  currentUserID(c),
		Title:   payload.Title,
		Content: payload.Content,
		Mood:    payload.Mood,
		Tags:    payload.Tags,
	})
	if err != nil {
		handleServiceError(c, err, "保存日记失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "日记保存成功",
		"entry":   journalToPayload(*entry),
	})
}

// ListJournal 返回当前用户的日记列表，支持文本搜索与分页
func (a *API) ListJournal(c *gin.Context) {
	limit, offset, ok := parsePagination(c, 20, 100)
	if !ok {
		return
	}

	result, err := a.journals.List(service.JournalFilter{
		UserID: currentUserID(c),
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		handleServiceError(c, err, "获取日记列表失败")
		return
	}

	entries := make([]gin.H, 0, len(result.Entries))
	for _, entry := range result.Entries {
		entries = append(entries, journalToPayload(entry))
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":    entries,
		"pagination": result.Pagination,
	})
}

func journalToPayload(entry db.JournalEntry) gin.H {
	return gin.H{
		"id":        entry.ID,
		"title":     entry.Title,
		"content":   entry.Content,
		"mood":      entry.Mood,
		"tags":      entry.Tags,
		"createdAt": entry.CreatedAt.Format(time.RFC3339),
		"updatedAt": entry.UpdatedAt.Format(time.RFC3339),
	}
}
