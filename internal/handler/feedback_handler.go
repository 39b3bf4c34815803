package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindcare/internal/service"
)

type feedbackPayload struct {
	Type     string `json:"type"`
	TargetID *uint  `json:"targetId"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Category string `json:"category"`
}

// CreateFeedback 提交反馈并触发目标对象的聚合评分重算。
// 目标缺失不影响反馈写入，始终以 201 回复。
func (a *API) CreateFeedback(c *gin.Context) {
	var payload feedbackPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	feedback, err := a.feedback.Create(service.FeedbackInput{
		UserID:   currentUserID(c),
		Type:     payload.Type,
		TargetID: payload.TargetID,
		Rating:   payload.Rating,
		Comment:  payload.Comment,
		Category: payload.Category,
	})
	if err != nil {
		handleServiceError(c, err, "提交反馈失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "反馈提交成功",
		"feedbackId": feedback.ID,
	})
}
