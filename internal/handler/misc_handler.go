package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindcare/internal/service"
)

type newsletterPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Health 健康检查
func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// ListEmergencyContacts 返回全部启用的紧急求助渠道
func (a *API) ListEmergencyContacts(c *gin.Context) {
	contacts, err := a.emergency.ListActive()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取紧急联系方式失败")
		return
	}

	items := make([]gin.H, 0, len(contacts))
	for _, contact := range contacts {
		items = append(items, gin.H{
			"id":          contact.ID,
			"name":        contact.Name,
			"phone":       contact.Phone,
			"type":        contact.Type,
			"available":   contact.Available,
			"description": contact.Description,
			"website":     contact.Website,
		})
	}

	c.JSON(http.StatusOK, gin.H{"contacts": items})
}

// SubscribeNewsletter 订阅资讯邮件，重复订阅返回 409
func (a *API) SubscribeNewsletter(c *gin.Context) {
	var payload newsletterPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	subscription, err := a.newsletter.Subscribe(payload.Email, payload.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadySubscribed):
			respondError(c, http.StatusConflict, "该邮箱已订阅")
		case errors.Is(err, service.ErrValidation):
			respondValidationError(c, err)
		default:
			respondError(c, http.StatusInternalServerError, "订阅失败")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "订阅成功",
		"email":   subscription.Email,
	})
}

// Dashboard 返回平台运营概览，仅管理员与咨询师可见
func (a *API) Dashboard(c *gin.Context) {
	role := currentRole(c)
	if role != "admin" && role != "counselor" {
		respondError(c, http.StatusForbidden, "没有访问权限")
		return
	}

	overview, err := a.dashboard.Overview(time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取概览数据失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"overview": overview})
}
