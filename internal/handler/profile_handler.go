package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindcare/internal/db"
	"github.com/mindcare/internal/service"
)

type profileUpdatePayload struct {
	Name        *string             `json:"name"`
	Phone       *string             `json:"phone"`
	Institution *string             `json:"institution"`
	Bio         *string             `json:"bio"`
	Preferences *db.UserPreferences `json:"preferences"`
}

// GetProfile 返回当前登录用户的资料
func (a *API) GetProfile(c *gin.Context) {
	user, err := a.users.Get(currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "用户不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取资料失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToPayload(user)})
}

// UpdateProfile 更新当前登录用户的资料，字段缺省表示不修改
func (a *API) UpdateProfile(c *gin.Context) {
	var payload profileUpdatePayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	user, err := a.users.UpdateProfile(currentUserID(c), service.ProfileUpdateInput{
		Name:        payload.Name,
		Phone:       payload.Phone,
		Institution: payload.Institution,
		Bio:         payload.Bio,
		Preferences: payload.Preferences,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "用户不存在")
		case errors.Is(err, service.ErrValidation):
			respondValidationError(c, err)
		default:
			respondError(c, http.StatusInternalServerError, "更新资料失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "资料更新成功",
		"user":    userToPayload(user),
	})
}
