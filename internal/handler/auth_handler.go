package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindcare/internal/db"
	"github.com/mindcare/internal/service"
)

type registerPayload struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Institution string `json:"institution"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register 创建学生账号并直接签发访问令牌
func (a *API) Register(c *gin.Context) {
	var payload registerPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	user, err := a.users.Register(service.RegisterInput{
		Email:       payload.Email,
		Password:    payload.Password,
		Name:        payload.Name,
		Phone:       payload.Phone,
		Institution: payload.Institution,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondError(c, http.StatusConflict, "该邮箱已被注册")
		case errors.Is(err, service.ErrValidation):
			respondValidationError(c, err)
		default:
			respondError(c, http.StatusInternalServerError, "注册失败")
		}
		return
	}

	token, err := a.generateToken(user)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "注册失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "注册成功",
		"user":    userToPayload(user),
		"token":   token,
	})
}

// Login 校验凭据并签发访问令牌
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	user, err := a.users.Login(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "邮箱或密码不正确")
			return
		}
		respondError(c, http.StatusInternalServerError, "登录失败")
		return
	}

	token, err := a.generateToken(user)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "登录失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"user":    userToPayload(user),
		"token":   token,
	})
}

// userToPayload 序列化用户资料，密码哈希永不外露
func userToPayload(user *db.User) gin.H {
	payload := gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"name":        user.Name,
		"phone":       user.Phone,
		"institution": user.Institution,
		"role":        user.Role,
		"bio":         user.Bio,
		"avatarUrl":   user.AvatarURL,
		"preferences": user.Preferences,
		"createdAt":   user.CreatedAt.Format(time.RFC3339),
	}
	if user.LastLoginAt != nil {
		payload["lastLoginAt"] = user.LastLoginAt.Format(time.RFC3339)
	}
	return payload
}
