package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindcare/internal/db"
	"github.com/mindcare/internal/service"
)

type chatMessagePayload struct {
	Message string `json:"message"`
}

// StartChat 开启一个新的支持聊天会话
func (a *API) StartChat(c *gin.Context) {
	session, err := a.chats.StartSession(currentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "创建会话失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "会话已创建",
		"sessionId": session.SessionID,
		"greeting":  "你好，我是校园心理支持助手。今天想聊点什么？",
	})
}

// PostChatMessage 在会话中发消息并返回机器人回复
func (a *API) PostChatMessage(c *gin.Context) {
	var payload chatMessagePayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	userMessage, botMessage, err := a.chats.PostMessage(c.Param("sessionId"), currentUserID(c), payload.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChatSessionNotFound):
			respondError(c, http.StatusNotFound, "会话不存在或已结束")
		case errors.Is(err, service.ErrValidation):
			respondValidationError(c, err)
		default:
			respondError(c, http.StatusInternalServerError, "发送消息失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userMessage": chatMessageToPayload(*userMessage),
		"botMessage":  chatMessageToPayload(*botMessage),
	})
}

func chatMessageToPayload(message db.ChatMessage) gin.H {
	return gin.H{
		"id":        message.ID,
		"sender":    message.Sender,
		"body":      message.Body,
		"createdAt": message.CreatedAt.Format(time.RFC3339),
	}
}
