package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindcare/internal/service"
)

const dateFormat = "2006-01-02"

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondValidationError 回复 400，并在 detail 中携带具体字段信息
func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "参数校验失败",
		"detail": err.Error(),
	})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// parsePagination 校验 limit/offset 查询参数。
// limit 限定在 1..maxLimit，offset 非负；越界直接 400，不做静默截断。
func parsePagination(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int, ok bool) {
	limit = defaultLimit

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxLimit {
			respondError(c, http.StatusBadRequest, fmt.Sprintf("limit 必须是 1 到 %d 之间的整数", maxLimit))
			return 0, 0, false
		}
		limit = parsed
	}

	if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(c, http.StatusBadRequest, "offset 必须是非负整数")
			return 0, 0, false
		}
		offset = parsed
	}

	return limit, offset, true
}

// parseOptionalTime 解析可选的日期参数，支持 2006-01-02 与 RFC3339
func parseOptionalTime(value string) (*time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, true
	}

	if t, err := time.ParseInLocation(dateFormat, value, time.Local); err == nil {
		return &t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, true
	}

	return nil, false
}

// handleServiceError 统一映射校验错误，其余交给 fallback
func handleServiceError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, service.ErrValidation) {
		respondValidationError(c, err)
		return
	}
	respondError(c, http.StatusInternalServerError, fallback)
}
