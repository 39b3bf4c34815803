package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Search 在资源与咨询师中做跨集合搜索
func (a *API) Search(c *gin.Context) {
	limit := 20
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			respondError(c, http.StatusBadRequest, "limit 必须是 1 到 50 之间的整数")
			return
		}
		limit = parsed
	}

	outcome, err := a.search.Search(strings.TrimSpace(c.Query("q")), c.Query("type"), limit)
	if err != nil {
		handleServiceError(c, err, "搜索失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":        outcome.Query,
		"results":      outcome.Results,
		"totalResults": outcome.TotalResults,
	})
}
