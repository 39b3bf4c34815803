package handler

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mindcare/internal/db"
	"github.com/mindcare/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	contentSanitizer = bluemonday.UGCPolicy()
)

// ListResources 返回筛选、排序、分页后的资源列表
func (a *API) ListResources(c *gin.Context) {
	limit, offset, ok := parsePagination(c, 20, 50)
	if !ok {
		return
	}

	result, err := a.resources.List(service.ResourceFilter{
		Category:   c.Query("category"),
		Type:       c.Query("type"),
		Difficulty: c.Query("difficulty"),
		Search:     c.Query("search"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		handleServiceError(c, err, "获取资源列表失败")
		return
	}

	items := make([]gin.H, 0, len(result.Resources))
	for _, resource := range result.Resources {
		items = append(items, resourceToPayload(resource))
	}

	c.JSON(http.StatusOK, gin.H{
		"resources":  items,
		"pagination": result.Pagination,
	})
}

// GetResource 返回资源详情并自增浏览数，正文以渲染后的 HTML 返回
func (a *API) GetResource(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的资源ID")
		return
	}

	resource, err := a.resources.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			respondError(c, http.StatusNotFound, "资源不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取资源失败")
		return
	}

	if err := a.resources.IncrementViews(resource.ID); err == nil {
		resource.Views++
	}

	payload := resourceToPayload(*resource)
	payload["content"] = renderMarkdown(resource.Content)

	c.JSON(http.StatusOK, gin.H{"resource": payload})
}

// renderMarkdown 把资源正文渲染为净化后的 HTML
func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return contentSanitizer.Sanitize(buf.String())
}

func resourceToPayload(resource db.Resource) gin.H {
	return gin.H{
		"id":                resource.ID,
		"title":             resource.Title,
		"description":       resource.Description,
		"type":              resource.Type,
		"category":          resource.Category,
		"difficulty":        resource.Difficulty,
		"tags":              resource.Tags,
		"author":            resource.Author,
		"publishDate":       resource.PublishDate.Format(time.RFC3339),
		"rating":            resource.Rating,
		"estimatedReadTime": resource.EstimatedReadTime,
		"views":             resource.Views,
	}
}
