package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ErrValidation 标记参数校验失败，handler 层统一映射为 400。
// 校验总是在任何过滤/聚合执行之前完成，引擎不会收到非法输入。
var ErrValidation = errors.New("validation failed")

var textPolicy = bluemonday.StrictPolicy()

// sanitizeText 清除用户自由文本中的所有 HTML 标签并去掉首尾空白
func sanitizeText(value string) string {
	return strings.TrimSpace(textPolicy.Sanitize(value))
}

// validateEnum 校验可选枚举值，空值视为未提供约束
func validateEnum(field, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("%w: %s 不支持取值 %q", ErrValidation, field, value)
	}
	return nil
}

// containsFold 判断 haystack 是否包含 needle（忽略大小写）
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// anyContainsFold 判断字符串集合中是否有任一元素包含 needle
func anyContainsFold(values []string, needle string) bool {
	for _, v := range values {
		if containsFold(v, needle) {
			return true
		}
	}
	return false
}
