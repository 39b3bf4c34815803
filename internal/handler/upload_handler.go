package handler

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	_ "golang.org/x/image/webp"
)

const maxAvatarSize = 5 << 20

// UploadAvatar 接收头像图片，校验格式后以随机文件名落盘
func (a *API) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		respondError(c, http.StatusBadRequest, "缺少 avatar 文件字段")
		return
	}
	if file.Size > maxAvatarSize {
		respondError(c, http.StatusBadRequest, "头像文件不能超过 5MB")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "读取上传文件失败")
		return
	}
	defer src.Close()

	_, format, err := image.DecodeConfig(src)
	if err != nil {
		respondError(c, http.StatusBadRequest, "仅支持 png、jpeg、gif、webp 格式的图片")
		return
	}

	ext := "." + format
	if format == "jpeg" {
		ext = ".jpg"
	}
	filename := uuid.NewString() + ext

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		respondError(c, http.StatusInternalServerError, "保存头像失败")
		return
	}
	if err := c.SaveUploadedFile(file, filepath.Join(a.uploadDir, filename)); err != nil {
		respondError(c, http.StatusInternalServerError, "保存头像失败")
		return
	}

	avatarURL := path.Join(a.uploadURL, filename)
	if !strings.HasPrefix(avatarURL, "/") {
		avatarURL = "/" + avatarURL
	}

	if err := a.users.SetAvatar(currentUserID(c), avatarURL); err != nil {
		respondError(c, http.StatusInternalServerError, "保存头像失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "头像上传成功",
		"avatarUrl": avatarURL,
	})
}
