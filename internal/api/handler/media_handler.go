package handler

import (
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"MealHub/internal/api/dto"
	"MealHub/internal/pkg/consts"
	"MealHub/internal/pkg/minio"
	"MealHub/internal/pkg/response"
	"MealHub/internal/pkg/util"
	"MealHub/internal/service"
)

const thumbnailMaxWidth = 480

type MediaHandler struct{}

func NewMediaHandler() *MediaHandler {
	return &MediaHandler{}
}

// Upload 上传菜谱图片并生成缩略图
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrMissingFields)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrUnsupportedFile)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil || !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		response.Error(c, service.ErrUnsupportedFile)
		return
	}

	ext := path.Ext(file.Filename)
	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, reader, file.Size, contentType)
	if err != nil {
		log.ErrorContext(c, "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	result := dto.MediaUploadDTO{
		URL:      minio.GetPublicURL(fileKey),
		Mime:     contentType,
		Size:     file.Size,
		Original: file.Filename,
	}

	// 缩略图失败不影响主上传
	if _, err = reader.Seek(0, 0); err == nil {
		thumb, thumbSize, err := util.MakeThumbnail(reader, thumbnailMaxWidth)
		if err == nil {
			thumbKey, err := minio.UploadFile(c.Request.Context(), objectName+".thumb.jpg", thumb, thumbSize, "image/jpeg")
			if err == nil {
				result.ThumbnailURL = minio.GetPublicURL(thumbKey)
			}
		} else {
			log.WarnContext(c, "thumbnail generation failed", "file", objectName, "err", err)
		}
	}

	log.InfoContext(c, "media upload success", "fileKey", fileKey, "type", contentType)
	response.Success(c, result)
}
