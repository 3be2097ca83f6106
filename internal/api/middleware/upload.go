package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"vidtube/internal/api/response"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const contextKeyStagedPrefix = "staged:"

// UploadLimits 暂存目录和单文件大小上限
type UploadLimits struct {
	TempDir  string
	MaxBytes int64
}

// StageUploads 把 multipart 中指定字段的文件写入暂存目录，请求结束后清理。
// 缺失的字段不报错，由业务层判断是否必填。
func StageUploads(limits UploadLimits, fields ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limits.MaxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limits.MaxBytes*int64(len(fields))+1<<20)
		}

		form, err := c.MultipartForm()
		if err != nil && !errors.Is(err, http.ErrNotMultipart) {
			response.BadRequest(c, "Invalid multipart form", err.Error())
			c.Abort()
			return
		}

		var staged []string
		defer func() {
			// Upload 成功时文件已被删除，这里只清理剩余的
			for _, p := range staged {
				if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
					logger.Warn("Remove staged file failed", zap.String("path", p), zap.Error(err))
				}
			}
		}()

		if form != nil {
			if err := os.MkdirAll(limits.TempDir, 0o755); err != nil {
				logger.Error("Create upload temp dir failed", zap.Error(err))
				response.InternalError(c, "Internal server error")
				c.Abort()
				return
			}

			for _, field := range fields {
				files := form.File[field]
				if len(files) == 0 {
					continue
				}
				fh := files[0]
				if limits.MaxBytes > 0 && fh.Size > limits.MaxBytes {
					response.BadRequest(c, fmt.Sprintf("%s exceeds the maximum allowed size", field))
					c.Abort()
					return
				}

				dst := filepath.Join(limits.TempDir, uuid.NewString()+filepath.Ext(fh.Filename))
				if err := c.SaveUploadedFile(fh, dst); err != nil {
					logger.Error("Stage upload failed", zap.String("field", field), zap.Error(err))
					response.InternalError(c, "Internal server error")
					c.Abort()
					return
				}
				staged = append(staged, dst)
				c.Set(contextKeyStagedPrefix+field, dst)
			}
		}

		c.Next()
	}
}

// StagedFile 获取字段对应的暂存文件路径，未上传时返回空串
func StagedFile(c *gin.Context, field string) string {
	return c.GetString(contextKeyStagedPrefix + field)
}
