package handler

import (
	"errors"
	"net/http"
	"strconv"

	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/media"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// errorStatus 业务错误到 HTTP 状态码的映射
var errorStatus = map[error]int{
	service.ErrUserNotFound:     http.StatusNotFound,
	service.ErrChannelNotFound:  http.StatusNotFound,
	service.ErrVideoNotFound:    http.StatusNotFound,
	service.ErrCommentNotFound:  http.StatusNotFound,
	service.ErrTweetNotFound:    http.StatusNotFound,
	service.ErrPlaylistNotFound: http.StatusNotFound,

	service.ErrMissingFields:       http.StatusBadRequest,
	service.ErrAvatarRequired:      http.StatusBadRequest,
	service.ErrLoginIDRequired:     http.StatusBadRequest,
	service.ErrInvalidOldPassword:  http.StatusBadRequest,
	service.ErrImageRequired:       http.StatusBadRequest,
	service.ErrUsernameRequired:    http.StatusBadRequest,
	service.ErrVideoFieldsRequired: http.StatusBadRequest,
	service.ErrNothingToUpdate:     http.StatusBadRequest,
	service.ErrInvalidTrimRange:    http.StatusBadRequest,
	service.ErrCommentEmpty:        http.StatusBadRequest,
	service.ErrTweetEmpty:          http.StatusBadRequest,
	service.ErrPlaylistFields:      http.StatusBadRequest,
	service.ErrSelfSubscribe:       http.StatusBadRequest,
	media.ErrInvalidRange:          http.StatusBadRequest,

	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrUnauthorizedRequest: http.StatusUnauthorized,
	service.ErrInvalidRefreshToken: http.StatusUnauthorized,

	service.ErrVideoNoPermission:    http.StatusForbidden,
	service.ErrCommentNoPermission:  http.StatusForbidden,
	service.ErrTweetNoPermission:    http.StatusForbidden,
	service.ErrPlaylistNoPermission: http.StatusForbidden,

	service.ErrUserExists:  http.StatusConflict,
	service.ErrEmailTaken:  http.StatusConflict,
	gorm.ErrDuplicatedKey: http.StatusConflict,
}

// handleError 按映射表返回错误，未知错误记录日志并返回 500
func handleError(c *gin.Context, op string, err error) {
	for target, status := range errorStatus {
		if errors.Is(err, target) {
			msg := err.Error()
			if target == gorm.ErrDuplicatedKey {
				msg = "Resource already exists"
			}
			response.Fail(c, status, msg)
			return
		}
	}

	logger.Error(op+" failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
	response.InternalError(c, "Internal server error")
}

// bindError 参数绑定失败统一返回 400
func bindError(c *gin.Context, err error) {
	response.BadRequest(c, "Invalid request parameters", err.Error())
}

func currentUserID(c *gin.Context) int64 {
	userID, _ := middleware.GetCurrentUserID(c)
	return userID
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func parsePagination(c *gin.Context, defaultLimit int) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}
