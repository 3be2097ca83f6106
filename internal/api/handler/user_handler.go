package handler

import (
	"vidtube/internal/api/dto"
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetCurrentUser GET /api/v1/users/current-user
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	info, err := h.userService.GetCurrentUser(currentUserID(c))
	if err != nil {
		handleError(c, "Get current user", err)
		return
	}
	response.OK(c, "Current user fetched successfully", info)
}

// UpdateAccountDetails PATCH /api/v1/users/update-account-details
func (h *UserHandler) UpdateAccountDetails(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.userService.UpdateAccountDetails(currentUserID(c), &req)
	if err != nil {
		handleError(c, "Update account", err)
		return
	}
	response.OK(c, "Account details updated successfully", info)
}

// UpdateAvatar PATCH /api/v1/users/update-avatar（multipart 字段 avatar）
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	info, err := h.userService.UpdateAvatar(c.Request.Context(), currentUserID(c), middleware.StagedFile(c, "avatar"))
	if err != nil {
		handleError(c, "Update avatar", err)
		return
	}
	response.OK(c, "Avatar image updated successfully", info)
}

// UpdateCoverImage PATCH /api/v1/users/update-cover-image（multipart 字段 coverImage）
func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	info, err := h.userService.UpdateCoverImage(c.Request.Context(), currentUserID(c), middleware.StagedFile(c, "coverImage"))
	if err != nil {
		handleError(c, "Update cover image", err)
		return
	}
	response.OK(c, "Cover image updated successfully", info)
}

// GetChannelProfile 频道主页
// @Summary 频道主页
// @Description 返回订阅数、已订阅频道数以及当前用户是否已订阅
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=dto.ChannelProfile}
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /users/c/{username} [get]
func (h *UserHandler) GetChannelProfile(c *gin.Context) {
	profile, err := h.userService.GetChannelProfile(c.Param("username"), currentUserID(c))
	if err != nil {
		handleError(c, "Get channel profile", err)
		return
	}
	response.OK(c, "User channel fetched successfully", profile)
}

// GetWatchHistory GET /api/v1/users/history
func (h *UserHandler) GetWatchHistory(c *gin.Context) {
	history, err := h.userService.GetWatchHistory(currentUserID(c))
	if err != nil {
		handleError(c, "Get watch history", err)
		return
	}
	response.OK(c, "Watch history fetched successfully", history)
}
