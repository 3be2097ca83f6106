package handler

import (
	"vidtube/internal/api/dto"
	"vidtube/internal/api/response"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleVideoLike 点赞/取消点赞视频
// @Summary 切换视频点赞
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.LikeToggleData}
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /likes/video/{id} [patch]
func (h *LikeHandler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, "Video", h.likeService.ToggleVideoLike)
}

// ToggleTweetLike PATCH /api/v1/likes/tweet/:id
func (h *LikeHandler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, "Tweet", h.likeService.ToggleTweetLike)
}

// ToggleCommentLike PATCH /api/v1/likes/comment/:id
func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, "Comment", h.likeService.ToggleCommentLike)
}

// GetLikedVideos GET /api/v1/likes/likedvideos
func (h *LikeHandler) GetLikedVideos(c *gin.Context) {
	data, err := h.likeService.GetLikedVideos(currentUserID(c))
	if err != nil {
		handleError(c, "Get liked videos", err)
		return
	}

	if len(data.LikedVideos) == 0 {
		response.OK(c, "No videos liked yet", data)
		return
	}
	response.OK(c, "Liked videos fetched successfully", data)
}

func (h *LikeHandler) toggle(c *gin.Context, kind string, fn func(userID, targetID int64) (*dto.LikeToggleData, error)) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	data, err := fn(currentUserID(c), targetID)
	if err != nil {
		handleError(c, "Toggle "+kind+" like", err)
		return
	}

	if data.Liked {
		response.OK(c, kind+" liked successfully", data)
		return
	}
	response.OK(c, kind+" unliked successfully", data)
}
