package handler

import (
	"vidtube/internal/api/dto"
	"vidtube/internal/api/response"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Add POST /api/v1/comments/addcomment/:id（id 为视频ID）
func (h *CommentHandler) Add(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.commentService.Add(currentUserID(c), videoID, &req)
	if err != nil {
		handleError(c, "Add comment", err)
		return
	}
	response.Created(c, "Comment added successfully", info)
}

// ListByVideo 视频评论
// @Summary 视频评论列表
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量，默认 10"
// @Success 200 {object} response.Response{data=dto.CommentListData}
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /comments/getcomments/{id} [get]
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, limit := parsePagination(c, 10)

	data, err := h.commentService.ListByVideo(videoID, currentUserID(c), page, limit)
	if err != nil {
		handleError(c, "List comments", err)
		return
	}

	if data.Total == 0 {
		response.OK(c, "No comments yet", data.Comments)
		return
	}
	response.OK(c, "Comments fetched successfully", data)
}

// Update PATCH /api/v1/comments/update/:id
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.commentService.Update(currentUserID(c), commentID, &req)
	if err != nil {
		handleError(c, "Update comment", err)
		return
	}
	response.OK(c, "Comment updated successfully", info)
}

// Delete DELETE /api/v1/comments/delete/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(currentUserID(c), commentID); err != nil {
		handleError(c, "Delete comment", err)
		return
	}
	response.OK(c, "Comment deleted successfully", gin.H{})
}
