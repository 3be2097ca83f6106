package handler

import (
	"vidtube/internal/api/dto"
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// Upload 上传视频
// @Summary 上传视频
// @Description multipart 表单，videoFile 与 thumbnail 均为必填
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param description formData string true "描述"
// @Param videoFile formData file true "视频文件"
// @Param thumbnail formData file true "缩略图"
// @Success 201 {object} response.Response{data=dto.VideoInfo} "上传成功"
// @Failure 400 {object} response.ErrorResponse "缺少字段"
// @Router /videos/uploadnew [post]
func (h *VideoHandler) Upload(c *gin.Context) {
	var req dto.VideoUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.videoService.Upload(c.Request.Context(), currentUserID(c), &req,
		middleware.StagedFile(c, "videoFile"), middleware.StagedFile(c, "thumbnail"))
	if err != nil {
		handleError(c, "Upload video", err)
		return
	}
	response.Created(c, "Video uploaded successfully", info)
}

// ListVideos 视频列表
// @Summary 视频列表
// @Description 支持关键字、排序（created_at/views/duration/title）、按用户筛选
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param query query string false "关键字"
// @Param sortBy query string false "排序字段"
// @Param sortType query string false "asc | desc"
// @Param userId query int false "用户ID"
// @Success 200 {object} response.Response{data=dto.VideoListData}
// @Router /videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	var q dto.VideoListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	data, err := h.videoService.ListVideos(&q, currentUserID(c))
	if err != nil {
		handleError(c, "List videos", err)
		return
	}
	response.OK(c, "Videos fetched successfully", data)
}

// ListPublished GET /api/v1/videos/published
func (h *VideoHandler) ListPublished(c *gin.Context) {
	page, limit := parsePagination(c, 10)

	data, err := h.videoService.ListPublished(page, limit)
	if err != nil {
		handleError(c, "List published videos", err)
		return
	}
	response.OK(c, "Published videos fetched successfully", data)
}

// GetByID GET /api/v1/videos/:id
func (h *VideoHandler) GetByID(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	info, err := h.videoService.GetByID(videoID, currentUserID(c))
	if err != nil {
		handleError(c, "Get video", err)
		return
	}
	response.OK(c, "Video fetched successfully", info)
}

// UpdateDetails PUT /api/v1/videos/updatecontent/:id（title / description / thumbnail 至少一项）
func (h *VideoHandler) UpdateDetails(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.videoService.UpdateDetails(c.Request.Context(), currentUserID(c), videoID, &req,
		middleware.StagedFile(c, "thumbnail"))
	if err != nil {
		handleError(c, "Update video", err)
		return
	}
	response.OK(c, "Video updated successfully", info)
}

// UpdateContent 裁剪视频
// @Summary 裁剪视频
// @Description 保留 [start, end] 秒，可同时替换缩略图
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Param start formData number true "开始秒"
// @Param end formData number true "结束秒"
// @Param thumbnail formData file false "缩略图"
// @Success 200 {object} response.Response{data=dto.VideoInfo}
// @Failure 400 {object} response.ErrorResponse "区间无效"
// @Failure 403 {object} response.ErrorResponse "无权限"
// @Router /videos/updatevideocontent/{id} [put]
func (h *VideoHandler) UpdateContent(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.VideoTrimRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.videoService.UpdateContent(c.Request.Context(), currentUserID(c), videoID,
		*req.Start, *req.End, middleware.StagedFile(c, "thumbnail"))
	if err != nil {
		handleError(c, "Trim video", err)
		return
	}
	response.OK(c, "Video content updated successfully", info)
}

// TogglePublish PATCH /api/v1/videos/toggle-publish/:id
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	info, err := h.videoService.TogglePublishStatus(c.Request.Context(), currentUserID(c), videoID)
	if err != nil {
		handleError(c, "Toggle publish", err)
		return
	}
	response.OK(c, "Publish status toggled successfully", info)
}

// Delete DELETE /api/v1/videos/delete/:id
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.videoService.Delete(c.Request.Context(), currentUserID(c), videoID); err != nil {
		handleError(c, "Delete video", err)
		return
	}
	response.OK(c, "Video deleted successfully", gin.H{})
}

// AddToWatchHistory POST /api/v1/videos/watch/:id
func (h *VideoHandler) AddToWatchHistory(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.videoService.AddToWatchHistory(currentUserID(c), videoID); err != nil {
		handleError(c, "Add watch history", err)
		return
	}
	response.OK(c, "Video added to watch history", gin.H{})
}
