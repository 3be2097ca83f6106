package handler

import (
	"vidtube/internal/api/dto"
	"vidtube/internal/api/response"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create POST /api/v1/playlist/create
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req dto.PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.playlistService.Create(currentUserID(c), &req)
	if err != nil {
		handleError(c, "Create playlist", err)
		return
	}
	response.Created(c, "Playlist created successfully", info)
}

// ListByUser GET /api/v1/playlist/getbyuser/:id
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	playlists, err := h.playlistService.ListByUser(userID, currentUserID(c))
	if err != nil {
		handleError(c, "List playlists", err)
		return
	}
	response.OK(c, "Playlists fetched successfully", playlists)
}

// GetByID 播放列表详情
// @Summary 播放列表详情
// @Description 视频按加入顺序返回，他人未公开的视频不返回，没有视频时 videos 为空数组
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param id path int true "播放列表ID"
// @Success 200 {object} response.Response{data=dto.PlaylistDetail}
// @Failure 404 {object} response.ErrorResponse "播放列表不存在"
// @Router /playlist/get/{id} [get]
func (h *PlaylistHandler) GetByID(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.playlistService.GetByID(playlistID, currentUserID(c))
	if err != nil {
		handleError(c, "Get playlist", err)
		return
	}
	response.OK(c, "Playlist fetched successfully", detail)
}

// AddVideo PATCH /api/v1/playlist/addvideo/:playlistId/:videoId
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlistId")
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		return
	}

	detail, added, err := h.playlistService.AddVideo(currentUserID(c), playlistID, videoID)
	if err != nil {
		handleError(c, "Add video to playlist", err)
		return
	}

	if !added {
		response.OK(c, "Video already added into the playlist", detail)
		return
	}
	response.OK(c, "Video added to playlist successfully", detail)
}

// RemoveVideo PATCH /api/v1/playlist/removevideo/:playlistId/:videoId
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlistId")
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		return
	}

	detail, removed, err := h.playlistService.RemoveVideo(currentUserID(c), playlistID, videoID)
	if err != nil {
		handleError(c, "Remove video from playlist", err)
		return
	}

	if !removed {
		response.OK(c, "Video not in the playlist", detail)
		return
	}
	response.OK(c, "Video removed from playlist successfully", detail)
}

// Update PATCH /api/v1/playlist/update/:playlistId
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlistId")
	if !ok {
		return
	}

	var req dto.PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.playlistService.Update(currentUserID(c), playlistID, &req)
	if err != nil {
		handleError(c, "Update playlist", err)
		return
	}
	response.OK(c, "Playlist updated successfully", info)
}

// Delete DELETE /api/v1/playlist/delete/:playlistId
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlistId")
	if !ok {
		return
	}

	if err := h.playlistService.Delete(currentUserID(c), playlistID); err != nil {
		handleError(c, "Delete playlist", err)
		return
	}
	response.OK(c, "Playlist deleted successfully", gin.H{})
}
