package handler

import (
	"vidtube/internal/api/response"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetChannelStats 频道统计
// @Summary 频道统计
// @Description 视频数、总播放量、视频获赞数、订阅数
// @Tags 控制台
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.ChannelStats}
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetChannelStats(c *gin.Context) {
	stats, err := h.dashboardService.GetChannelStats(currentUserID(c))
	if err != nil {
		handleError(c, "Get channel stats", err)
		return
	}
	response.OK(c, "Channel stats fetched successfully", stats)
}

// GetChannelVideos GET /api/v1/dashboard/videos
func (h *DashboardHandler) GetChannelVideos(c *gin.Context) {
	videos, err := h.dashboardService.GetChannelVideos(currentUserID(c))
	if err != nil {
		handleError(c, "Get channel videos", err)
		return
	}
	response.OK(c, "Channel videos fetched successfully", videos)
}
