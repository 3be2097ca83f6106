package handler

import (
	"vidtube/internal/api/response"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subService *service.SubscriptionService
}

func NewSubscriptionHandler(subService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subService: subService}
}

// Toggle 订阅/取消订阅
// @Summary 切换订阅
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param id path int true "频道（用户）ID"
// @Success 200 {object} response.Response{data=dto.SubscriptionToggleData}
// @Failure 400 {object} response.ErrorResponse "不能订阅自己"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /subscriptions/toggle/{id} [post]
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	data, err := h.subService.Toggle(currentUserID(c), channelID)
	if err != nil {
		handleError(c, "Toggle subscription", err)
		return
	}

	if data.Subscribed {
		response.OK(c, "Subscribed successfully", data)
		return
	}
	response.OK(c, "Unsubscribed successfully", data)
}

// ListSubscribers GET /api/v1/subscriptions/getsubscribers/:id
func (h *SubscriptionHandler) ListSubscribers(c *gin.Context) {
	channelID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	subscribers, err := h.subService.ListSubscribers(channelID)
	if err != nil {
		handleError(c, "List subscribers", err)
		return
	}
	response.OK(c, "Subscribers fetched successfully", subscribers)
}

// ListSubscribedChannels GET /api/v1/subscriptions/getsubscribed
func (h *SubscriptionHandler) ListSubscribedChannels(c *gin.Context) {
	channels, err := h.subService.ListSubscribedChannels(currentUserID(c))
	if err != nil {
		handleError(c, "List subscribed channels", err)
		return
	}
	response.OK(c, "Subscribed channels fetched successfully", channels)
}
