package handler

import (
	"vidtube/internal/api/dto"
	"vidtube/internal/api/response"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Create POST /api/v1/tweets/uploadnew
func (h *TweetHandler) Create(c *gin.Context) {
	var req dto.TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.tweetService.Create(currentUserID(c), &req)
	if err != nil {
		handleError(c, "Create tweet", err)
		return
	}
	response.Created(c, "Tweet created successfully", info)
}

// ListByUser GET /api/v1/tweets/get/:id（id 为用户ID）
func (h *TweetHandler) ListByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tweets, err := h.tweetService.ListByUser(userID)
	if err != nil {
		handleError(c, "List tweets", err)
		return
	}
	response.OK(c, "Tweets fetched successfully", tweets)
}

// Update PUT /api/v1/tweets/update/:id
func (h *TweetHandler) Update(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.tweetService.Update(currentUserID(c), tweetID, &req)
	if err != nil {
		handleError(c, "Update tweet", err)
		return
	}
	response.OK(c, "Tweet updated successfully", info)
}

// Delete DELETE /api/v1/tweets/delete/:id
func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tweetService.Delete(currentUserID(c), tweetID); err != nil {
		handleError(c, "Delete tweet", err)
		return
	}
	response.OK(c, "Tweet deleted successfully", gin.H{})
}
