package dto

// ChannelStats 频道统计
type ChannelStats struct {
	Username         string `json:"username"`
	FullName         string `json:"full_name"`
	Avatar           string `json:"avatar"`
	CoverImage       string `json:"cover_image"`
	TotalVideos      int64  `json:"total_videos"`
	TotalViews       int64  `json:"total_views"`
	TotalLikes       int64  `json:"total_likes"`
	TotalSubscribers int64  `json:"total_subscribers"`
}
