package dto

import "time"

// UserInfo 用户公开信息（不含密码）
type UserInfo struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"cover_image"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OwnerSummary 嵌套在视频、评论中的作者信息
type OwnerSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

// UpdateAccountRequest 更新账户信息
type UpdateAccountRequest struct {
	FullName string `json:"fullname" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
}

// ChannelProfile 频道主页
type ChannelProfile struct {
	ID                        int64  `json:"id"`
	Username                  string `json:"username"`
	FullName                  string `json:"full_name"`
	Email                     string `json:"email"`
	Avatar                    string `json:"avatar"`
	CoverImage                string `json:"cover_image"`
	SubscribersCount          int64  `json:"subscribers_count"`
	ChannelsSubscribedToCount int64  `json:"channels_subscribed_to_count"`
	IsSubscribed              bool   `json:"is_subscribed"`
}

// WatchHistoryItem 观看记录中的视频
type WatchHistoryItem struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	VideoFile   string       `json:"video_file"`
	Thumbnail   string       `json:"thumbnail"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	Owner       OwnerSummary `json:"owner"`
	WatchedAt   time.Time    `json:"watched_at"`
}
