package dto

import "time"

// TweetRequest 发布/更新动态
type TweetRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// TweetInfo 动态信息
type TweetInfo struct {
	ID         int64     `json:"id"`
	OwnerID    int64     `json:"owner_id"`
	Content    string    `json:"content"`
	LikesCount int64     `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
