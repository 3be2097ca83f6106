package dto

import "time"

// CommentRequest 发表/更新评论请求
type CommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID         int64         `json:"id"`
	VideoID    int64         `json:"video_id"`
	OwnerID    int64         `json:"owner_id"`
	Content    string        `json:"content"`
	LikesCount int64         `json:"likes_count"`
	Owner      *OwnerSummary `json:"owner,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// CommentListData 评论列表数据
type CommentListData struct {
	Comments   []CommentInfo `json:"comments"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int64         `json:"total_pages"`
}
