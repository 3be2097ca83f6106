// Package search 把视频事件同步到 Elasticsearch 的 videos 索引。
package search

import (
	"time"

	"vidtube/internal/repository"
)

// VideoDocument videos 索引中的文档
type VideoDocument struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	OwnerName   string    `json:"owner_name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
}

func newVideoDocument(r *repository.VideoRow) *VideoDocument {
	return &VideoDocument{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		OwnerName:   r.OwnerUsername,
		Title:       r.Title,
		Description: r.Description,
		Duration:    r.Duration,
		Views:       r.Views,
		Likes:       r.LikesCount,
		CreatedAt:   r.CreatedAt,
	}
}
