package dto

import "time"

// PlaylistRequest 创建/更新播放列表
type PlaylistRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
}

// PlaylistInfo 播放列表信息
type PlaylistInfo struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	VideosCount int64     `json:"videos_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaylistVideoItem 播放列表内嵌的视频摘要
type PlaylistVideoItem struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	VideoFile   string       `json:"video_file"`
	Thumbnail   string       `json:"thumbnail"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	Owner       OwnerSummary `json:"owner"`
}

// PlaylistDetail 播放列表详情
type PlaylistDetail struct {
	PlaylistInfo
	Videos []PlaylistVideoItem `json:"videos"`
}
