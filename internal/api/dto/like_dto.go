package dto

import "time"

// LikeInfo 点赞记录
type LikeInfo struct {
	ID         int64     `json:"id"`
	LikedBy    int64     `json:"liked_by"`
	TargetType string    `json:"target_type"`
	TargetID   int64     `json:"target_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// LikeToggleData 点赞切换结果
type LikeToggleData struct {
	Liked bool      `json:"liked"`
	Like  *LikeInfo `json:"like,omitempty"`
}

// LikedVideo 点赞视频列表投影
type LikedVideo struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	VideoFile   string  `json:"video_file"`
	Thumbnail   string  `json:"thumbnail"`
	Duration    float64 `json:"duration"`
	Views       int64   `json:"views"`
}

// LikedVideosData 点赞视频列表
type LikedVideosData struct {
	LikedVideos []LikedVideo `json:"liked_videos"`
}
