package dto

import "time"

// VideoUploadRequest 上传视频（multipart，文件字段 videoFile / thumbnail）
type VideoUploadRequest struct {
	Title       string `form:"title" binding:"required,max=200"`
	Description string `form:"description" binding:"required"`
}

// VideoUpdateRequest 更新标题/描述，未提供的字段保持原值
type VideoUpdateRequest struct {
	Title       *string `form:"title" json:"title" binding:"omitempty,max=200"`
	Description *string `form:"description" json:"description"`
}

// VideoTrimRequest 裁剪视频内容（秒）
type VideoTrimRequest struct {
	Start *float64 `form:"start" json:"start" binding:"required"`
	End   *float64 `form:"end" json:"end" binding:"required"`
}

// VideoListQuery 视频列表查询参数
type VideoListQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Query    string `form:"query"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType"`
	UserID   *int64 `form:"userId"`
}

// VideoInfo 视频信息
type VideoInfo struct {
	ID          int64         `json:"id"`
	OwnerID     int64         `json:"owner_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	VideoFile   string        `json:"video_file"`
	Thumbnail   string        `json:"thumbnail"`
	Duration    float64       `json:"duration"`
	Views       int64         `json:"views"`
	IsPublished bool          `json:"is_published"`
	LikesCount  int64         `json:"likes_count"`
	Owner       *OwnerSummary `json:"owner,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// VideoListData 视频列表数据
type VideoListData struct {
	Videos     []VideoInfo `json:"videos"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int64       `json:"total_pages"`
}
