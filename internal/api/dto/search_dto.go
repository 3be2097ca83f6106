package dto

// SearchVideoRequest 搜索请求参数
type SearchVideoRequest struct {
	Q        string `form:"q"`
	OwnerID  *int64 `form:"owner_id"`
	Sort     string `form:"sort"` // relevance, time, views
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// SearchVideoInfo 搜索结果中的视频信息
type SearchVideoInfo struct {
	ID          int64               `json:"id"`
	OwnerID     int64               `json:"owner_id"`
	OwnerName   string              `json:"owner_name"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	VideoFile   string              `json:"video_file"`
	Thumbnail   string              `json:"thumbnail"`
	Duration    float64             `json:"duration"`
	Views       int64               `json:"views"`
	Highlight   map[string][]string `json:"highlight,omitempty"`
}

// SearchVideoData 搜索结果
type SearchVideoData struct {
	Videos     []SearchVideoInfo `json:"videos"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int64             `json:"total_pages"`
}
