package model

import "time"

// Video 视频模型
type Video struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:视频标识" json:"id"`
	OwnerID     int64     `gorm:"not null;index:idx_videos_owner_id;comment:上传者ID" json:"owner_id"`
	Title       string    `gorm:"size:200;not null;comment:视频标题" json:"title"`
	Description string    `gorm:"type:text;not null;comment:视频描述" json:"description"`
	VideoFile   string    `gorm:"size:500;not null;comment:视频地址" json:"video_file"`
	Thumbnail   string    `gorm:"size:500;not null;comment:缩略图地址" json:"thumbnail"`
	Duration    float64   `gorm:"not null;default:0;comment:时长（秒）" json:"duration"`
	Views       int64     `gorm:"not null;default:0;comment:播放量" json:"views"`
	IsPublished bool      `gorm:"not null;default:true;index:idx_videos_published;comment:是否公开" json:"is_published"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_videos_created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}
