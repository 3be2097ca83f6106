package model

import "time"

// WatchHistory 观看记录，同一用户同一视频只保留一行
type WatchHistory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_watched_video,priority:1" json:"user_id"`
	VideoID   int64     `gorm:"not null;uniqueIndex:uq_user_watched_video,priority:2;index:idx_watch_histories_video_id" json:"video_id"`
	WatchedAt time.Time `gorm:"not null;index:idx_watch_histories_watched_at" json:"watched_at"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
