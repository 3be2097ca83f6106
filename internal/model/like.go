package model

import "time"

// LikeTarget 点赞目标类型
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetTweet   LikeTarget = "tweet"
	LikeTargetComment LikeTarget = "comment"
)

// Like 点赞记录，一行只指向一个目标（target_type + target_id）
type Like struct {
	ID         int64      `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	UserID     int64      `gorm:"not null;uniqueIndex:uq_user_like_target,priority:1;comment:点赞用户ID" json:"liked_by"`
	TargetType LikeTarget `gorm:"size:16;not null;uniqueIndex:uq_user_like_target,priority:2;index:idx_likes_target,priority:1;comment:目标类型" json:"target_type"`
	TargetID   int64      `gorm:"not null;uniqueIndex:uq_user_like_target,priority:3;index:idx_likes_target,priority:2;comment:目标ID" json:"target_id"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
