package model

import "time"

// Subscription 订阅关系：subscriber 订阅 channel
type Subscription struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:订阅记录ID" json:"id"`
	SubscriberID int64     `gorm:"not null;uniqueIndex:uq_subscriber_channel,priority:1;comment:订阅者ID" json:"subscriber"`
	ChannelID    int64     `gorm:"not null;uniqueIndex:uq_subscriber_channel,priority:2;index:idx_subscriptions_channel_id;comment:频道ID" json:"channel"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
