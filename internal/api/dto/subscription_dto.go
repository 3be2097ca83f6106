package dto

import "time"

// SubscriptionInfo 订阅记录
type SubscriptionInfo struct {
	ID           int64     `json:"id"`
	SubscriberID int64     `json:"subscriber"`
	ChannelID    int64     `json:"channel"`
	CreatedAt    time.Time `json:"created_at"`
}

// SubscriptionToggleData 订阅切换结果
type SubscriptionToggleData struct {
	Subscribed   bool              `json:"subscribed"`
	Subscription *SubscriptionInfo `json:"subscription,omitempty"`
}

// ChannelSummary 已订阅频道
type ChannelSummary struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	FullName         string    `json:"full_name"`
	Avatar           string    `json:"avatar"`
	SubscribersCount int64     `json:"subscribers_count"`
	SubscribedAt     time.Time `json:"subscribed_at"`
}

// SubscriberSummary 频道的订阅者
type SubscriberSummary struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Avatar       string    `json:"avatar"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
