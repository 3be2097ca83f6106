package repository

import (
	"time"

	"vidtube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// SubscriberRow 订阅者
type SubscriberRow struct {
	ID           int64
	Username     string
	FullName     string
	Avatar       string
	SubscribedAt time.Time
}

// SubscribedChannelRow 已订阅频道 + 频道订阅数
type SubscribedChannelRow struct {
	ID               int64
	Username         string
	FullName         string
	Avatar           string
	SubscribersCount int64
	SubscribedAt     time.Time
}

// Toggle 在一个事务里切换订阅，返回 subscribed=true 时附带订阅记录；并发插入冲突时读回已存在的那条
func (r *SubscriptionRepository) Toggle(subscriberID, channelID int64) (*model.Subscription, bool, error) {
	var (
		sub        *model.Subscription
		subscribed bool
	)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
			Delete(&model.Subscription{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		sub = &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
		result = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(sub)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			sub = &model.Subscription{}
			if err := tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
				First(sub).Error; err != nil {
				return err
			}
		}
		subscribed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return sub, subscribed, nil
}

// ListSubscribers 频道的订阅者，最近订阅在前
func (r *SubscriptionRepository) ListSubscribers(channelID int64) ([]SubscriberRow, error) {
	var rows []SubscriberRow
	err := r.db.Model(&model.Subscription{}).
		Select("users.id, users.username, users.full_name, users.avatar, subscriptions.created_at AS subscribed_at").
		Joins("JOIN users ON users.id = subscriptions.subscriber_id").
		Where("subscriptions.channel_id = ?", channelID).
		Order("subscriptions.created_at DESC").
		Order("subscriptions.id DESC").
		Scan(&rows).Error
	return rows, err
}

// ListSubscribedChannels 用户订阅的频道，附带每个频道的订阅数
func (r *SubscriptionRepository) ListSubscribedChannels(subscriberID int64) ([]SubscribedChannelRow, error) {
	var rows []SubscribedChannelRow
	err := r.db.Model(&model.Subscription{}).
		Select(`users.id, users.username, users.full_name, users.avatar,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = users.id) AS subscribers_count,
			subscriptions.created_at AS subscribed_at`).
		Joins("JOIN users ON users.id = subscriptions.channel_id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Order("subscriptions.created_at DESC").
		Order("subscriptions.id DESC").
		Scan(&rows).Error
	return rows, err
}
