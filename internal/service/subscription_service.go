package service

import (
	"errors"

	"vidtube/internal/api/dto"
	"vidtube/internal/repository"
)

var ErrSelfSubscribe = errors.New("You cannot subscribe to your own channel")

type SubscriptionService struct {
	subRepo  *repository.SubscriptionRepository
	userRepo *repository.UserRepository
}

func NewSubscriptionService(subRepo *repository.SubscriptionRepository, userRepo *repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo}
}

// Toggle 订阅/取消订阅频道
func (s *SubscriptionService) Toggle(subscriberID, channelID int64) (*dto.SubscriptionToggleData, error) {
	if subscriberID == channelID {
		return nil, ErrSelfSubscribe
	}
	if err := s.ensureChannel(channelID); err != nil {
		return nil, err
	}

	sub, subscribed, err := s.subRepo.Toggle(subscriberID, channelID)
	if err != nil {
		return nil, err
	}

	data := &dto.SubscriptionToggleData{Subscribed: subscribed}
	if subscribed && sub != nil {
		data.Subscription = &dto.SubscriptionInfo{
			ID:           sub.ID,
			SubscriberID: sub.SubscriberID,
			ChannelID:    sub.ChannelID,
			CreatedAt:    sub.CreatedAt,
		}
	}
	return data, nil
}

// ListSubscribers 频道的订阅者，频道不存在时返回 404
func (s *SubscriptionService) ListSubscribers(channelID int64) ([]dto.SubscriberSummary, error) {
	if err := s.ensureChannel(channelID); err != nil {
		return nil, err
	}

	rows, err := s.subRepo.ListSubscribers(channelID)
	if err != nil {
		return nil, err
	}

	subscribers := make([]dto.SubscriberSummary, 0, len(rows))
	for _, r := range rows {
		subscribers = append(subscribers, dto.SubscriberSummary{
			ID:           r.ID,
			Username:     r.Username,
			FullName:     r.FullName,
			Avatar:       r.Avatar,
			SubscribedAt: r.SubscribedAt,
		})
	}
	return subscribers, nil
}

// ListSubscribedChannels 当前用户订阅的频道（附各频道订阅数）
func (s *SubscriptionService) ListSubscribedChannels(subscriberID int64) ([]dto.ChannelSummary, error) {
	rows, err := s.subRepo.ListSubscribedChannels(subscriberID)
	if err != nil {
		return nil, err
	}

	channels := make([]dto.ChannelSummary, 0, len(rows))
	for _, r := range rows {
		channels = append(channels, dto.ChannelSummary{
			ID:               r.ID,
			Username:         r.Username,
			FullName:         r.FullName,
			Avatar:           r.Avatar,
			SubscribersCount: r.SubscribersCount,
			SubscribedAt:     r.SubscribedAt,
		})
	}
	return channels, nil
}

func (s *SubscriptionService) ensureChannel(channelID int64) error {
	exists, err := s.userRepo.Exists(channelID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrChannelNotFound
	}
	return nil
}
