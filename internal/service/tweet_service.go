package service

import (
	"errors"
	"strings"

	"vidtube/internal/api/dto"
	"vidtube/internal/model"
	"vidtube/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrTweetNotFound     = errors.New("Tweet not found")
	ErrTweetNoPermission = errors.New("You're not authorized to modify this tweet")
	ErrTweetEmpty        = errors.New("Content is required")
)

type TweetService struct {
	tweetRepo *repository.TweetRepository
	userRepo  *repository.UserRepository
}

func NewTweetService(tweetRepo *repository.TweetRepository, userRepo *repository.UserRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

// Create 发布动态
func (s *TweetService) Create(userID int64, req *dto.TweetRequest) (*dto.TweetInfo, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrTweetEmpty
	}

	tweet := &model.Tweet{OwnerID: userID, Content: content}
	if err := s.tweetRepo.Create(tweet); err != nil {
		return nil, err
	}
	return toTweetInfo(tweet), nil
}

// ListByUser 用户的动态，最新在前
func (s *TweetService) ListByUser(userID int64) ([]dto.TweetInfo, error) {
	exists, err := s.userRepo.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	rows, err := s.tweetRepo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}

	tweets := make([]dto.TweetInfo, 0, len(rows))
	for _, r := range rows {
		tweets = append(tweets, dto.TweetInfo{
			ID:         r.ID,
			OwnerID:    r.OwnerID,
			Content:    r.Content,
			LikesCount: r.LikesCount,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		})
	}
	return tweets, nil
}

// Update 修改动态（仅作者）
func (s *TweetService) Update(userID, tweetID int64, req *dto.TweetRequest) (*dto.TweetInfo, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrTweetEmpty
	}
	if _, err := s.getOwnedTweet(userID, tweetID); err != nil {
		return nil, err
	}

	tweet, err := s.tweetRepo.UpdateContent(tweetID, content)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	return toTweetInfo(tweet), nil
}

// Delete 删除动态（仅作者）
func (s *TweetService) Delete(userID, tweetID int64) error {
	if _, err := s.getOwnedTweet(userID, tweetID); err != nil {
		return err
	}
	deleted, err := s.tweetRepo.Delete(tweetID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTweetNotFound
	}
	return nil
}

func (s *TweetService) getOwnedTweet(userID, tweetID int64) (*model.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(tweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	if tweet.OwnerID != userID {
		return nil, ErrTweetNoPermission
	}
	return tweet, nil
}

func toTweetInfo(t *model.Tweet) *dto.TweetInfo {
	return &dto.TweetInfo{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
