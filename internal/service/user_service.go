package service

import (
	"context"
	"errors"
	"strings"

	"vidtube/internal/api/dto"
	"vidtube/internal/media"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken       = errors.New("Email is already in use")
	ErrImageRequired    = errors.New("Image file is missing")
	ErrUsernameRequired = errors.New("username is missing")
	ErrChannelNotFound  = errors.New("Channel doesn't exist")
)

type UserService struct {
	userRepo *repository.UserRepository
	store    media.Store
}

func NewUserService(userRepo *repository.UserRepository, store media.Store) *UserService {
	return &UserService{userRepo: userRepo, store: store}
}

// GetCurrentUser 获取当前登录用户
func (s *UserService) GetCurrentUser(userID int64) (*dto.UserInfo, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

// UpdateAccountDetails 更新昵称和邮箱（均为必填）
func (s *UserService) UpdateAccountDetails(userID int64, req *dto.UpdateAccountRequest) (*dto.UserInfo, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if fullName == "" || email == "" {
		return nil, ErrMissingFields
	}

	taken, err := s.userRepo.ExistsByEmailExcept(email, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	user, err := s.userRepo.Update(userID, map[string]interface{}{
		"full_name": fullName,
		"email":     email,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// UpdateAvatar 删除旧头像，上传新头像并更新引用
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, localPath string) (*dto.UserInfo, error) {
	return s.replaceImage(ctx, userID, localPath, "avatar", func(u *model.User) string { return u.Avatar })
}

// UpdateCoverImage 删除旧封面，上传新封面并更新引用
func (s *UserService) UpdateCoverImage(ctx context.Context, userID int64, localPath string) (*dto.UserInfo, error) {
	return s.replaceImage(ctx, userID, localPath, "cover_image", func(u *model.User) string { return u.CoverImage })
}

// GetChannelProfile 频道主页（订阅数、关注数、当前用户是否已订阅）
func (s *UserService) GetChannelProfile(username string, viewerID int64) (*dto.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, ErrUsernameRequired
	}

	row, err := s.userRepo.GetChannelProfile(username, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	return &dto.ChannelProfile{
		ID:                        row.ID,
		Username:                  row.Username,
		FullName:                  row.FullName,
		Email:                     row.Email,
		Avatar:                    row.Avatar,
		CoverImage:                row.CoverImage,
		SubscribersCount:          row.SubscribersCount,
		ChannelsSubscribedToCount: row.ChannelsSubscribedToCount,
		IsSubscribed:              row.IsSubscribed,
	}, nil
}

// GetWatchHistory 观看记录，最近观看在前
func (s *UserService) GetWatchHistory(userID int64) ([]dto.WatchHistoryItem, error) {
	rows, err := s.userRepo.ListWatchHistory(userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.WatchHistoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.WatchHistoryItem{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			VideoFile:   r.VideoFile,
			Thumbnail:   r.Thumbnail,
			Duration:    r.Duration,
			Views:       r.Views,
			Owner: dto.OwnerSummary{
				ID:       r.OwnerID,
				Username: r.OwnerUsername,
				FullName: r.OwnerFullName,
				Avatar:   r.OwnerAvatar,
			},
			WatchedAt: r.WatchedAt,
		})
	}
	return items, nil
}

func (s *UserService) replaceImage(ctx context.Context, userID int64, localPath, column string, current func(*model.User) string) (*dto.UserInfo, error) {
	if localPath == "" {
		return nil, ErrImageRequired
	}

	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Destroy(ctx, current(user)); err != nil {
		logger.Warn("Destroy old image failed",
			zap.Int64("user_id", userID),
			zap.String("field", column),
			zap.Error(err),
		)
	}

	asset, err := s.store.Upload(ctx, localPath)
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.Update(userID, map[string]interface{}{column: asset.URL})
	if err != nil {
		return nil, err
	}
	return toUserInfo(updated), nil
}

func (s *UserService) getUser(userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
