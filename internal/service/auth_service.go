package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"vidtube/internal/api/dto"
	"vidtube/internal/config"
	"vidtube/internal/media"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/pkg/logger"
	"vidtube/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("No such user exists")
	ErrUserExists          = errors.New("User with this email or username already exists")
	ErrMissingFields       = errors.New("All fields are required")
	ErrAvatarRequired      = errors.New("Avatar file is required")
	ErrLoginIDRequired     = errors.New("Username or email is required")
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrUnauthorizedRequest = errors.New("Unauthorized request")
	ErrInvalidRefreshToken = errors.New("Refresh token is expired or used")
	ErrInvalidOldPassword  = errors.New("Invalid old password")
)

type AuthService struct {
	userRepo *repository.UserRepository
	store    media.Store
	tokens   TokenStore
}

func NewAuthService(userRepo *repository.UserRepository, store media.Store, tokens TokenStore) *AuthService {
	return &AuthService{userRepo: userRepo, store: store, tokens: tokens}
}

// Register 注册：校验字段与唯一性，上传头像（必填）和封面（可选）后创建用户
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, avatarPath, coverPath string) (*dto.UserInfo, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if fullName == "" || email == "" || username == "" || strings.TrimSpace(req.Password) == "" {
		return nil, ErrMissingFields
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	if avatarPath == "" {
		return nil, ErrAvatarRequired
	}
	avatar, err := s.store.Upload(ctx, avatarPath)
	if err != nil {
		return nil, err
	}

	coverURL := ""
	if coverPath != "" {
		cover, err := s.store.Upload(ctx, coverPath)
		if err != nil {
			return nil, err
		}
		coverURL = cover.URL
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Avatar:     avatar.URL,
		CoverImage: coverURL,
		Password:   hashed,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return toUserInfo(user), nil
}

// Login 用户名或邮箱 + 密码登录，签发访问令牌和刷新令牌
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginData, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" && email == "" {
		return nil, ErrLoginIDRequired
	}

	user, err := s.userRepo.GetByUsernameOrEmail(username, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return &dto.LoginData{User: *toUserInfo(user), TokenPair: *tokens}, nil
}

// RefreshAccessToken 用当前刷新令牌换取新的令牌对，旧刷新令牌失效
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrUnauthorizedRequest
	}

	claims, err := utils.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	current, err := s.tokens.GetRefresh(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if current == "" || current != refreshToken {
		return nil, ErrInvalidRefreshToken
	}

	return s.issueTokens(ctx, user)
}

// Logout 删除刷新令牌，并吊销当前访问令牌直到其过期
func (s *AuthService) Logout(ctx context.Context, userID int64, accessJTI string, accessExpiresAt time.Time) error {
	if err := s.tokens.DeleteRefresh(ctx, userID); err != nil {
		return err
	}
	if accessJTI != "" {
		if err := s.tokens.RevokeAccess(ctx, accessJTI, time.Until(accessExpiresAt)); err != nil {
			return err
		}
	}
	logger.Info("User logged out", zap.Int64("user_id", userID))
	return nil
}

// ChangePassword 校验旧密码后修改
func (s *AuthService) ChangePassword(userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !utils.VerifyPassword(req.OldPassword, user.Password) {
		return ErrInvalidOldPassword
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	_, err = s.userRepo.Update(userID, map[string]interface{}{"password": hashed})
	return err
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*dto.TokenPair, error) {
	access, err := utils.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.SaveRefresh(ctx, user.ID, refresh, config.GetJWT().RefreshTTL()); err != nil {
		return nil, err
	}
	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func toUserInfo(u *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
