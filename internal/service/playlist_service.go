package service

import (
	"errors"
	"strings"

	"vidtube/internal/api/dto"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrPlaylistNotFound     = errors.New("Playlist not found")
	ErrPlaylistNoPermission = errors.New("You're not authorized to modify this playlist")
	ErrPlaylistFields       = errors.New("Name and description are required")
)

type PlaylistService struct {
	playlistRepo *repository.PlaylistRepository
	videoRepo    *repository.VideoRepository
	userRepo     *repository.UserRepository
}

func NewPlaylistService(playlistRepo *repository.PlaylistRepository, videoRepo *repository.VideoRepository, userRepo *repository.UserRepository) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo, userRepo: userRepo}
}

// Create 创建播放列表
func (s *PlaylistService) Create(userID int64, req *dto.PlaylistRequest) (*dto.PlaylistInfo, error) {
	name, description, err := playlistFields(req)
	if err != nil {
		return nil, err
	}

	playlist := &model.Playlist{OwnerID: userID, Name: name, Description: description}
	if err := s.playlistRepo.Create(playlist); err != nil {
		return nil, err
	}
	return toPlaylistInfo(playlist, 0), nil
}

// ListByUser 用户的播放列表，视频数按 viewerID 可见范围统计
func (s *PlaylistService) ListByUser(userID, viewerID int64) ([]dto.PlaylistInfo, error) {
	exists, err := s.userRepo.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	rows, err := s.playlistRepo.ListByOwner(userID, viewerID)
	if err != nil {
		return nil, err
	}

	playlists := make([]dto.PlaylistInfo, 0, len(rows))
	for i := range rows {
		playlists = append(playlists, rowToPlaylistInfo(&rows[i]))
	}
	return playlists, nil
}

// GetByID 播放列表详情，视频按加入顺序，他人未公开的视频不返回；空列表也返回成功
func (s *PlaylistService) GetByID(playlistID, viewerID int64) (*dto.PlaylistDetail, error) {
	row, err := s.playlistRepo.GetRowByID(playlistID, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}

	videoRows, err := s.playlistRepo.ListVideos(playlistID, viewerID)
	if err != nil {
		return nil, err
	}

	videos := make([]dto.PlaylistVideoItem, 0, len(videoRows))
	for _, v := range videoRows {
		videos = append(videos, dto.PlaylistVideoItem{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			VideoFile:   v.VideoFile,
			Thumbnail:   v.Thumbnail,
			Duration:    v.Duration,
			Views:       v.Views,
			Owner: dto.OwnerSummary{
				ID:       v.OwnerID,
				Username: v.OwnerUsername,
				FullName: v.OwnerFullName,
				Avatar:   v.OwnerAvatar,
			},
		})
	}

	return &dto.PlaylistDetail{
		PlaylistInfo: rowToPlaylistInfo(row),
		Videos:       videos,
	}, nil
}

// AddVideo 添加视频到播放列表。已存在时 added=false，列表不变
func (s *PlaylistService) AddVideo(userID, playlistID, videoID int64) (*dto.PlaylistDetail, bool, error) {
	if _, err := s.getOwnedPlaylist(userID, playlistID); err != nil {
		return nil, false, err
	}

	visible, err := s.videoRepo.VisibleTo(videoID, userID)
	if err != nil {
		return nil, false, err
	}
	if !visible {
		return nil, false, ErrVideoNotFound
	}

	added, err := s.playlistRepo.AddVideo(playlistID, videoID)
	if err != nil {
		return nil, false, err
	}

	detail, err := s.GetByID(playlistID, userID)
	if err != nil {
		return nil, false, err
	}
	return detail, added, nil
}

// RemoveVideo 从播放列表移除视频。不在列表中时 removed=false
func (s *PlaylistService) RemoveVideo(userID, playlistID, videoID int64) (*dto.PlaylistDetail, bool, error) {
	if _, err := s.getOwnedPlaylist(userID, playlistID); err != nil {
		return nil, false, err
	}

	removed, err := s.playlistRepo.RemoveVideo(playlistID, videoID)
	if err != nil {
		return nil, false, err
	}

	detail, err := s.GetByID(playlistID, userID)
	if err != nil {
		return nil, false, err
	}
	return detail, removed, nil
}

// Update 修改名称和描述（仅作者）
func (s *PlaylistService) Update(userID, playlistID int64, req *dto.PlaylistRequest) (*dto.PlaylistInfo, error) {
	name, description, err := playlistFields(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.getOwnedPlaylist(userID, playlistID); err != nil {
		return nil, err
	}

	if _, err := s.playlistRepo.Update(playlistID, name, description); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}

	row, err := s.playlistRepo.GetRowByID(playlistID, userID)
	if err != nil {
		return nil, err
	}
	info := rowToPlaylistInfo(row)
	return &info, nil
}

// Delete 删除播放列表（仅作者）
func (s *PlaylistService) Delete(userID, playlistID int64) error {
	if _, err := s.getOwnedPlaylist(userID, playlistID); err != nil {
		return err
	}

	deleted, err := s.playlistRepo.Delete(playlistID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPlaylistNotFound
	}

	logger.Info("Playlist deleted", zap.Int64("playlist_id", playlistID), zap.Int64("user_id", userID))
	return nil
}

func (s *PlaylistService) getOwnedPlaylist(userID, playlistID int64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	if playlist.OwnerID != userID {
		return nil, ErrPlaylistNoPermission
	}
	return playlist, nil
}

func playlistFields(req *dto.PlaylistRequest) (string, string, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" {
		return "", "", ErrPlaylistFields
	}
	return name, description, nil
}

func toPlaylistInfo(p *model.Playlist, videosCount int64) *dto.PlaylistInfo {
	return &dto.PlaylistInfo{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		VideosCount: videosCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func rowToPlaylistInfo(r *repository.PlaylistRow) dto.PlaylistInfo {
	return dto.PlaylistInfo{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description,
		VideosCount: r.VideosCount,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
