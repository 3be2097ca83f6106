package service

import (
	"errors"

	"vidtube/internal/api/dto"
	"vidtube/internal/repository"

	"gorm.io/gorm"
)

type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
	videoRepo     *repository.VideoRepository
}

func NewDashboardService(dashboardRepo *repository.DashboardRepository, videoRepo *repository.VideoRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo, videoRepo: videoRepo}
}

// GetChannelStats 当前用户的频道统计
func (s *DashboardService) GetChannelStats(userID int64) (*dto.ChannelStats, error) {
	row, err := s.dashboardRepo.GetChannelStats(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &dto.ChannelStats{
		Username:         row.Username,
		FullName:         row.FullName,
		Avatar:           row.Avatar,
		CoverImage:       row.CoverImage,
		TotalVideos:      row.TotalVideos,
		TotalViews:       row.TotalViews,
		TotalLikes:       row.TotalLikes,
		TotalSubscribers: row.TotalSubscribers,
	}, nil
}

// GetChannelVideos 当前用户的全部视频（含未公开）及点赞数
func (s *DashboardService) GetChannelVideos(userID int64) ([]dto.VideoInfo, error) {
	rows, err := s.videoRepo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	videos := make([]dto.VideoInfo, 0, len(rows))
	for i := range rows {
		videos = append(videos, *rowToVideoInfo(&rows[i]))
	}
	return videos, nil
}
