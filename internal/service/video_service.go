package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"vidtube/internal/api/dto"
	infraKafka "vidtube/internal/infra/kafka"
	"vidtube/internal/media"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound       = errors.New("No such video")
	ErrVideoNoPermission   = errors.New("You're not authorized to modify this video")
	ErrVideoFieldsRequired = errors.New("Please provide all the content fields")
	ErrNothingToUpdate     = errors.New("Nothing to update")
	ErrInvalidTrimRange    = errors.New("Invalid trim range, expected 0 <= start < end <= duration")
)

const defaultVideoPageSize = 10

type VideoService struct {
	videoRepo *repository.VideoRepository
	userRepo  *repository.UserRepository
	store     media.Store
	events    VideoEventPublisher
}

func NewVideoService(videoRepo *repository.VideoRepository, userRepo *repository.UserRepository, store media.Store, events VideoEventPublisher) *VideoService {
	return &VideoService{videoRepo: videoRepo, userRepo: userRepo, store: store, events: events}
}

// Upload 上传视频和缩略图，创建已公开的视频记录
func (s *VideoService) Upload(ctx context.Context, ownerID int64, req *dto.VideoUploadRequest, videoPath, thumbnailPath string) (*dto.VideoInfo, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" || videoPath == "" || thumbnailPath == "" {
		return nil, ErrVideoFieldsRequired
	}

	videoAsset, err := s.store.Upload(ctx, videoPath)
	if err != nil {
		return nil, err
	}
	thumbAsset, err := s.store.Upload(ctx, thumbnailPath)
	if err != nil {
		return nil, err
	}

	video := &model.Video{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		VideoFile:   videoAsset.URL,
		Thumbnail:   thumbAsset.URL,
		Duration:    videoAsset.Duration,
		IsPublished: true,
	}
	if err := s.videoRepo.Create(video); err != nil {
		return nil, err
	}

	logger.Info("Video uploaded",
		zap.Int64("video_id", video.ID),
		zap.Int64("owner_id", ownerID),
		zap.Float64("duration", video.Duration),
	)
	s.publish(ctx, infraKafka.VideoEventUpserted, video.ID)
	return toVideoInfo(video), nil
}

// GetByID 视频详情，未公开的视频只有作者可见
func (s *VideoService) GetByID(videoID, viewerID int64) (*dto.VideoInfo, error) {
	row, err := s.videoRepo.GetRowByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if !row.IsPublished && row.OwnerID != viewerID {
		return nil, ErrVideoNotFound
	}
	return rowToVideoInfo(row), nil
}

// ListVideos 分页查询视频。查看自己的频道时包含未公开视频
func (s *VideoService) ListVideos(q *dto.VideoListQuery, viewerID int64) (*dto.VideoListData, error) {
	page, limit := normalizePage(q.Page, q.Limit, defaultVideoPageSize)

	filter := repository.VideoFilter{
		OwnerID:       q.UserID,
		Search:        strings.TrimSpace(q.Query),
		PublishedOnly: q.UserID == nil || *q.UserID != viewerID,
		SortBy:        q.SortBy,
		SortDesc:      !strings.EqualFold(q.SortType, "asc"),
		Skip:          (page - 1) * limit,
		Limit:         limit,
	}

	rows, total, err := s.videoRepo.ListVideos(filter)
	if err != nil {
		return nil, err
	}
	return buildVideoListData(rows, total, page, limit), nil
}

// ListPublished 已公开视频，最新在前
func (s *VideoService) ListPublished(page, limit int) (*dto.VideoListData, error) {
	page, limit = normalizePage(page, limit, defaultVideoPageSize)
	rows, total, err := s.videoRepo.ListVideos(repository.VideoFilter{
		PublishedOnly: true,
		SortBy:        "created_at",
		SortDesc:      true,
		Skip:          (page - 1) * limit,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}
	return buildVideoListData(rows, total, page, limit), nil
}

// UpdateDetails 更新标题/描述/缩略图，未提供的字段保留原值
func (s *VideoService) UpdateDetails(ctx context.Context, userID, videoID int64, req *dto.VideoUpdateRequest, thumbnailPath string) (*dto.VideoInfo, error) {
	video, err := s.getOwnedVideo(userID, videoID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if len(updates) == 0 && thumbnailPath == "" {
		return nil, ErrNothingToUpdate
	}

	if thumbnailPath != "" {
		url, err := s.replaceThumbnail(ctx, video, thumbnailPath)
		if err != nil {
			return nil, err
		}
		updates["thumbnail"] = url
	}

	updated, err := s.videoRepo.Update(videoID, updates)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, infraKafka.VideoEventUpserted, videoID)
	return toVideoInfo(updated), nil
}

// UpdateContent 裁剪视频内容，可同时替换缩略图
func (s *VideoService) UpdateContent(ctx context.Context, userID, videoID int64, start, end float64, thumbnailPath string) (*dto.VideoInfo, error) {
	video, err := s.getOwnedVideo(userID, videoID)
	if err != nil {
		return nil, err
	}

	if media.ValidateRange(start, end) != nil || (video.Duration > 0 && end > video.Duration) {
		return nil, ErrInvalidTrimRange
	}

	asset, err := s.store.Trim(ctx, video.VideoFile, start, end)
	if err != nil {
		if errors.Is(err, media.ErrInvalidRange) {
			return nil, ErrInvalidTrimRange
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"video_file": asset.URL,
		"duration":   asset.Duration,
	}
	if thumbnailPath != "" {
		url, err := s.replaceThumbnail(ctx, video, thumbnailPath)
		if err != nil {
			return nil, err
		}
		updates["thumbnail"] = url
	}

	updated, err := s.videoRepo.Update(videoID, updates)
	if err != nil {
		return nil, err
	}

	logger.Info("Video trimmed", zap.Int64("video_id", videoID), zap.Float64("start", start), zap.Float64("end", end))
	s.publish(ctx, infraKafka.VideoEventUpserted, videoID)
	return toVideoInfo(updated), nil
}

// TogglePublishStatus 切换公开状态
func (s *VideoService) TogglePublishStatus(ctx context.Context, userID, videoID int64) (*dto.VideoInfo, error) {
	video, err := s.getOwnedVideo(userID, videoID)
	if err != nil {
		return nil, err
	}

	updated, err := s.videoRepo.Update(videoID, map[string]interface{}{"is_published": !video.IsPublished})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, infraKafka.VideoEventUpserted, videoID)
	return toVideoInfo(updated), nil
}

// Delete 依次删除远端缩略图、视频文件，最后删除数据库记录及其关联数据
func (s *VideoService) Delete(ctx context.Context, userID, videoID int64) error {
	video, err := s.getOwnedVideo(userID, videoID)
	if err != nil {
		return err
	}

	if err := s.destroyAsset(ctx, video.ID, video.Thumbnail); err != nil {
		return err
	}
	if err := s.destroyAsset(ctx, video.ID, video.VideoFile); err != nil {
		return err
	}

	deleted, err := s.videoRepo.Delete(videoID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrVideoNotFound
	}

	logger.Info("Video deleted", zap.Int64("video_id", videoID), zap.Int64("owner_id", userID))
	s.publish(ctx, infraKafka.VideoEventDeleted, videoID)
	return nil
}

// AddToWatchHistory 记录观看并增加播放量
func (s *VideoService) AddToWatchHistory(userID, videoID int64) error {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	if !video.IsPublished && video.OwnerID != userID {
		return ErrVideoNotFound
	}

	if err := s.videoRepo.IncrementViews(videoID); err != nil {
		return err
	}
	return s.userRepo.UpsertWatchHistory(userID, videoID, time.Now())
}

func (s *VideoService) getOwnedVideo(userID, videoID int64) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if video.OwnerID != userID {
		return nil, ErrVideoNoPermission
	}
	return video, nil
}

// destroyAsset 删除远端文件；不属于本存储的地址视为无需删除
func (s *VideoService) destroyAsset(ctx context.Context, videoID int64, url string) error {
	err := s.store.Destroy(ctx, url)
	if errors.Is(err, media.ErrInvalidURL) {
		logger.Warn("Skip destroying unmanaged media", zap.Int64("video_id", videoID), zap.String("url", url))
		return nil
	}
	return err
}

// replaceThumbnail 删除旧缩略图后上传新的
func (s *VideoService) replaceThumbnail(ctx context.Context, video *model.Video, localPath string) (string, error) {
	if err := s.store.Destroy(ctx, video.Thumbnail); err != nil {
		logger.Warn("Destroy old thumbnail failed", zap.Int64("video_id", video.ID), zap.Error(err))
	}
	asset, err := s.store.Upload(ctx, localPath)
	if err != nil {
		return "", err
	}
	return asset.URL, nil
}

func (s *VideoService) publish(ctx context.Context, eventType string, videoID int64) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishVideoEvent(ctx, eventType, videoID); err != nil {
		logger.Warn("Publish video event failed",
			zap.String("type", eventType),
			zap.Int64("video_id", videoID),
			zap.Error(err),
		)
	}
}

func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}

func toVideoInfo(v *model.Video) *dto.VideoInfo {
	return &dto.VideoInfo{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func rowToVideoInfo(r *repository.VideoRow) *dto.VideoInfo {
	return &dto.VideoInfo{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Title:       r.Title,
		Description: r.Description,
		VideoFile:   r.VideoFile,
		Thumbnail:   r.Thumbnail,
		Duration:    r.Duration,
		Views:       r.Views,
		IsPublished: r.IsPublished,
		LikesCount:  r.LikesCount,
		Owner: &dto.OwnerSummary{
			ID:       r.OwnerID,
			Username: r.OwnerUsername,
			FullName: r.OwnerFullName,
			Avatar:   r.OwnerAvatar,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func buildVideoListData(rows []repository.VideoRow, total int64, page, pageSize int) *dto.VideoListData {
	items := make([]dto.VideoInfo, 0, len(rows))
	for i := range rows {
		items = append(items, *rowToVideoInfo(&rows[i]))
	}
	return &dto.VideoListData{
		Videos:     items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}
}
