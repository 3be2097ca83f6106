package service

import (
	"vidtube/internal/api/dto"
	"vidtube/internal/model"
	"vidtube/internal/repository"
)

type LikeService struct {
	likeRepo    *repository.LikeRepository
	videoRepo   *repository.VideoRepository
	commentRepo *repository.CommentRepository
	tweetRepo   *repository.TweetRepository
}

func NewLikeService(
	likeRepo *repository.LikeRepository,
	videoRepo *repository.VideoRepository,
	commentRepo *repository.CommentRepository,
	tweetRepo *repository.TweetRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

// ToggleVideoLike 点赞/取消点赞视频
func (s *LikeService) ToggleVideoLike(userID, videoID int64) (*dto.LikeToggleData, error) {
	visible, err := s.videoRepo.VisibleTo(videoID, userID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrVideoNotFound
	}
	return s.toggle(userID, model.LikeTargetVideo, videoID)
}

// ToggleTweetLike 点赞/取消点赞动态
func (s *LikeService) ToggleTweetLike(userID, tweetID int64) (*dto.LikeToggleData, error) {
	exists, err := s.tweetRepo.Exists(tweetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTweetNotFound
	}
	return s.toggle(userID, model.LikeTargetTweet, tweetID)
}

// ToggleCommentLike 点赞/取消点赞评论，评论所属视频须对用户可见
func (s *LikeService) ToggleCommentLike(userID, commentID int64) (*dto.LikeToggleData, error) {
	visible, err := s.commentRepo.VisibleTo(commentID, userID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrCommentNotFound
	}
	return s.toggle(userID, model.LikeTargetComment, commentID)
}

// GetLikedVideos 用户点赞过的视频
func (s *LikeService) GetLikedVideos(userID int64) (*dto.LikedVideosData, error) {
	rows, err := s.likeRepo.ListLikedVideos(userID)
	if err != nil {
		return nil, err
	}

	videos := make([]dto.LikedVideo, 0, len(rows))
	for _, r := range rows {
		videos = append(videos, dto.LikedVideo{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			VideoFile:   r.VideoFile,
			Thumbnail:   r.Thumbnail,
			Duration:    r.Duration,
			Views:       r.Views,
		})
	}
	return &dto.LikedVideosData{LikedVideos: videos}, nil
}

func (s *LikeService) toggle(userID int64, target model.LikeTarget, targetID int64) (*dto.LikeToggleData, error) {
	like, liked, err := s.likeRepo.Toggle(userID, target, targetID)
	if err != nil {
		return nil, err
	}

	data := &dto.LikeToggleData{Liked: liked}
	if like != nil && liked {
		data.Like = &dto.LikeInfo{
			ID:         like.ID,
			LikedBy:    like.UserID,
			TargetType: string(like.TargetType),
			TargetID:   like.TargetID,
			CreatedAt:  like.CreatedAt,
		}
	}
	return data, nil
}
