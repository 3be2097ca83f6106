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
	ErrCommentNotFound     = errors.New("Comment not found")
	ErrCommentNoPermission = errors.New("You're not authorized to modify this comment")
	ErrCommentEmpty        = errors.New("Comment content is required")
)

const defaultCommentPageSize = 10

type CommentService struct {
	commentRepo *repository.CommentRepository
	videoRepo   *repository.VideoRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, videoRepo *repository.VideoRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo}
}

// Add 发表评论，视频须对评论者可见
func (s *CommentService) Add(userID, videoID int64, req *dto.CommentRequest) (*dto.CommentInfo, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrCommentEmpty
	}

	visible, err := s.videoRepo.VisibleTo(videoID, userID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrVideoNotFound
	}

	comment := &model.Comment{
		OwnerID: userID,
		VideoID: videoID,
		Content: content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	logger.Info("Comment created", zap.Int64("comment_id", comment.ID), zap.Int64("video_id", videoID))
	return toCommentInfo(comment), nil
}

// ListByVideo 分页获取视频评论，最新在前。没有评论时返回空列表
func (s *CommentService) ListByVideo(videoID, viewerID int64, page, limit int) (*dto.CommentListData, error) {
	visible, err := s.videoRepo.VisibleTo(videoID, viewerID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrVideoNotFound
	}

	page, limit = normalizePage(page, limit, defaultCommentPageSize)
	rows, total, err := s.commentRepo.ListByVideo(videoID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	comments := make([]dto.CommentInfo, 0, len(rows))
	for _, r := range rows {
		comments = append(comments, dto.CommentInfo{
			ID:         r.ID,
			VideoID:    r.VideoID,
			OwnerID:    r.OwnerID,
			Content:    r.Content,
			LikesCount: r.LikesCount,
			Owner: &dto.OwnerSummary{
				ID:       r.OwnerID,
				Username: r.OwnerUsername,
				FullName: r.OwnerFullName,
				Avatar:   r.OwnerAvatar,
			},
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}

	return &dto.CommentListData{
		Comments:   comments,
		Total:      total,
		Page:       page,
		PageSize:   limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Update 修改评论（仅作者）
func (s *CommentService) Update(userID, commentID int64, req *dto.CommentRequest) (*dto.CommentInfo, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrCommentEmpty
	}
	if _, err := s.getOwnedComment(userID, commentID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.UpdateContent(commentID, content)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return toCommentInfo(comment), nil
}

// Delete 删除评论（仅作者），评论的点赞一并删除
func (s *CommentService) Delete(userID, commentID int64) error {
	if _, err := s.getOwnedComment(userID, commentID); err != nil {
		return err
	}

	deleted, err := s.commentRepo.Delete(commentID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCommentNotFound
	}

	logger.Info("Comment deleted", zap.Int64("comment_id", commentID), zap.Int64("user_id", userID))
	return nil
}

func (s *CommentService) getOwnedComment(userID, commentID int64) (*model.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.OwnerID != userID {
		return nil, ErrCommentNoPermission
	}
	return comment, nil
}

func toCommentInfo(c *model.Comment) *dto.CommentInfo {
	return &dto.CommentInfo{
		ID:        c.ID,
		VideoID:   c.VideoID,
		OwnerID:   c.OwnerID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
