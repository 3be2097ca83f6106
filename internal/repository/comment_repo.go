package repository

import (
	"time"

	"vidtube/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// CommentRow 评论 + 作者 + 点赞数
type CommentRow struct {
	ID            int64
	VideoID       int64
	OwnerID       int64
	Content       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	OwnerUsername string
	OwnerFullName string
	OwnerAvatar   string
	LikesCount    int64
}

// GetByID 根据 ID 获取评论
func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// VisibleTo 评论存在且所属视频对 viewerID 可见
func (r *CommentRepository) VisibleTo(id, viewerID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).
		Joins("JOIN videos ON videos.id = comments.video_id").
		Where("comments.id = ?", id).
		Where(videoVisibleSQL, true, viewerID).
		Count(&count).Error
	return count > 0, err
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// UpdateContent 更新评论内容
func (r *CommentRepository) UpdateContent(id int64, content string) (*model.Comment, error) {
	result := r.db.Model(&model.Comment{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除评论及其点赞
func (r *CommentRepository) Delete(id int64) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", model.LikeTargetComment, id).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Comment{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// ListByVideo 获取视频评论列表（分页，最新在前）
func (r *CommentRepository) ListByVideo(videoID int64, skip, limit int) ([]CommentRow, int64, error) {
	var total int64
	if err := r.db.Model(&model.Comment{}).Where("video_id = ?", videoID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []CommentRow
	err := r.db.Model(&model.Comment{}).
		Select(`comments.id, comments.video_id, comments.owner_id, comments.content,
			comments.created_at, comments.updated_at,
			users.username AS owner_username, users.full_name AS owner_full_name, users.avatar AS owner_avatar,
			(SELECT COUNT(*) FROM likes WHERE likes.target_type = 'comment' AND likes.target_id = comments.id) AS likes_count`).
		Joins("JOIN users ON users.id = comments.owner_id").
		Where("comments.video_id = ?", videoID).
		Order("comments.created_at DESC").
		Order("comments.id DESC").
		Offset(skip).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
