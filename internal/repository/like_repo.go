package repository

import (
	"vidtube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// LikedVideoRow 点赞视频投影
type LikedVideoRow struct {
	ID          int64
	Title       string
	Description string
	VideoFile   string
	Thumbnail   string
	Duration    float64
	Views       int64
}

// Toggle 在一个事务里切换点赞：删除成功即取消点赞，否则插入。
// 返回 liked=true 时附带点赞记录；并发插入冲突时读回已存在的那条。
func (r *LikeRepository) Toggle(userID int64, target model.LikeTarget, targetID int64) (*model.Like, bool, error) {
	var (
		like  *model.Like
		liked bool
	)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, target, targetID).
			Delete(&model.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		like = &model.Like{UserID: userID, TargetType: target, TargetID: targetID}
		result = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			like = &model.Like{}
			if err := tx.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, target, targetID).
				First(like).Error; err != nil {
				return err
			}
		}
		liked = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return like, liked, nil
}

// ListLikedVideos 用户点赞过且仍可见的视频，最近点赞在前
func (r *LikeRepository) ListLikedVideos(userID int64) ([]LikedVideoRow, error) {
	var rows []LikedVideoRow
	err := r.db.Model(&model.Like{}).
		Select("videos.id, videos.title, videos.description, videos.video_file, videos.thumbnail, videos.duration, videos.views").
		Joins("JOIN videos ON videos.id = likes.target_id").
		Where("likes.user_id = ? AND likes.target_type = ?", userID, model.LikeTargetVideo).
		Where(videoVisibleSQL, true, userID).
		Order("likes.created_at DESC").
		Order("likes.id DESC").
		Scan(&rows).Error
	return rows, err
}
