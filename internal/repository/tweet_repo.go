package repository

import (
	"time"

	"vidtube/internal/model"

	"gorm.io/gorm"
)

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

// TweetRow 动态 + 点赞数
type TweetRow struct {
	ID         int64
	OwnerID    int64
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	LikesCount int64
}

func (r *TweetRepository) GetByID(id int64) (*model.Tweet, error) {
	var tweet model.Tweet
	err := r.db.Where("id = ?", id).First(&tweet).Error
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (r *TweetRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Tweet{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *TweetRepository) Create(tweet *model.Tweet) error {
	return r.db.Create(tweet).Error
}

// UpdateContent 更新动态内容
func (r *TweetRepository) UpdateContent(id int64, content string) (*model.Tweet, error) {
	result := r.db.Model(&model.Tweet{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除动态及其点赞
func (r *TweetRepository) Delete(id int64) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", model.LikeTargetTweet, id).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Tweet{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// ListByOwner 用户的全部动态，最新在前
func (r *TweetRepository) ListByOwner(ownerID int64) ([]TweetRow, error) {
	var rows []TweetRow
	err := r.db.Model(&model.Tweet{}).
		Select(`tweets.id, tweets.owner_id, tweets.content, tweets.created_at, tweets.updated_at,
			(SELECT COUNT(*) FROM likes WHERE likes.target_type = 'tweet' AND likes.target_id = tweets.id) AS likes_count`).
		Where("tweets.owner_id = ?", ownerID).
		Order("tweets.created_at DESC").
		Order("tweets.id DESC").
		Scan(&rows).Error
	return rows, err
}
