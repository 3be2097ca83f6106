package repository

import (
	"time"

	"vidtube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ChannelProfileRow 频道主页聚合结果
type ChannelProfileRow struct {
	ID                        int64
	Username                  string
	FullName                  string
	Email                     string
	Avatar                    string
	CoverImage                string
	SubscribersCount          int64
	ChannelsSubscribedToCount int64
	IsSubscribed              bool
}

// WatchHistoryRow 观看记录（含视频作者）
type WatchHistoryRow struct {
	ID            int64
	Title         string
	Description   string
	VideoFile     string
	Thumbnail     string
	Duration      float64
	Views         int64
	OwnerID       int64
	OwnerUsername string
	OwnerFullName string
	OwnerAvatar   string
	WatchedAt     time.Time
}

// GetByID 根据 ID 查询用户
func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsernameOrEmail 登录查询，username 与 email 任一匹配即可
func (r *UserRepository) GetByUsernameOrEmail(username, email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ? OR email = ?", username, email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists 检查用户是否存在
func (r *UserRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ExistsByUsernameOrEmail 检查用户名或邮箱是否已被占用
func (r *UserRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("username = ? OR email = ?", username, email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByEmailExcept 检查邮箱是否被其他用户占用
func (r *UserRepository) ExistsByEmailExcept(email string, userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ? AND id <> ?", email, userID).Count(&count).Error
	return count > 0, err
}

// Create 创建用户
func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户字段
func (r *UserRepository) Update(id int64, updates map[string]interface{}) (*model.User, error) {
	result := r.db.Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// GetChannelProfile 按用户名聚合频道主页：订阅数、关注数、viewer 是否已订阅
func (r *UserRepository) GetChannelProfile(username string, viewerID int64) (*ChannelProfileRow, error) {
	var row ChannelProfileRow
	err := r.db.Model(&model.User{}).
		Select(`users.id, users.username, users.full_name, users.email, users.avatar, users.cover_image,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = users.id) AS subscribers_count,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = users.id) AS channels_subscribed_to_count,
			EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = users.id AND s.subscriber_id = ?) AS is_subscribed`, viewerID).
		Where("users.username = ?", username).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertWatchHistory 记录观看，重复观看只刷新时间
func (r *UserRepository) UpsertWatchHistory(userID, videoID int64, watchedAt time.Time) error {
	entry := &model.WatchHistory{UserID: userID, VideoID: videoID, WatchedAt: watchedAt}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"watched_at"}),
	}).Create(entry).Error
}

// ListWatchHistory 观看记录，最近观看在前；已被作者下架的视频不再出现
func (r *UserRepository) ListWatchHistory(userID int64) ([]WatchHistoryRow, error) {
	var rows []WatchHistoryRow
	err := r.db.Table("watch_histories").
		Select(`videos.id, videos.title, videos.description, videos.video_file, videos.thumbnail,
			videos.duration, videos.views, users.id AS owner_id, users.username AS owner_username,
			users.full_name AS owner_full_name, users.avatar AS owner_avatar, watch_histories.watched_at`).
		Joins("JOIN videos ON videos.id = watch_histories.video_id").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("watch_histories.user_id = ?", userID).
		Where(videoVisibleSQL, true, userID).
		Order("watch_histories.watched_at DESC").
		Scan(&rows).Error
	return rows, err
}
