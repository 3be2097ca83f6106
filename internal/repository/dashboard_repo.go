package repository

import (
	"vidtube/internal/model"

	"gorm.io/gorm"
)

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// ChannelStatsRow 频道统计聚合结果
type ChannelStatsRow struct {
	Username         string
	FullName         string
	Avatar           string
	CoverImage       string
	TotalVideos      int64
	TotalViews       int64
	TotalLikes       int64
	TotalSubscribers int64
}

// GetChannelStats 统计频道视频数、总播放量、视频获赞总数、订阅数
func (r *DashboardRepository) GetChannelStats(userID int64) (*ChannelStatsRow, error) {
	var row ChannelStatsRow
	err := r.db.Model(&model.User{}).
		Select(`users.username, users.full_name, users.avatar, users.cover_image,
			(SELECT COUNT(*) FROM videos v WHERE v.owner_id = users.id) AS total_videos,
			(SELECT CAST(COALESCE(SUM(v.views), 0) AS BIGINT) FROM videos v WHERE v.owner_id = users.id) AS total_views,
			(SELECT COUNT(*) FROM likes l JOIN videos v ON l.target_type = 'video' AND l.target_id = v.id
				WHERE v.owner_id = users.id) AS total_likes,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = users.id) AS total_subscribers`).
		Where("users.id = ?", userID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
