package repository

import (
	"time"

	"vidtube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// PlaylistRow 播放列表 + 视频数
type PlaylistRow struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	VideosCount int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PlaylistVideoRow 播放列表中的视频（含作者）
type PlaylistVideoRow struct {
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
}

// 视频数只统计对观看者可见的条目
const playlistRowColumns = `playlists.id, playlists.owner_id, playlists.name, playlists.description,
	playlists.created_at, playlists.updated_at,
	(SELECT COUNT(*) FROM playlist_videos pv JOIN videos ON videos.id = pv.video_id
		WHERE pv.playlist_id = playlists.id AND ` + videoVisibleSQL + `) AS videos_count`

func (r *PlaylistRepository) Create(playlist *model.Playlist) error {
	return r.db.Create(playlist).Error
}

func (r *PlaylistRepository) GetByID(id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.Where("id = ?", id).First(&playlist).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// GetRowByID 播放列表（含 viewerID 可见的视频数）
func (r *PlaylistRepository) GetRowByID(id, viewerID int64) (*PlaylistRow, error) {
	var row PlaylistRow
	err := r.db.Model(&model.Playlist{}).
		Select(playlistRowColumns, true, viewerID).
		Where("playlists.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Update 更新名称和描述
func (r *PlaylistRepository) Update(id int64, name, description string) (*model.Playlist, error) {
	result := r.db.Model(&model.Playlist{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "description": description})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除播放列表及其条目
func (r *PlaylistRepository) Delete(id int64) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Playlist{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// ListByOwner 用户的播放列表，最新在前
func (r *PlaylistRepository) ListByOwner(ownerID, viewerID int64) ([]PlaylistRow, error) {
	var rows []PlaylistRow
	err := r.db.Model(&model.Playlist{}).
		Select(playlistRowColumns, true, viewerID).
		Where("playlists.owner_id = ?", ownerID).
		Order("playlists.created_at DESC").
		Order("playlists.id DESC").
		Scan(&rows).Error
	return rows, err
}

// AddVideo 追加视频到列表末尾，已存在时返回 false
func (r *PlaylistRepository) AddVideo(playlistID, videoID int64) (bool, error) {
	var added bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var maxPos int64
		if err := tx.Model(&model.PlaylistVideo{}).
			Select("COALESCE(MAX(position), 0)").
			Where("playlist_id = ?", playlistID).
			Scan(&maxPos).Error; err != nil {
			return err
		}

		entry := &model.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID, Position: maxPos + 1}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
		if result.Error != nil {
			return result.Error
		}
		added = result.RowsAffected > 0
		if added {
			return tx.Model(&model.Playlist{}).Where("id = ?", playlistID).
				UpdateColumn("updated_at", time.Now()).Error
		}
		return nil
	})
	return added, err
}

// RemoveVideo 从列表移除视频，不存在时返回 false
func (r *PlaylistRepository) RemoveVideo(playlistID, videoID int64) (bool, error) {
	result := r.db.Where("playlist_id = ? AND video_id = ?", playlistID, videoID).Delete(&model.PlaylistVideo{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListVideos 播放列表中 viewerID 可见的视频，按加入顺序
func (r *PlaylistRepository) ListVideos(playlistID, viewerID int64) ([]PlaylistVideoRow, error) {
	var rows []PlaylistVideoRow
	err := r.db.Model(&model.PlaylistVideo{}).
		Select(`videos.id, videos.title, videos.description, videos.video_file, videos.thumbnail,
			videos.duration, videos.views, users.id AS owner_id, users.username AS owner_username,
			users.full_name AS owner_full_name, users.avatar AS owner_avatar`).
		Joins("JOIN videos ON videos.id = playlist_videos.video_id").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("playlist_videos.playlist_id = ?", playlistID).
		Where(videoVisibleSQL, true, viewerID).
		Order("playlist_videos.position ASC").
		Order("playlist_videos.id ASC").
		Scan(&rows).Error
	return rows, err
}
