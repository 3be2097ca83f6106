package repository

import (
	"time"

	"vidtube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 视频点赞数子查询
const videoLikesCountSQL = "(SELECT COUNT(*) FROM likes WHERE likes.target_type = 'video' AND likes.target_id = videos.id)"

const videoRowColumns = `videos.id, videos.owner_id, videos.title, videos.description, videos.video_file,
	videos.thumbnail, videos.duration, videos.views, videos.is_published, videos.created_at, videos.updated_at,
	users.username AS owner_username, users.full_name AS owner_full_name, users.avatar AS owner_avatar, ` +
	videoLikesCountSQL + ` AS likes_count`

// 视频对观看者可见：已公开或本人上传。参数依次为 true、viewerID
const videoVisibleSQL = "(videos.is_published = ? OR videos.owner_id = ?)"

// 允许排序的字段
var videoSortColumns = map[string]string{
	"created_at": "created_at",
	"createdAt":  "created_at",
	"views":      "views",
	"duration":   "duration",
	"title":      "title",
}

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// VideoRow 视频 + 作者 + 点赞数
type VideoRow struct {
	ID            int64
	OwnerID       int64
	Title         string
	Description   string
	VideoFile     string
	Thumbnail     string
	Duration      float64
	Views         int64
	IsPublished   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	OwnerUsername string
	OwnerFullName string
	OwnerAvatar   string
	LikesCount    int64
}

// VideoFilter 列表筛选条件
type VideoFilter struct {
	OwnerID       *int64
	Search        string
	PublishedOnly bool
	SortBy        string
	SortDesc      bool
	Skip          int
	Limit         int
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetRowByID 根据 ID 获取视频（含作者和点赞数）
func (r *VideoRepository) GetRowByID(id int64) (*VideoRow, error) {
	var row VideoRow
	err := r.rowQuery().Where("videos.id = ?", id).Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// VisibleTo 视频存在且对 viewerID 可见
func (r *VideoRepository) VisibleTo(id, viewerID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Video{}).
		Where("videos.id = ?", id).
		Where(videoVisibleSQL, true, viewerID).
		Count(&count).Error
	return count > 0, err
}

// Create 创建视频记录
func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// Update 更新视频字段
func (r *VideoRepository) Update(id int64, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除视频及其点赞、评论（含评论点赞）、播放列表条目和观看记录
func (r *VideoRepository) Delete(id int64) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&model.Comment{}).Select("id").Where("video_id = ?", id)
		if err := tx.Where("target_type = ? AND target_id IN (?)", model.LikeTargetComment, commentIDs).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", model.LikeTargetVideo, id).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.WatchHistory{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Video{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// ListVideos 视频列表查询（分页、筛选、排序）
func (r *VideoRepository) ListVideos(f VideoFilter) ([]VideoRow, int64, error) {
	var total int64
	if err := r.db.Model(&model.Video{}).Scopes(f.scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := videoSortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}

	var rows []VideoRow
	err := r.rowQuery().Scopes(f.scope).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "videos", Name: column}, Desc: f.SortDesc}).
		Order("videos.id DESC").
		Offset(f.Skip).Limit(f.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListByOwner 频道下全部视频（含未公开），最新在前
func (r *VideoRepository) ListByOwner(ownerID int64) ([]VideoRow, error) {
	var rows []VideoRow
	err := r.rowQuery().
		Where("videos.owner_id = ?", ownerID).
		Order("videos.created_at DESC").
		Order("videos.id DESC").
		Scan(&rows).Error
	return rows, err
}

// ListRowsByIDs 批量获取视频（搜索结果回表）
func (r *VideoRepository) ListRowsByIDs(ids []int64) ([]VideoRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []VideoRow
	err := r.rowQuery().Where("videos.id IN ?", ids).Scan(&rows).Error
	return rows, err
}

// ListPublishedBatch 按 ID 升序分批获取已公开视频（重建索引用）
func (r *VideoRepository) ListPublishedBatch(afterID int64, limit int) ([]VideoRow, error) {
	var rows []VideoRow
	err := r.rowQuery().
		Where("videos.is_published = ? AND videos.id > ?", true, afterID).
		Order("videos.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// IncrementViews 播放量 +1
func (r *VideoRepository) IncrementViews(id int64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *VideoRepository) rowQuery() *gorm.DB {
	return r.db.Model(&model.Video{}).
		Select(videoRowColumns).
		Joins("JOIN users ON users.id = videos.owner_id")
}

func (f VideoFilter) scope(db *gorm.DB) *gorm.DB {
	if f.OwnerID != nil {
		db = db.Where("videos.owner_id = ?", *f.OwnerID)
	}
	if f.PublishedOnly {
		db = db.Where("videos.is_published = ?", true)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		db = db.Where("(LOWER(videos.title) LIKE LOWER(?) OR LOWER(videos.description) LIKE LOWER(?))", like, like)
	}
	return db
}
