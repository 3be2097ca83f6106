package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	infraKafka "vidtube/internal/infra/kafka"
	"vidtube/internal/repository"
	"vidtube/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const reindexBatchSize = 500

// DocumentIndex 文档索引的写操作
type DocumentIndex interface {
	Put(ctx context.Context, id string, body []byte) error
	Remove(ctx context.Context, id string) error
	Bulk(ctx context.Context, body []byte) error
	Name() string
}

// VideoSource 索引数据来源
type VideoSource interface {
	GetRowByID(id int64) (*repository.VideoRow, error)
	ListPublishedBatch(afterID int64, limit int) ([]repository.VideoRow, error)
}

type Indexer struct {
	videos VideoSource
	index  DocumentIndex
}

func NewIndexer(videos VideoSource, index DocumentIndex) *Indexer {
	return &Indexer{videos: videos, index: index}
}

// Handle 处理一条视频事件：已公开的视频写入索引，其余情况从索引删除
func (i *Indexer) Handle(ctx context.Context, event *infraKafka.VideoEvent) error {
	id := strconv.FormatInt(event.VideoID, 10)

	if event.Type == infraKafka.VideoEventDeleted {
		return i.index.Remove(ctx, id)
	}
	if event.Type != infraKafka.VideoEventUpserted {
		logger.Warn("Unknown video event type", zap.String("type", event.Type), zap.Int64("video_id", event.VideoID))
		return nil
	}

	row, err := i.videos.GetRowByID(event.VideoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return i.index.Remove(ctx, id)
		}
		return fmt.Errorf("load video %d: %w", event.VideoID, err)
	}
	if !row.IsPublished {
		return i.index.Remove(ctx, id)
	}

	body, err := json.Marshal(newVideoDocument(row))
	if err != nil {
		return err
	}
	if err := i.index.Put(ctx, id, body); err != nil {
		return err
	}

	logger.Debug("Video indexed", zap.Int64("video_id", row.ID))
	return nil
}

// Reindex 分批把所有已公开视频写入索引，返回写入数量
func (i *Indexer) Reindex(ctx context.Context) (int, error) {
	var (
		afterID int64
		total   int
	)
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		rows, err := i.videos.ListPublishedBatch(afterID, reindexBatchSize)
		if err != nil {
			return total, err
		}
		if len(rows) == 0 {
			break
		}

		body, err := bulkBody(i.index.Name(), rows)
		if err != nil {
			return total, err
		}
		if err := i.index.Bulk(ctx, body); err != nil {
			return total, err
		}

		total += len(rows)
		afterID = rows[len(rows)-1].ID
	}

	logger.Info("Videos reindexed", zap.Int("count", total), zap.String("index", i.index.Name()))
	return total, nil
}

func bulkBody(index string, rows []repository.VideoRow) ([]byte, error) {
	var buf bytes.Buffer
	for j := range rows {
		meta := map[string]interface{}{
			"index": map[string]interface{}{
				"_index": index,
				"_id":    strconv.FormatInt(rows[j].ID, 10),
			},
		}
		metaLine, err := json.Marshal(meta)
		if err != nil {
			return nil, err
		}
		docLine, err := json.Marshal(newVideoDocument(&rows[j]))
		if err != nil {
			return nil, err
		}
		buf.Write(metaLine)
		buf.WriteByte('\n')
		buf.Write(docLine)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
