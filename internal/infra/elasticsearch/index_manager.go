package elasticsearch

import (
	"context"
	"fmt"
	"strings"

	"vidtube/pkg/logger"

	"go.uber.org/zap"
)

// videosIndexMapping videos 索引 mapping，只索引已公开的视频
const videosIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	},
	"mappings": {
		"properties": {
			"id": {"type": "long"},
			"owner_id": {"type": "long"},
			"owner_name": {"type": "keyword"},
			"title": {
				"type": "text",
				"analyzer": "english",
				"fields": {"keyword": {"type": "keyword", "ignore_above": 200}}
			},
			"description": {"type": "text", "analyzer": "english"},
			"duration": {"type": "float"},
			"views": {"type": "long"},
			"likes": {"type": "long"},
			"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
		}
	}
}`

// EnsureIndex 确保索引存在，不存在则创建
func EnsureIndex(ctx context.Context, index string) error {
	if client == nil {
		return ErrNotInitialized
	}

	resp, err := client.Indices.Exists([]string{index}, client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode == 200 {
		logger.Debug("Elasticsearch index already exists", zap.String("index", index))
		return nil
	}

	resp, err = client.Indices.Create(
		index,
		client.Indices.Create.WithContext(ctx),
		client.Indices.Create.WithBody(strings.NewReader(videosIndexMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch index created", zap.String("index", index))
	return nil
}
