package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidtube/internal/config"
	"vidtube/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// 视频事件类型
const (
	VideoEventUpserted = "upserted"
	VideoEventDeleted  = "deleted"
)

// TopicVideoEvents 视频事件 topic 的配置 key
const TopicVideoEvents = "video_events"

// VideoEvent 视频变更事件，搜索索引 worker 消费
type VideoEvent struct {
	Type       string    `json:"type"`
	VideoID    int64     `json:"video_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Producer 视频事件生产者
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer 创建 Kafka 生产者
func NewProducer(cfg *config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic(TopicVideoEvents)),
	)

	return &Producer{writer: writer, topic: cfg.Topic(TopicVideoEvents)}
}

// PublishVideoEvent 发送视频事件，同一视频的事件按 key 落到同一分区
func (p *Producer) PublishVideoEvent(ctx context.Context, eventType string, videoID int64) error {
	payload, err := json.Marshal(&VideoEvent{
		Type:       eventType,
		VideoID:    videoID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal video event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(fmt.Sprintf("video-%d", videoID)),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send video event: %w", err)
	}

	logger.Debug("Video event sent",
		zap.String("type", eventType),
		zap.Int64("video_id", videoID),
		zap.String("topic", p.topic),
	)
	return nil
}

// Close 关闭生产者
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}
