package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"vidtube/internal/config"
	"vidtube/internal/infra/database"
	infraES "vidtube/internal/infra/elasticsearch"
	infraKafka "vidtube/internal/infra/kafka"
	"vidtube/internal/repository"
	"vidtube/internal/search"
	"vidtube/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// 搜索索引 worker：消费 video_events，把已公开视频同步到 Elasticsearch
func main() {
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	reindex := flag.Bool("reindex", false, "rebuild the videos index before consuming")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	// 监听系统信号，优雅退出
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	index := cfg.Elasticsearch.VideosIndex()
	if err := infraES.EnsureIndex(ctx, index); err != nil {
		logger.Fatal("Failed to ensure index", zap.String("index", index), zap.Error(err))
	}

	indexer := search.NewIndexer(repository.NewVideoRepository(database.Get()), search.NewESIndex(index))

	if *reindex || cfg.Elasticsearch.ReindexOnStart {
		if _, err := indexer.Reindex(ctx); err != nil {
			logger.Error("Reindex failed", zap.Error(err))
		}
	}

	topic := cfg.Kafka.Topic(infraKafka.TopicVideoEvents)
	logger.Info("Search index worker started",
		zap.String("topic", topic),
		zap.String("group", cfg.Kafka.GroupID),
		zap.String("index", index),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return infraKafka.ConsumeVideoEvents(gctx, cfg.Kafka.Brokers, topic, cfg.Kafka.GroupID, indexer.Handle)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", zap.Error(err))
		return
	}
	logger.Info("Search index worker stopped")
}
