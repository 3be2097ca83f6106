package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vidtube/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ObjectClient MinIO 客户端中用到的部分，*minio.Client 满足该接口
type ObjectClient interface {
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	FGetObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.GetObjectOptions) error
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinioStore 基于 MinIO 的媒体托管，视频和图片分桶存放
type MinioStore struct {
	client      ObjectClient
	baseURL     string
	videoBucket string
	imageBucket string
	tempDir     string

	probe func(path string) (float64, error)
	trim  func(src, dst string, start, end float64) error
}

// MinioStoreOptions 构造参数
type MinioStoreOptions struct {
	BaseURL     string
	VideoBucket string
	ImageBucket string
	TempDir     string
}

func NewMinioStore(client ObjectClient, opts MinioStoreOptions) *MinioStore {
	return &MinioStore{
		client:      client,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		videoBucket: opts.VideoBucket,
		imageBucket: opts.ImageBucket,
		tempDir:     opts.TempDir,
		probe:       probeDuration,
		trim:        trimFile,
	}
}

// Upload 上传本地暂存文件，按内容识别视频/图片
func (s *MinioStore) Upload(ctx context.Context, localPath string) (*Asset, error) {
	defer os.Remove(localPath)

	if localPath == "" {
		return nil, fmt.Errorf("upload: empty local path")
	}
	info, err := os.Stat(localPath)
	if err != nil {
		return nil, fmt.Errorf("upload: stat local file: %w", err)
	}

	mt, err := mimetype.DetectFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("upload: detect content type: %w", err)
	}

	bucket := s.imageBucket
	isVideo := strings.HasPrefix(mt.String(), "video/")
	if isVideo {
		bucket = s.videoBucket
	}

	asset := &Asset{
		Bucket:      bucket,
		ObjectName:  uuid.NewString() + mt.Extension(),
		ContentType: mt.String(),
		Bytes:       info.Size(),
	}

	if isVideo {
		duration, err := s.probe(localPath)
		if err != nil {
			logger.Warn("Probe video duration failed", zap.String("file", localPath), zap.Error(err))
		}
		asset.Duration = duration
	}

	if _, err := s.client.FPutObject(ctx, asset.Bucket, asset.ObjectName, localPath, minio.PutObjectOptions{
		ContentType: asset.ContentType,
	}); err != nil {
		return nil, fmt.Errorf("failed to upload to minio: %w", err)
	}

	asset.URL = s.publicURL(asset.Bucket, asset.ObjectName)
	logger.Info("Media uploaded",
		zap.String("bucket", asset.Bucket),
		zap.String("object", asset.ObjectName),
		zap.String("content_type", asset.ContentType),
		zap.Int64("bytes", asset.Bytes),
	)
	return asset, nil
}

// Destroy 删除 URL 对应的对象，空 URL 直接忽略
func (s *MinioStore) Destroy(ctx context.Context, assetURL string) error {
	if assetURL == "" {
		return nil
	}
	bucket, object, err := ObjectFromURL(s.baseURL, assetURL)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, bucket, object, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s/%s: %w", bucket, object, err)
	}
	logger.Info("Media destroyed", zap.String("bucket", bucket), zap.String("object", object))
	return nil
}

// Trim 下载视频，截取后覆盖原对象
func (s *MinioStore) Trim(ctx context.Context, assetURL string, start, end float64) (*Asset, error) {
	if err := ValidateRange(start, end); err != nil {
		return nil, err
	}
	bucket, object, err := ObjectFromURL(s.baseURL, assetURL)
	if err != nil {
		return nil, err
	}

	if s.tempDir != "" {
		if err := os.MkdirAll(s.tempDir, 0o755); err != nil {
			return nil, fmt.Errorf("create temp dir: %w", err)
		}
	}
	workDir, err := os.MkdirTemp(s.tempDir, "trim-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	src := filepath.Join(workDir, "src"+filepath.Ext(object))
	dst := filepath.Join(workDir, "out"+filepath.Ext(object))

	if err := s.client.FGetObject(ctx, bucket, object, src, minio.GetObjectOptions{}); err != nil {
		return nil, fmt.Errorf("download from minio: %w", err)
	}
	if err := s.trim(src, dst, start, end); err != nil {
		return nil, err
	}

	info, err := os.Stat(dst)
	if err != nil {
		return nil, fmt.Errorf("stat trimmed file: %w", err)
	}
	mt, err := mimetype.DetectFile(dst)
	if err != nil {
		return nil, fmt.Errorf("detect content type: %w", err)
	}
	duration, err := s.probe(dst)
	if err != nil {
		logger.Warn("Probe trimmed video failed", zap.String("object", object), zap.Error(err))
		duration = end - start
	}

	if _, err := s.client.FPutObject(ctx, bucket, object, dst, minio.PutObjectOptions{
		ContentType: mt.String(),
	}); err != nil {
		return nil, fmt.Errorf("failed to upload trimmed video: %w", err)
	}

	logger.Info("Media trimmed",
		zap.String("object", object),
		zap.Float64("start", start),
		zap.Float64("end", end),
		zap.Float64("duration", duration),
	)

	return &Asset{
		URL:         s.publicURL(bucket, object),
		Bucket:      bucket,
		ObjectName:  object,
		ContentType: mt.String(),
		Bytes:       info.Size(),
		Duration:    duration,
	}, nil
}

func (s *MinioStore) publicURL(bucket, object string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, bucket, object)
}
