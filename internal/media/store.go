// Package media 封装外部媒体托管：上传本地暂存文件、按 URL 删除、裁剪视频。
package media

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

var (
	ErrInvalidURL   = errors.New("media url is not managed by this store")
	ErrInvalidRange = errors.New("invalid trim range")
)

// Asset 上传后的媒体资源
type Asset struct {
	URL         string
	Bucket      string
	ObjectName  string
	ContentType string
	Bytes       int64
	Duration    float64 // 秒，仅视频
}

// Store 媒体托管接口
type Store interface {
	// Upload 上传本地文件，无论成功与否都会删除本地文件
	Upload(ctx context.Context, localPath string) (*Asset, error)
	// Destroy 按 URL 删除远端资源
	Destroy(ctx context.Context, assetURL string) error
	// Trim 截取 [start, end] 秒并覆盖原资源
	Trim(ctx context.Context, assetURL string, start, end float64) (*Asset, error)
}

// ObjectFromURL 从公开 URL 解析 bucket 和对象名，baseURL 形如 http://host:9000
func ObjectFromURL(baseURL, assetURL string) (bucket, object string, err error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", "", ErrInvalidURL
	}
	u, err := url.Parse(assetURL)
	if err != nil || u.Host != base.Host {
		return "", "", ErrInvalidURL
	}

	path := strings.TrimPrefix(u.Path, base.Path)
	path = strings.TrimPrefix(path, "/")
	bucket, object, ok := strings.Cut(path, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", ErrInvalidURL
	}
	return bucket, object, nil
}

// ValidateRange 校验裁剪区间
func ValidateRange(start, end float64) error {
	if start < 0 || end <= start {
		return ErrInvalidRange
	}
	return nil
}
