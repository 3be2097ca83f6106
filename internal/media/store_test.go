package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/minio/minio-go/v7"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	mp4Header = []byte("\x00\x00\x00\x20ftypisom\x00\x00\x02\x00isomiso2avc1mp41\x00\x00\x00\x08free")
)

type putCall struct {
	bucket, object, contentType string
}

type fakeObjectClient struct {
	mu       sync.Mutex
	puts     []putCall
	removed  []string
	download []byte
	putErr   error
}

func (f *fakeObjectClient) FPutObject(_ context.Context, bucket, object, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	if _, err := os.Stat(filePath); err != nil {
		return minio.UploadInfo{}, err
	}
	f.puts = append(f.puts, putCall{bucket: bucket, object: object, contentType: opts.ContentType})
	return minio.UploadInfo{Bucket: bucket, Key: object}, nil
}

func (f *fakeObjectClient) FGetObject(_ context.Context, _, _, filePath string, _ minio.GetObjectOptions) error {
	return os.WriteFile(filePath, f.download, 0o644)
}

func (f *fakeObjectClient) RemoveObject(_ context.Context, bucket, object string, _ minio.RemoveObjectOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, bucket+"/"+object)
	return nil
}

func newTestStore(t *testing.T, client ObjectClient) *MinioStore {
	t.Helper()
	store := NewMinioStore(client, MinioStoreOptions{
		BaseURL:     "http://localhost:9000/",
		VideoBucket: "videos",
		ImageBucket: "images",
		TempDir:     filepath.Join(t.TempDir(), "work"),
	})
	store.probe = func(string) (float64, error) { return 42.5, nil }
	return store
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestObjectFromURL(t *testing.T) {
	cases := []struct {
		name       string
		base, url  string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{"plain", "http://localhost:9000", "http://localhost:9000/images/a.png", "images", "a.png", false},
		{"nested object", "http://localhost:9000", "http://localhost:9000/videos/2024/a.mp4", "videos", "2024/a.mp4", false},
		{"base with path", "https://cdn.example.com/media/", "https://cdn.example.com/media/images/a.png", "images", "a.png", false},
		{"foreign host", "http://localhost:9000", "http://evil.example.com/images/a.png", "", "", true},
		{"bucket only", "http://localhost:9000", "http://localhost:9000/images", "", "", true},
		{"garbage", "http://localhost:9000", "::not a url", "", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bucket, object, err := ObjectFromURL(tc.base, tc.url)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidURL) {
					t.Fatalf("expected ErrInvalidURL, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if bucket != tc.wantBucket || object != tc.wantObject {
				t.Fatalf("got %s/%s, want %s/%s", bucket, object, tc.wantBucket, tc.wantObject)
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	valid := [][2]float64{{0, 1}, {2.5, 3}}
	invalid := [][2]float64{{-1, 5}, {5, 5}, {6, 5}}
	for _, r := range valid {
		if err := ValidateRange(r[0], r[1]); err != nil {
			t.Errorf("ValidateRange(%v, %v) = %v, want nil", r[0], r[1], err)
		}
	}
	for _, r := range invalid {
		if err := ValidateRange(r[0], r[1]); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("ValidateRange(%v, %v) = %v, want ErrInvalidRange", r[0], r[1], err)
		}
	}
}

func TestUploadImageRemovesLocalFile(t *testing.T) {
	client := &fakeObjectClient{}
	store := newTestStore(t, client)
	path := writeTemp(t, "avatar", pngHeader)

	asset, err := store.Upload(context.Background(), path)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if asset.Bucket != "images" || asset.ContentType != "image/png" || !strings.HasSuffix(asset.ObjectName, ".png") {
		t.Fatalf("unexpected asset: %+v", asset)
	}
	if asset.URL != "http://localhost:9000/images/"+asset.ObjectName {
		t.Fatalf("unexpected url %q", asset.URL)
	}
	if asset.Duration != 0 {
		t.Fatalf("images have no duration, got %v", asset.Duration)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("local file should be removed, stat err=%v", err)
	}
	if len(client.puts) != 1 || client.puts[0].bucket != "images" {
		t.Fatalf("unexpected puts: %+v", client.puts)
	}
}

func TestUploadVideoProbesDuration(t *testing.T) {
	client := &fakeObjectClient{}
	store := newTestStore(t, client)
	path := writeTemp(t, "clip", mp4Header)

	asset, err := store.Upload(context.Background(), path)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if asset.Bucket != "videos" || asset.Duration != 42.5 {
		t.Fatalf("unexpected asset: %+v", asset)
	}
}

func TestUploadFailureStillRemovesLocalFile(t *testing.T) {
	client := &fakeObjectClient{putErr: errors.New("bucket gone")}
	store := newTestStore(t, client)
	path := writeTemp(t, "avatar", pngHeader)

	if _, err := store.Upload(context.Background(), path); err == nil {
		t.Fatal("expected upload error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("local file should be removed on failure, stat err=%v", err)
	}
}

func TestDestroy(t *testing.T) {
	client := &fakeObjectClient{}
	store := newTestStore(t, client)
	ctx := context.Background()

	if err := store.Destroy(ctx, ""); err != nil {
		t.Fatalf("empty url should be ignored: %v", err)
	}
	if err := store.Destroy(ctx, "http://localhost:9000/images/a.png"); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if err := store.Destroy(ctx, "http://other:9000/images/a.png"); !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
	if len(client.removed) != 1 || client.removed[0] != "images/a.png" {
		t.Fatalf("unexpected removals: %v", client.removed)
	}
}

func TestTrimOverwritesObject(t *testing.T) {
	client := &fakeObjectClient{download: mp4Header}
	store := newTestStore(t, client)

	var gotStart, gotEnd float64
	store.trim = func(src, dst string, start, end float64) error {
		gotStart, gotEnd = start, end
		data, err := os.ReadFile(src)
		if err != nil {
			return err
		}
		return os.WriteFile(dst, data, 0o644)
	}
	store.probe = func(string) (float64, error) { return 0, errors.New("no ffprobe") }

	asset, err := store.Trim(context.Background(), "http://localhost:9000/videos/clip.mp4", 5, 15)
	if err != nil {
		t.Fatalf("trim: %v", err)
	}
	if gotStart != 5 || gotEnd != 15 {
		t.Fatalf("trim called with %v-%v", gotStart, gotEnd)
	}
	if asset.URL != "http://localhost:9000/videos/clip.mp4" || asset.Duration != 10 {
		t.Fatalf("unexpected asset: %+v", asset)
	}
	if len(client.puts) != 1 || client.puts[0].object != "clip.mp4" || client.puts[0].bucket != "videos" {
		t.Fatalf("expected original object to be overwritten, got %+v", client.puts)
	}

	entries, err := os.ReadDir(store.tempDir)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("work dir should be cleaned up, found %d entries", len(entries))
	}
}

func TestTrimRejectsBadRange(t *testing.T) {
	client := &fakeObjectClient{}
	store := newTestStore(t, client)
	store.trim = func(string, string, float64, float64) error {
		t.Fatal("trim must not run for an invalid range")
		return nil
	}

	if _, err := store.Trim(context.Background(), "http://localhost:9000/videos/clip.mp4", 10, 5); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
