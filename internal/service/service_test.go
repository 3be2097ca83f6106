package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"vidtube/internal/api/dto"
	"vidtube/internal/config"
	"vidtube/internal/infra/database"
	"vidtube/internal/media"
	"vidtube/internal/model"
	"vidtube/internal/repository"

	"gorm.io/gorm"
)

const testMediaBase = "http://media.local"

type fakeStore struct {
	mu          sync.Mutex
	uploads     []string
	destroyed   []string
	onDestroy   func(url string)
	destroyErrs map[string]error
	failTrim    error
}

func (s *fakeStore) Upload(_ context.Context, localPath string) (*media.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, localPath)
	name := filepath.Base(localPath)
	bucket := "images"
	duration := 0.0
	if strings.HasSuffix(name, ".mp4") {
		bucket = "videos"
		duration = 120
	}
	return &media.Asset{
		URL:        testMediaBase + "/" + bucket + "/" + name,
		Bucket:     bucket,
		ObjectName: name,
		Duration:   duration,
	}, nil
}

func (s *fakeStore) Destroy(_ context.Context, url string) error {
	if s.onDestroy != nil {
		s.onDestroy(url)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.destroyErrs[url]; err != nil {
		return err
	}
	s.destroyed = append(s.destroyed, url)
	return nil
}

func (s *fakeStore) Trim(_ context.Context, url string, start, end float64) (*media.Asset, error) {
	if s.failTrim != nil {
		return nil, s.failTrim
	}
	return &media.Asset{URL: url + "?trimmed", Duration: end - start}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *fakePublisher) PublishVideoEvent(_ context.Context, eventType string, _ int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return nil
}

type memTokenStore struct {
	mu      sync.Mutex
	refresh map[int64]string
	revoked map[string]bool
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{refresh: map[int64]string{}, revoked: map[string]bool{}}
}

func (m *memTokenStore) SaveRefresh(_ context.Context, userID int64, token string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh[userID] = token
	return nil
}

func (m *memTokenStore) GetRefresh(_ context.Context, userID int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh[userID], nil
}

func (m *memTokenStore) DeleteRefresh(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.refresh, userID)
	return nil
}

func (m *memTokenStore) RevokeAccess(_ context.Context, jti string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = true
	return nil
}

func (m *memTokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[jti], nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db, model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func setTestConfig() {
	config.Set(&config.Config{
		App: config.AppConfig{Name: "vidtube-test"},
		JWT: config.JWTConfig{
			AccessSecret:      "access-secret",
			AccessExpireMins:  15,
			RefreshSecret:     "refresh-secret",
			RefreshExpireDays: 1,
		},
	})
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: strings.ToUpper(username),
		Avatar:   testMediaBase + "/images/" + username + ".png",
		Password: "x",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedVideo(t *testing.T, db *gorm.DB, ownerID int64, title string) *model.Video {
	t.Helper()
	video := &model.Video{
		OwnerID:     ownerID,
		Title:       title,
		Description: title + " description",
		VideoFile:   testMediaBase + "/videos/" + title + ".mp4",
		Thumbnail:   testMediaBase + "/images/" + title + ".png",
		Duration:    120,
		IsPublished: true,
	}
	if err := db.Create(video).Error; err != nil {
		t.Fatalf("seed video: %v", err)
	}
	return video
}

func strPtr(s string) *string { return &s }

func TestAuthLifecycle(t *testing.T) {
	setTestConfig()
	db := newTestDB(t)
	store := &fakeStore{}
	tokens := newMemTokenStore()
	svc := NewAuthService(repository.NewUserRepository(db), store, tokens)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{FullName: "A", Email: "a@x.io", Username: "alice", Password: "secret1"}, "", ""); !errors.Is(err, ErrAvatarRequired) {
		t.Fatalf("expected ErrAvatarRequired, got %v", err)
	}

	user, err := svc.Register(ctx, &dto.RegisterRequest{
		FullName: " Alice ",
		Email:    "Alice@Example.com",
		Username: "Alice",
		Password: "secret1",
	}, "/tmp/avatar.png", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Username != "alice" || user.Email != "alice@example.com" || user.CoverImage != "" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Register(ctx, &dto.RegisterRequest{FullName: "B", Email: "other@x.io", Username: "ALICE", Password: "secret1"}, "/tmp/a.png", ""); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "ghost", Password: "secret1"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.AccessToken == "" || login.RefreshToken == "" {
		t.Fatal("expected token pair")
	}

	pair, err := svc.RefreshAccessToken(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := svc.RefreshAccessToken(ctx, login.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("rotated refresh token should be rejected, got %v", err)
	}

	if err := svc.Logout(ctx, user.ID, "jti-1", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if revoked, _ := tokens.IsRevoked(ctx, "jti-1"); !revoked {
		t.Fatal("expected access token to be revoked")
	}
	if _, err := svc.RefreshAccessToken(ctx, pair.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("refresh after logout should fail, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	setTestConfig()
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), &fakeStore{}, newMemTokenStore())
	ctx := context.Background()

	user, err := svc.Register(ctx, &dto.RegisterRequest{FullName: "A", Email: "a@x.io", Username: "alice", Password: "secret1"}, "/tmp/a.png", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.ChangePassword(user.ID, &dto.ChangePasswordRequest{OldPassword: "nope", NewPassword: "secret2"}); !errors.Is(err, ErrInvalidOldPassword) {
		t.Fatalf("expected ErrInvalidOldPassword, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, &dto.ChangePasswordRequest{OldPassword: "secret1", NewPassword: "secret2"}); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "secret2"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestLikeToggleAlternates(t *testing.T) {
	db := newTestDB(t)
	svc := NewLikeService(
		repository.NewLikeRepository(db),
		repository.NewVideoRepository(db),
		repository.NewCommentRepository(db),
		repository.NewTweetRepository(db),
	)
	user := seedUser(t, db, "alice")
	video := seedVideo(t, db, user.ID, "intro")

	want := []bool{true, false, true}
	for i, liked := range want {
		data, err := svc.ToggleVideoLike(user.ID, video.ID)
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if data.Liked != liked {
			t.Fatalf("toggle %d: expected liked=%v, got %v", i, liked, data.Liked)
		}
		if liked && (data.Like == nil || data.Like.TargetID != video.ID) {
			t.Fatalf("toggle %d: expected like record, got %+v", i, data.Like)
		}
	}

	liked, err := svc.GetLikedVideos(user.ID)
	if err != nil {
		t.Fatalf("liked videos: %v", err)
	}
	if len(liked.LikedVideos) != 1 {
		t.Fatalf("expected 1 liked video, got %d", len(liked.LikedVideos))
	}

	if _, err := svc.ToggleVideoLike(user.ID, 9999); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
	if _, err := svc.ToggleCommentLike(user.ID, 9999); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
	if _, err := svc.ToggleTweetLike(user.ID, 9999); !errors.Is(err, ErrTweetNotFound) {
		t.Fatalf("expected ErrTweetNotFound, got %v", err)
	}
}

func TestEmptyLikedVideosIsEmptySlice(t *testing.T) {
	db := newTestDB(t)
	svc := NewLikeService(
		repository.NewLikeRepository(db),
		repository.NewVideoRepository(db),
		repository.NewCommentRepository(db),
		repository.NewTweetRepository(db),
	)
	user := seedUser(t, db, "alice")

	data, err := svc.GetLikedVideos(user.ID)
	if err != nil {
		t.Fatalf("liked videos: %v", err)
	}
	if data.LikedVideos == nil || len(data.LikedVideos) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", data.LikedVideos)
	}
}

func TestCommentOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(repository.NewCommentRepository(db), repository.NewVideoRepository(db))
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")
	video := seedVideo(t, db, owner.ID, "v")

	if _, err := svc.Add(owner.ID, video.ID, &dto.CommentRequest{Content: "   "}); !errors.Is(err, ErrCommentEmpty) {
		t.Fatalf("expected ErrCommentEmpty, got %v", err)
	}
	if _, err := svc.Add(owner.ID, 9999, &dto.CommentRequest{Content: "hi"}); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}

	comment, err := svc.Add(owner.ID, video.ID, &dto.CommentRequest{Content: "original"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := svc.Update(other.ID, comment.ID, &dto.CommentRequest{Content: "hijack"}); !errors.Is(err, ErrCommentNoPermission) {
		t.Fatalf("expected ErrCommentNoPermission, got %v", err)
	}
	if err := svc.Delete(other.ID, comment.ID); !errors.Is(err, ErrCommentNoPermission) {
		t.Fatalf("expected ErrCommentNoPermission on delete, got %v", err)
	}

	list, err := svc.ListByVideo(video.ID, owner.ID, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Comments) != 1 || list.Comments[0].Content != "original" {
		t.Fatalf("comment should be unchanged, got %+v", list.Comments)
	}

	updated, err := svc.Update(owner.ID, comment.ID, &dto.CommentRequest{Content: "edited"})
	if err != nil || updated.Content != "edited" {
		t.Fatalf("owner update: %+v %v", updated, err)
	}
	if err := svc.Delete(owner.ID, comment.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.Delete(owner.ID, comment.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestListCommentsEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(repository.NewCommentRepository(db), repository.NewVideoRepository(db))
	owner := seedUser(t, db, "owner")
	video := seedVideo(t, db, owner.ID, "quiet")

	list, err := svc.ListByVideo(video.ID, owner.ID, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Comments == nil || len(list.Comments) != 0 || list.Total != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
	if list.Page != 1 || list.PageSize != defaultCommentPageSize {
		t.Fatalf("expected default paging, got page=%d size=%d", list.Page, list.PageSize)
	}
}

func TestVideoUploadAndPartialUpdate(t *testing.T) {
	db := newTestDB(t)
	store := &fakeStore{}
	events := &fakePublisher{}
	svc := NewVideoService(repository.NewVideoRepository(db), repository.NewUserRepository(db), store, events)
	owner := seedUser(t, db, "owner")
	ctx := context.Background()

	if _, err := svc.Upload(ctx, owner.ID, &dto.VideoUploadRequest{Title: "t", Description: "d"}, "", "/tmp/t.png"); !errors.Is(err, ErrVideoFieldsRequired) {
		t.Fatalf("expected ErrVideoFieldsRequired, got %v", err)
	}

	video, err := svc.Upload(ctx, owner.ID, &dto.VideoUploadRequest{Title: "Title", Description: "Desc"}, "/tmp/clip.mp4", "/tmp/thumb.png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !video.IsPublished || video.Duration != 120 || video.VideoFile != testMediaBase+"/videos/clip.mp4" {
		t.Fatalf("unexpected video: %+v", video)
	}

	updated, err := svc.UpdateDetails(ctx, owner.ID, video.ID, &dto.VideoUpdateRequest{Title: strPtr("New Title")}, "")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "New Title" || updated.Description != "Desc" || updated.Thumbnail != video.Thumbnail {
		t.Fatalf("unsupplied fields should be kept: %+v", updated)
	}

	if _, err := svc.UpdateDetails(ctx, owner.ID, video.ID, &dto.VideoUpdateRequest{}, ""); !errors.Is(err, ErrNothingToUpdate) {
		t.Fatalf("expected ErrNothingToUpdate, got %v", err)
	}

	updated, err = svc.UpdateDetails(ctx, owner.ID, video.ID, &dto.VideoUpdateRequest{}, "/tmp/new-thumb.png")
	if err != nil {
		t.Fatalf("replace thumbnail: %v", err)
	}
	if updated.Thumbnail != testMediaBase+"/images/new-thumb.png" {
		t.Fatalf("unexpected thumbnail %q", updated.Thumbnail)
	}
	if len(store.destroyed) != 1 || store.destroyed[0] != video.Thumbnail {
		t.Fatalf("expected old thumbnail destroyed, got %v", store.destroyed)
	}

	if len(events.events) != 3 {
		t.Fatalf("expected 3 upsert events, got %v", events.events)
	}
}

func TestVideoNonOwnerCannotModify(t *testing.T) {
	db := newTestDB(t)
	store := &fakeStore{}
	svc := NewVideoService(repository.NewVideoRepository(db), repository.NewUserRepository(db), store, nil)
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")
	video := seedVideo(t, db, owner.ID, "mine")
	ctx := context.Background()

	if _, err := svc.UpdateDetails(ctx, other.ID, video.ID, &dto.VideoUpdateRequest{Title: strPtr("x")}, ""); !errors.Is(err, ErrVideoNoPermission) {
		t.Fatalf("expected ErrVideoNoPermission, got %v", err)
	}
	if _, err := svc.TogglePublishStatus(ctx, other.ID, video.ID); !errors.Is(err, ErrVideoNoPermission) {
		t.Fatalf("expected ErrVideoNoPermission on toggle, got %v", err)
	}
	if err := svc.Delete(ctx, other.ID, video.ID); !errors.Is(err, ErrVideoNoPermission) {
		t.Fatalf("expected ErrVideoNoPermission on delete, got %v", err)
	}
	if len(store.destroyed) != 0 {
		t.Fatalf("non-owner delete must not touch media, got %v", store.destroyed)
	}

	got, err := svc.GetByID(video.ID, other.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "mine" || !got.IsPublished {
		t.Fatalf("video should be unchanged: %+v", got)
	}
}

func TestVideoDeleteDestroysMediaFirst(t *testing.T) {
	db := newTestDB(t)
	videoRepo := repository.NewVideoRepository(db)
	events := &fakePublisher{}
	store := &fakeStore{}
	svc := NewVideoService(videoRepo, repository.NewUserRepository(db), store, events)
	owner := seedUser(t, db, "owner")
	video := seedVideo(t, db, owner.ID, "bye")

	store.onDestroy = func(string) {
		if exists, _ := videoRepo.VisibleTo(video.ID, owner.ID); !exists {
			t.Error("video row deleted before media was destroyed")
		}
	}

	if err := svc.Delete(context.Background(), owner.ID, video.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.destroyed) != 2 || store.destroyed[0] != video.Thumbnail || store.destroyed[1] != video.VideoFile {
		t.Fatalf("expected thumbnail then video file destroyed, got %v", store.destroyed)
	}
	if exists, _ := videoRepo.VisibleTo(video.ID, owner.ID); exists {
		t.Fatal("video should be deleted")
	}
	if len(events.events) != 1 || events.events[0] != "deleted" {
		t.Fatalf("expected deleted event, got %v", events.events)
	}
	if _, err := svc.GetByID(video.ID, owner.ID); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestUnpublishedVideoVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewVideoService(repository.NewVideoRepository(db), repository.NewUserRepository(db), &fakeStore{}, nil)
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")
	video := seedVideo(t, db, owner.ID, "draft")
	ctx := context.Background()

	toggled, err := svc.TogglePublishStatus(ctx, owner.ID, video.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.IsPublished {
		t.Fatal("expected video to be unpublished")
	}

	if _, err := svc.GetByID(video.ID, other.ID); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("non-owner should not see unpublished video, got %v", err)
	}
	if _, err := svc.GetByID(video.ID, owner.ID); err != nil {
		t.Fatalf("owner should see unpublished video: %v", err)
	}

	ownerID := owner.ID
	list, err := svc.ListVideos(&dto.VideoListQuery{UserID: &ownerID}, other.ID)
	if err != nil {
		t.Fatalf("list as other: %v", err)
	}
	if list.Total != 0 {
		t.Fatalf("expected no visible videos, got %d", list.Total)
	}
	list, err = svc.ListVideos(&dto.VideoListQuery{UserID: &ownerID}, owner.ID)
	if err != nil {
		t.Fatalf("list as owner: %v", err)
	}
	if list.Total != 1 || list.Page != 1 || list.PageSize != defaultVideoPageSize {
		t.Fatalf("unexpected owner list: %+v", list)
	}

	if err := svc.AddToWatchHistory(other.ID, video.ID); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound for watch, got %v", err)
	}
}

func TestVideoDeleteKeepsRowWhenThumbnailDestroyFails(t *testing.T) {
	db := newTestDB(t)
	videoRepo := repository.NewVideoRepository(db)
	owner := seedUser(t, db, "owner")
	video := seedVideo(t, db, owner.ID, "stuck")
	storeErr := errors.New("object store unavailable")
	store := &fakeStore{destroyErrs: map[string]error{video.Thumbnail: storeErr}}
	svc := NewVideoService(videoRepo, repository.NewUserRepository(db), store, nil)

	if err := svc.Delete(context.Background(), owner.ID, video.ID); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(store.destroyed) != 0 {
		t.Fatalf("video file must stay when the thumbnail cannot be removed, destroyed %v", store.destroyed)
	}
	if exists, _ := videoRepo.VisibleTo(video.ID, owner.ID); !exists {
		t.Fatal("video row should remain for a retry")
	}
}

func TestVideoDeleteSkipsUnmanagedMedia(t *testing.T) {
	db := newTestDB(t)
	videoRepo := repository.NewVideoRepository(db)
	owner := seedUser(t, db, "owner")
	video := seedVideo(t, db, owner.ID, "external")
	store := &fakeStore{destroyErrs: map[string]error{video.VideoFile: media.ErrInvalidURL}}
	svc := NewVideoService(videoRepo, repository.NewUserRepository(db), store, nil)

	if err := svc.Delete(context.Background(), owner.ID, video.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.destroyed) != 1 || store.destroyed[0] != video.Thumbnail {
		t.Fatalf("expected only the thumbnail destroyed, got %v", store.destroyed)
	}
	if exists, _ := videoRepo.VisibleTo(video.ID, owner.ID); exists {
		t.Fatal("video should be deleted")
	}
}

func TestUnpublishedVideoHiddenFromOtherPaths(t *testing.T) {
	db := newTestDB(t)
	videoRepo := repository.NewVideoRepository(db)
	userRepo := repository.NewUserRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	videoSvc := NewVideoService(videoRepo, userRepo, &fakeStore{}, nil)
	comments := NewCommentService(commentRepo, videoRepo)
	likes := NewLikeService(likeRepo, videoRepo, commentRepo, repository.NewTweetRepository(db))
	playlists := NewPlaylistService(repository.NewPlaylistRepository(db), videoRepo, userRepo)
	users := NewUserService(userRepo, &fakeStore{})
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")
	video := seedVideo(t, db, owner.ID, "draft")

	// 视频公开期间留下的评论、点赞、观看记录和播放列表条目
	comment, err := comments.Add(owner.ID, video.ID, &dto.CommentRequest{Content: "first"})
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	if _, err := likes.ToggleVideoLike(other.ID, video.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := videoSvc.AddToWatchHistory(other.ID, video.ID); err != nil {
		t.Fatalf("watch: %v", err)
	}
	mine, err := playlists.Create(other.ID, &dto.PlaylistRequest{Name: "mix", Description: "d"})
	if err != nil {
		t.Fatalf("create playlist: %v", err)
	}
	if _, _, err := playlists.AddVideo(other.ID, mine.ID, video.ID); err != nil {
		t.Fatalf("add to playlist: %v", err)
	}

	if _, err := videoSvc.TogglePublishStatus(context.Background(), owner.ID, video.ID); err != nil {
		t.Fatalf("unpublish: %v", err)
	}

	if _, err := comments.Add(other.ID, video.ID, &dto.CommentRequest{Content: "hi"}); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("comment add: expected ErrVideoNotFound, got %v", err)
	}
	if _, err := comments.ListByVideo(video.ID, other.ID, 1, 10); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("comment list: expected ErrVideoNotFound, got %v", err)
	}
	if _, err := likes.ToggleVideoLike(other.ID, video.ID); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("video like: expected ErrVideoNotFound, got %v", err)
	}
	if _, err := likes.ToggleCommentLike(other.ID, comment.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("comment like: expected ErrCommentNotFound, got %v", err)
	}
	if _, _, err := playlists.AddVideo(other.ID, mine.ID, video.ID); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("playlist add: expected ErrVideoNotFound, got %v", err)
	}

	liked, err := likes.GetLikedVideos(other.ID)
	if err != nil {
		t.Fatalf("liked videos: %v", err)
	}
	if len(liked.LikedVideos) != 0 {
		t.Fatalf("liked videos should hide the draft, got %+v", liked.LikedVideos)
	}
	detail, err := playlists.GetByID(mine.ID, other.ID)
	if err != nil {
		t.Fatalf("playlist detail: %v", err)
	}
	if len(detail.Videos) != 0 || detail.VideosCount != 0 {
		t.Fatalf("playlist should hide the draft, got count=%d videos=%+v", detail.VideosCount, detail.Videos)
	}
	lists, err := playlists.ListByUser(other.ID, other.ID)
	if err != nil || len(lists) != 1 || lists[0].VideosCount != 0 {
		t.Fatalf("playlist list should not count the draft: %+v %v", lists, err)
	}
	history, err := users.GetWatchHistory(other.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("watch history should hide the draft, got %+v", history)
	}

	// 作者本人仍然可以访问
	if _, err := comments.ListByVideo(video.ID, owner.ID, 1, 10); err != nil {
		t.Fatalf("owner comment list: %v", err)
	}
	if _, err := comments.Add(owner.ID, video.ID, &dto.CommentRequest{Content: "note"}); err != nil {
		t.Fatalf("owner comment add: %v", err)
	}
	if data, err := likes.ToggleVideoLike(owner.ID, video.ID); err != nil || !data.Liked {
		t.Fatalf("owner like: %+v %v", data, err)
	}
	if detail, err = playlists.GetByID(mine.ID, owner.ID); err != nil || len(detail.Videos) != 1 || detail.VideosCount != 1 {
		t.Fatalf("owner should see the draft in the playlist: %+v %v", detail, err)
	}
}

func TestVideoTrimRange(t *testing.T) {
	db := newTestDB(t)
	store := &fakeStore{}
	svc := NewVideoService(repository.NewVideoRepository(db), repository.NewUserRepository(db), store, nil)
	owner := seedUser(t, db, "owner")
	video := seedVideo(t, db, owner.ID, "long")
	ctx := context.Background()

	cases := []struct {
		name       string
		start, end float64
	}{
		{"negative start", -1, 10},
		{"end before start", 30, 10},
		{"empty range", 10, 10},
		{"past duration", 0, 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.UpdateContent(ctx, owner.ID, video.ID, tc.start, tc.end, ""); !errors.Is(err, ErrInvalidTrimRange) {
				t.Fatalf("expected ErrInvalidTrimRange, got %v", err)
			}
		})
	}

	trimmed, err := svc.UpdateContent(ctx, owner.ID, video.ID, 10, 40, "")
	if err != nil {
		t.Fatalf("trim: %v", err)
	}
	if trimmed.Duration != 30 || !strings.HasSuffix(trimmed.VideoFile, "?trimmed") {
		t.Fatalf("unexpected trimmed video: %+v", trimmed)
	}

	store.failTrim = media.ErrInvalidRange
	if _, err := svc.UpdateContent(ctx, owner.ID, video.ID, 0, 5, ""); !errors.Is(err, ErrInvalidTrimRange) {
		t.Fatalf("store range error should map to ErrInvalidTrimRange, got %v", err)
	}
}

func TestWatchHistoryCountsViews(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	videoSvc := NewVideoService(repository.NewVideoRepository(db), userRepo, &fakeStore{}, nil)
	userSvc := NewUserService(userRepo, &fakeStore{})
	owner := seedUser(t, db, "owner")
	viewer := seedUser(t, db, "viewer")
	video := seedVideo(t, db, owner.ID, "watched")

	for i := 0; i < 2; i++ {
		if err := videoSvc.AddToWatchHistory(viewer.ID, video.ID); err != nil {
			t.Fatalf("watch %d: %v", i, err)
		}
	}

	history, err := userSvc.GetWatchHistory(viewer.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Views != 2 || history[0].Owner.Username != "owner" {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestSubscriptionRules(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(repository.NewSubscriptionRepository(db), repository.NewUserRepository(db))
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	if _, err := svc.Toggle(alice.ID, alice.ID); !errors.Is(err, ErrSelfSubscribe) {
		t.Fatalf("expected ErrSelfSubscribe, got %v", err)
	}
	if _, err := svc.Toggle(alice.ID, 9999); !errors.Is(err, ErrChannelNotFound) {
		t.Fatalf("expected ErrChannelNotFound, got %v", err)
	}
	if _, err := svc.ListSubscribers(9999); !errors.Is(err, ErrChannelNotFound) {
		t.Fatalf("expected ErrChannelNotFound for subscribers, got %v", err)
	}

	data, err := svc.Toggle(alice.ID, bob.ID)
	if err != nil || !data.Subscribed || data.Subscription == nil {
		t.Fatalf("subscribe: %+v %v", data, err)
	}
	channels, err := svc.ListSubscribedChannels(alice.ID)
	if err != nil || len(channels) != 1 || channels[0].Username != "bob" {
		t.Fatalf("subscribed channels: %+v %v", channels, err)
	}

	data, err = svc.Toggle(alice.ID, bob.ID)
	if err != nil || data.Subscribed {
		t.Fatalf("unsubscribe: %+v %v", data, err)
	}
	subscribers, err := svc.ListSubscribers(bob.ID)
	if err != nil {
		t.Fatalf("subscribers: %v", err)
	}
	if subscribers == nil || len(subscribers) != 0 {
		t.Fatalf("expected empty subscribers, got %#v", subscribers)
	}
}

func TestPlaylistFlow(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlaylistService(repository.NewPlaylistRepository(db), repository.NewVideoRepository(db), repository.NewUserRepository(db))
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")
	video := seedVideo(t, db, owner.ID, "clip")

	if _, err := svc.Create(owner.ID, &dto.PlaylistRequest{Name: " ", Description: "d"}); !errors.Is(err, ErrPlaylistFields) {
		t.Fatalf("expected ErrPlaylistFields, got %v", err)
	}
	playlist, err := svc.Create(owner.ID, &dto.PlaylistRequest{Name: "Faves", Description: "best"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	detail, err := svc.GetByID(playlist.ID, owner.ID)
	if err != nil {
		t.Fatalf("get empty: %v", err)
	}
	if detail.Videos == nil || len(detail.Videos) != 0 {
		t.Fatalf("expected empty video list, got %#v", detail.Videos)
	}

	if _, _, err := svc.AddVideo(other.ID, playlist.ID, video.ID); !errors.Is(err, ErrPlaylistNoPermission) {
		t.Fatalf("expected ErrPlaylistNoPermission, got %v", err)
	}
	if _, _, err := svc.AddVideo(owner.ID, playlist.ID, 9999); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}

	detail, added, err := svc.AddVideo(owner.ID, playlist.ID, video.ID)
	if err != nil || !added || len(detail.Videos) != 1 || detail.VideosCount != 1 {
		t.Fatalf("add: added=%v detail=%+v err=%v", added, detail, err)
	}
	detail, added, err = svc.AddVideo(owner.ID, playlist.ID, video.ID)
	if err != nil || added || len(detail.Videos) != 1 {
		t.Fatalf("duplicate add: added=%v detail=%+v err=%v", added, detail, err)
	}

	_, removed, err := svc.RemoveVideo(owner.ID, playlist.ID, video.ID)
	if err != nil || !removed {
		t.Fatalf("remove: removed=%v err=%v", removed, err)
	}
	_, removed, err = svc.RemoveVideo(owner.ID, playlist.ID, video.ID)
	if err != nil || removed {
		t.Fatalf("second remove: removed=%v err=%v", removed, err)
	}

	if _, err := svc.Update(other.ID, playlist.ID, &dto.PlaylistRequest{Name: "x", Description: "y"}); !errors.Is(err, ErrPlaylistNoPermission) {
		t.Fatalf("expected ErrPlaylistNoPermission on update, got %v", err)
	}
	updated, err := svc.Update(owner.ID, playlist.ID, &dto.PlaylistRequest{Name: "Renamed", Description: "desc"})
	if err != nil || updated.Name != "Renamed" {
		t.Fatalf("update: %+v %v", updated, err)
	}

	if _, err := svc.ListByUser(9999, owner.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	lists, err := svc.ListByUser(owner.ID, owner.ID)
	if err != nil || len(lists) != 1 {
		t.Fatalf("list by user: %+v %v", lists, err)
	}

	if err := svc.Delete(owner.ID, playlist.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(playlist.ID, owner.ID); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}
}

func TestTweetFlow(t *testing.T) {
	db := newTestDB(t)
	svc := NewTweetService(repository.NewTweetRepository(db), repository.NewUserRepository(db))
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")

	if _, err := svc.Create(owner.ID, &dto.TweetRequest{Content: ""}); !errors.Is(err, ErrTweetEmpty) {
		t.Fatalf("expected ErrTweetEmpty, got %v", err)
	}
	tweet, err := svc.Create(owner.ID, &dto.TweetRequest{Content: "hello"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Update(other.ID, tweet.ID, &dto.TweetRequest{Content: "x"}); !errors.Is(err, ErrTweetNoPermission) {
		t.Fatalf("expected ErrTweetNoPermission, got %v", err)
	}

	tweets, err := svc.ListByUser(owner.ID)
	if err != nil || len(tweets) != 1 || tweets[0].Content != "hello" {
		t.Fatalf("list: %+v %v", tweets, err)
	}
	if _, err := svc.ListByUser(9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if err := svc.Delete(owner.ID, tweet.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(owner.ID, tweet.ID); !errors.Is(err, ErrTweetNotFound) {
		t.Fatalf("expected ErrTweetNotFound, got %v", err)
	}
}

func TestChannelProfileAndImages(t *testing.T) {
	db := newTestDB(t)
	store := &fakeStore{}
	userRepo := repository.NewUserRepository(db)
	users := NewUserService(userRepo, store)
	subs := NewSubscriptionService(repository.NewSubscriptionRepository(db), userRepo)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	if _, err := subs.Toggle(alice.ID, bob.ID); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	profile, err := users.GetChannelProfile("BOB", alice.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if !profile.IsSubscribed || profile.SubscribersCount != 1 {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if _, err := users.GetChannelProfile(" ", alice.ID); !errors.Is(err, ErrUsernameRequired) {
		t.Fatalf("expected ErrUsernameRequired, got %v", err)
	}
	if _, err := users.GetChannelProfile("nobody", alice.ID); !errors.Is(err, ErrChannelNotFound) {
		t.Fatalf("expected ErrChannelNotFound, got %v", err)
	}

	if _, err := users.UpdateAvatar(context.Background(), alice.ID, ""); !errors.Is(err, ErrImageRequired) {
		t.Fatalf("expected ErrImageRequired, got %v", err)
	}
	info, err := users.UpdateAvatar(context.Background(), alice.ID, "/tmp/new-avatar.png")
	if err != nil {
		t.Fatalf("update avatar: %v", err)
	}
	if info.Avatar != testMediaBase+"/images/new-avatar.png" {
		t.Fatalf("unexpected avatar %q", info.Avatar)
	}
	if len(store.destroyed) != 1 || store.destroyed[0] != alice.Avatar {
		t.Fatalf("expected old avatar destroyed, got %v", store.destroyed)
	}

	if _, err := users.UpdateAccountDetails(alice.ID, &dto.UpdateAccountRequest{FullName: "Alice", Email: "bob@example.com"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestDashboard(t *testing.T) {
	db := newTestDB(t)
	videoRepo := repository.NewVideoRepository(db)
	svc := NewDashboardService(repository.NewDashboardRepository(db), videoRepo)
	owner := seedUser(t, db, "owner")
	seedVideo(t, db, owner.ID, "a")
	draft := seedVideo(t, db, owner.ID, "b")
	if _, err := videoRepo.Update(draft.ID, map[string]interface{}{"is_published": false}); err != nil {
		t.Fatalf("unpublish: %v", err)
	}

	stats, err := svc.GetChannelStats(owner.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalVideos != 2 {
		t.Fatalf("expected 2 videos, got %d", stats.TotalVideos)
	}
	if _, err := svc.GetChannelStats(9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	videos, err := svc.GetChannelVideos(owner.ID)
	if err != nil {
		t.Fatalf("videos: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("channel videos should include unpublished, got %d", len(videos))
	}
}

func TestSearchFallsBackToDatabase(t *testing.T) {
	db := newTestDB(t)
	videoRepo := repository.NewVideoRepository(db)
	owner := seedUser(t, db, "owner")
	seedVideo(t, db, owner.ID, "golang")
	seedVideo(t, db, owner.ID, "rust")
	draft := seedVideo(t, db, owner.ID, "golang-draft")
	if _, err := videoRepo.Update(draft.ID, map[string]interface{}{"is_published": false}); err != nil {
		t.Fatalf("unpublish: %v", err)
	}

	svc := NewSearchService(videoRepo, nil, "videos")
	data, err := svc.SearchVideos(context.Background(), &dto.SearchVideoRequest{Q: "golang"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if data.Total != 1 || len(data.Videos) != 1 || data.Videos[0].Title != "golang" {
		t.Fatalf("unexpected results: %+v", data)
	}
	if data.Videos[0].OwnerName != "owner" {
		t.Fatalf("expected owner name, got %q", data.Videos[0].OwnerName)
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, limit       int
		wantPage, wantLim int
	}{
		{0, 0, 1, 10},
		{-3, 5, 1, 5},
		{2, 1000, 2, 10},
	}
	for _, tc := range cases {
		page, limit := normalizePage(tc.page, tc.limit, 10)
		if page != tc.wantPage || limit != tc.wantLim {
			t.Errorf("normalizePage(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLim)
		}
	}
	if got := totalPages(21, 10); got != 3 {
		t.Errorf("totalPages(21, 10) = %d, want 3", got)
	}
}
