package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"vidtube/config"
	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/repository"
	"vidtube/internal/domain/service"
	"vidtube/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// The services are exercised against hand-written in-memory repositories rather
// than generated mocks. The refresh-token compare-and-swap is real state here,
// so rotation and replay behavior can be asserted end to end.

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTokenService(t *testing.T, accessTTL, refreshTTL time.Duration) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"
	cfg.SecretKey.AccessTTL = accessTTL
	cfg.SecretKey.RefreshTTL = refreshTTL

	svc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

// --- user repository ---

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*entity.User
	history []*entity.WatchHistoryEntry
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func cloneUser(u *entity.User) *entity.User {
	clone := *u

	return &clone
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == identifier || u.Email == identifier {
			return cloneUser(u), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Username, user.Username) || strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicateUser
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = cloneUser(user)

	return nil
}

func (r *fakeUserRepo) UpdateAccount(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}

	for id, existing := range r.users {
		if id == user.ID {
			continue
		}
		if strings.EqualFold(existing.Username, user.Username) || strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicateUser
		}
	}

	stored.Username = user.Username
	stored.Email = user.Email
	stored.FullName = user.FullName
	stored.Avatar = user.Avatar
	stored.CoverImage = user.CoverImage
	stored.UpdatedAt = time.Now()

	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	stored.PasswordHash = passwordHash

	return nil
}

func (r *fakeUserRepo) SetRefreshToken(_ context.Context, id uuid.UUID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	stored.RefreshToken = token

	return nil
}

func (r *fakeUserRepo) RotateRefreshToken(_ context.Context, id uuid.UUID, oldToken, newToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[id]
	if !ok || stored.RefreshToken != oldToken || oldToken == "" {
		return repository.ErrRefreshTokenMismatch
	}
	stored.RefreshToken = newToken

	return nil
}

func (r *fakeUserRepo) ClearRefreshToken(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	stored.RefreshToken = ""

	return nil
}

func (r *fakeUserRepo) AppendWatchHistory(_ context.Context, id uuid.UUID, videoID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = append(r.history, &entity.WatchHistoryEntry{
		UserID:    id,
		VideoID:   videoID,
		WatchedAt: time.Now(),
	})

	return nil
}

func (r *fakeUserRepo) FindWatchHistory(_ context.Context, id uuid.UUID) ([]*entity.WatchHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries []*entity.WatchHistoryEntry
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].UserID == id {
			entries = append(entries, r.history[i])
		}
	}

	return entries, nil
}

// storedRefreshToken peeks at the persisted token for assertions.
func (r *fakeUserRepo) storedRefreshToken(id uuid.UUID) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		return u.RefreshToken
	}

	return ""
}

// --- video repository ---

type fakeVideoRepo struct {
	mu     sync.Mutex
	videos map[uuid.UUID]*entity.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[uuid.UUID]*entity.Video)}
}

func cloneVideo(v *entity.Video) *entity.Video {
	clone := *v

	return &clone
}

func (r *fakeVideoRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.videos[id]; ok {
		return cloneVideo(v), nil
	}

	return nil, repository.ErrVideoNotFound
}

func (r *fakeVideoRepo) List(_ context.Context, query repository.VideoQuery) ([]*entity.Video, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Video
	for _, v := range r.videos {
		if !query.IncludeDrafts && !v.IsPublished {
			continue
		}
		if query.OwnerID != nil && v.OwnerID != *query.OwnerID {
			continue
		}
		if query.Search != "" && !strings.Contains(strings.ToLower(v.Title), strings.ToLower(query.Search)) {
			continue
		}
		matched = append(matched, cloneVideo(v))
	}

	sort.Slice(matched, func(i, j int) bool {
		if query.SortDesc {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}

		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	return matched, int64(len(matched)), nil
}

func (r *fakeVideoRepo) Create(_ context.Context, video *entity.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}
	video.CreatedAt = time.Now()
	video.UpdatedAt = video.CreatedAt
	r.videos[video.ID] = cloneVideo(video)

	return nil
}

func (r *fakeVideoRepo) Update(_ context.Context, video *entity.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.videos[video.ID]
	if !ok {
		return repository.ErrVideoNotFound
	}

	stored.Title = video.Title
	stored.Description = video.Description
	stored.Thumbnail = video.Thumbnail
	stored.IsPublished = video.IsPublished
	stored.UpdatedAt = time.Now()

	return nil
}

func (r *fakeVideoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.videos[id]; !ok {
		return repository.ErrVideoNotFound
	}
	delete(r.videos, id)

	return nil
}

func (r *fakeVideoRepo) IncrementViews(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.videos[id]
	if !ok {
		return repository.ErrVideoNotFound
	}
	stored.Views++

	return nil
}

func (r *fakeVideoRepo) StatsByOwner(_ context.Context, ownerID uuid.UUID) (*repository.ChannelStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &repository.ChannelStats{}
	for _, v := range r.videos {
		if v.OwnerID == ownerID {
			stats.TotalVideos++
			stats.TotalViews += v.Views
		}
	}

	return stats, nil
}

// --- comment repository ---

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*entity.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*entity.Comment)}
}

func cloneComment(c *entity.Comment) *entity.Comment {
	clone := *c

	return &clone
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.comments[id]; ok {
		return cloneComment(c), nil
	}

	return nil, repository.ErrCommentNotFound
}

func (r *fakeCommentRepo) ListByVideo(_ context.Context, videoID uuid.UUID, _, _ int) ([]*entity.Comment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Comment
	for _, c := range r.comments {
		if c.VideoID == videoID {
			matched = append(matched, cloneComment(c))
		}
	}

	return matched, int64(len(matched)), nil
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	r.comments[comment.ID] = cloneComment(comment)

	return nil
}

func (r *fakeCommentRepo) Update(_ context.Context, comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.comments[comment.ID]
	if !ok {
		return repository.ErrCommentNotFound
	}
	stored.Content = comment.Content
	stored.UpdatedAt = time.Now()

	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return repository.ErrCommentNotFound
	}
	delete(r.comments, id)

	return nil
}

func (r *fakeCommentRepo) DeleteByVideo(_ context.Context, videoID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.comments {
		if c.VideoID == videoID {
			delete(r.comments, id)
		}
	}

	return nil
}

func (r *fakeCommentRepo) countByVideo(videoID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, c := range r.comments {
		if c.VideoID == videoID {
			count++
		}
	}

	return count
}

// --- playlist repository ---

type fakePlaylistRepo struct {
	mu        sync.Mutex
	playlists map[uuid.UUID]*entity.Playlist
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{playlists: make(map[uuid.UUID]*entity.Playlist)}
}

func clonePlaylist(p *entity.Playlist) *entity.Playlist {
	clone := *p
	clone.VideoIDs = append([]uuid.UUID(nil), p.VideoIDs...)

	return &clone
}

func (r *fakePlaylistRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.playlists[id]; ok {
		return clonePlaylist(p), nil
	}

	return nil, repository.ErrPlaylistNotFound
}

func (r *fakePlaylistRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Playlist
	for _, p := range r.playlists {
		if p.OwnerID == ownerID {
			matched = append(matched, clonePlaylist(p))
		}
	}

	return matched, nil
}

func (r *fakePlaylistRepo) Create(_ context.Context, playlist *entity.Playlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playlist.ID == uuid.Nil {
		playlist.ID = uuid.New()
	}
	playlist.CreatedAt = time.Now()
	playlist.UpdatedAt = playlist.CreatedAt
	r.playlists[playlist.ID] = clonePlaylist(playlist)

	return nil
}

func (r *fakePlaylistRepo) Update(_ context.Context, playlist *entity.Playlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.playlists[playlist.ID]; !ok {
		return repository.ErrPlaylistNotFound
	}
	updated := clonePlaylist(playlist)
	updated.UpdatedAt = time.Now()
	r.playlists[playlist.ID] = updated

	return nil
}

func (r *fakePlaylistRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.playlists[id]; !ok {
		return repository.ErrPlaylistNotFound
	}
	delete(r.playlists, id)

	return nil
}

// --- subscription repository ---

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	subs map[uuid.UUID]*entity.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[uuid.UUID]*entity.Subscription)}
}

func (r *fakeSubscriptionRepo) Find(_ context.Context, subscriberID, channelID uuid.UUID) (*entity.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.subs {
		if s.SubscriberID == subscriberID && s.ChannelID == channelID {
			clone := *s

			return &clone, nil
		}
	}

	return nil, repository.ErrSubscriptionNotFound
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *entity.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.subs {
		if s.SubscriberID == sub.SubscriberID && s.ChannelID == sub.ChannelID {
			return nil
		}
	}

	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	sub.CreatedAt = time.Now()
	clone := *sub
	r.subs[sub.ID] = &clone

	return nil
}

func (r *fakeSubscriptionRepo) Delete(_ context.Context, subscriberID, channelID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.subs {
		if s.SubscriberID == subscriberID && s.ChannelID == channelID {
			delete(r.subs, id)

			return nil
		}
	}

	return repository.ErrSubscriptionNotFound
}

func (r *fakeSubscriptionRepo) ListSubscribers(_ context.Context, channelID uuid.UUID) ([]*entity.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Subscription
	for _, s := range r.subs {
		if s.ChannelID == channelID {
			clone := *s
			matched = append(matched, &clone)
		}
	}

	return matched, nil
}

func (r *fakeSubscriptionRepo) ListSubscribedChannels(_ context.Context, subscriberID uuid.UUID) ([]*entity.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Subscription
	for _, s := range r.subs {
		if s.SubscriberID == subscriberID {
			clone := *s
			matched = append(matched, &clone)
		}
	}

	return matched, nil
}

func (r *fakeSubscriptionRepo) CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error) {
	subs, _ := r.ListSubscribers(ctx, channelID)

	return int64(len(subs)), nil
}

func (r *fakeSubscriptionRepo) CountSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) (int64, error) {
	subs, _ := r.ListSubscribedChannels(ctx, subscriberID)

	return int64(len(subs)), nil
}

// --- transaction plumbing ---

// fakeRepoFactory hands out the shared in-memory repositories.
type fakeRepoFactory struct {
	userRepo     *fakeUserRepo
	videoRepo    *fakeVideoRepo
	commentRepo  *fakeCommentRepo
	playlistRepo *fakePlaylistRepo
	subRepo      *fakeSubscriptionRepo
}

func newFakeRepoFactory() *fakeRepoFactory {
	return &fakeRepoFactory{
		userRepo:     newFakeUserRepo(),
		videoRepo:    newFakeVideoRepo(),
		commentRepo:  newFakeCommentRepo(),
		playlistRepo: newFakePlaylistRepo(),
		subRepo:      newFakeSubscriptionRepo(),
	}
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository                 { return f.userRepo }
func (f *fakeRepoFactory) VideoRepo() repository.VideoRepository               { return f.videoRepo }
func (f *fakeRepoFactory) CommentRepo() repository.CommentRepository           { return f.commentRepo }
func (f *fakeRepoFactory) PlaylistRepo() repository.PlaylistRepository         { return f.playlistRepo }
func (f *fakeRepoFactory) SubscriptionRepo() repository.SubscriptionRepository { return f.subRepo }

// fakeTxManager runs the callback directly against the shared repositories.
// The in-memory stores mutate in place, so there is no rollback; tests that
// assert failure paths check state explicitly.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm.factory)
}

// --- fixtures ---

type serviceFixtures struct {
	factory      *fakeRepoFactory
	txManager    *fakeTxManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
}

func newServiceFixtures(t *testing.T) *serviceFixtures {
	t.Helper()

	factory := newFakeRepoFactory()

	return &serviceFixtures{
		factory:      factory,
		txManager:    &fakeTxManager{factory: factory},
		hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		tokenService: newTestTokenService(t, 15*time.Minute, 24*time.Hour),
	}
}
