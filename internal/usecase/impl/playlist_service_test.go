package impl

import (
	"context"
	"testing"

	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlaylistServiceUnderTest(t *testing.T) (usecase.PlaylistUsecase, usecase.VideoUsecase, *serviceFixtures) {
	t.Helper()

	fixtures := newServiceFixtures(t)
	playlistSvc := NewPlaylistService(PlaylistServiceParams{
		PlaylistRepo: fixtures.factory.playlistRepo,
		VideoRepo:    fixtures.factory.videoRepo,
		Logger:       newDiscardLogger(),
	})
	videoSvc := NewVideoService(VideoServiceParams{
		TxManager: fixtures.txManager,
		VideoRepo: fixtures.factory.videoRepo,
		UserRepo:  fixtures.factory.userRepo,
		Logger:    newDiscardLogger(),
	})

	return playlistSvc, videoSvc, fixtures
}

func TestPlaylistService_CreateAndGet(t *testing.T) {
	svc, _, _ := newPlaylistServiceUnderTest(t)
	owner := uuid.New()

	playlist, err := svc.Create(context.Background(), owner, &usecase.CreatePlaylistInput{
		Name:        "  Favorites ",
		Description: "best of",
	})
	require.NoError(t, err)
	assert.Equal(t, "Favorites", playlist.Name)
	assert.Empty(t, playlist.VideoIDs)

	got, err := svc.Get(context.Background(), playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, playlist.ID, got.ID)

	_, err = svc.Create(context.Background(), owner, &usecase.CreatePlaylistInput{Name: "  "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestPlaylistService_AddVideo(t *testing.T) {
	svc, videoSvc, _ := newPlaylistServiceUnderTest(t)
	owner := uuid.New()

	playlist, err := svc.Create(context.Background(), owner, &usecase.CreatePlaylistInput{Name: "Watch later"})
	require.NoError(t, err)
	video := publishTestVideo(t, videoSvc, owner, "Queued")

	updated, err := svc.AddVideo(context.Background(), owner, playlist.ID, video.ID)
	require.NoError(t, err)
	require.Len(t, updated.VideoIDs, 1)
	assert.Equal(t, video.ID, updated.VideoIDs[0])

	// The same video cannot be added twice.
	_, err = svc.AddVideo(context.Background(), owner, playlist.ID, video.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	// A nonexistent video is rejected.
	_, err = svc.AddVideo(context.Background(), owner, playlist.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestPlaylistService_RemoveVideo(t *testing.T) {
	svc, videoSvc, _ := newPlaylistServiceUnderTest(t)
	owner := uuid.New()

	playlist, err := svc.Create(context.Background(), owner, &usecase.CreatePlaylistInput{Name: "Watch later"})
	require.NoError(t, err)
	video := publishTestVideo(t, videoSvc, owner, "Queued")

	_, err = svc.AddVideo(context.Background(), owner, playlist.ID, video.ID)
	require.NoError(t, err)

	updated, err := svc.RemoveVideo(context.Background(), owner, playlist.ID, video.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.VideoIDs)

	// Removing a video that is not in the playlist fails.
	_, err = svc.RemoveVideo(context.Background(), owner, playlist.ID, video.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestPlaylistService_OwnershipEnforced(t *testing.T) {
	svc, videoSvc, _ := newPlaylistServiceUnderTest(t)
	owner := uuid.New()
	stranger := uuid.New()

	playlist, err := svc.Create(context.Background(), owner, &usecase.CreatePlaylistInput{Name: "Private"})
	require.NoError(t, err)
	video := publishTestVideo(t, videoSvc, owner, "Queued")

	_, err = svc.AddVideo(context.Background(), stranger, playlist.ID, video.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	_, err = svc.Update(context.Background(), stranger, playlist.ID, &usecase.UpdatePlaylistInput{Name: "Hijacked"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	err = svc.Delete(context.Background(), stranger, playlist.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	// Missing playlists stay distinguishable from foreign ones.
	_, err = svc.Update(context.Background(), owner, uuid.New(), &usecase.UpdatePlaylistInput{Name: "Nothing"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestPlaylistService_UpdateAndDelete(t *testing.T) {
	svc, _, _ := newPlaylistServiceUnderTest(t)
	owner := uuid.New()

	playlist, err := svc.Create(context.Background(), owner, &usecase.CreatePlaylistInput{Name: "Old name"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), owner, playlist.ID, &usecase.UpdatePlaylistInput{
		Name:        "New name",
		Description: "updated",
	})
	require.NoError(t, err)
	assert.Equal(t, "New name", updated.Name)

	require.NoError(t, svc.Delete(context.Background(), owner, playlist.ID))

	_, err = svc.Get(context.Background(), playlist.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestPlaylistService_ListByOwner(t *testing.T) {
	svc, _, _ := newPlaylistServiceUnderTest(t)
	owner := uuid.New()

	_, err := svc.Create(context.Background(), owner, &usecase.CreatePlaylistInput{Name: "One"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), owner, &usecase.CreatePlaylistInput{Name: "Two"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), uuid.New(), &usecase.CreatePlaylistInput{Name: "Other"})
	require.NoError(t, err)

	playlists, err := svc.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, playlists, 2)
}
