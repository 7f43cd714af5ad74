package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/sketchy-app/sketchy/internal/errors"
	"github.com/sketchy-app/sketchy/model"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustCreateUser(t *testing.T, s *SQLiteStore, login string) model.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), model.User{Login: login})
	require.NoError(t, err)
	return u
}

func TestCreateAndGetUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u := mustCreateUser(t, s, "ivan")
	assert.NotZero(t, u.ID)
	assert.Equal(t, "ivan", u.Username)
	assert.Equal(t, model.DefaultUserImage, u.Image)

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Login, got.Login)
	assert.Equal(t, u.Username, got.Username)
	assert.True(t, u.CreatedAt.Equal(got.CreatedAt))

	byLogin, err := s.GetUserByLogin(ctx, "ivan")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byLogin.ID)

	_, err = s.GetUser(ctx, 999)
	assert.ErrorIs(t, err, internalErrors.ErrUserNotFound)

	_, err = s.GetUserByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, internalErrors.ErrUserNotFound)
}

func TestCreateUser_Validation(t *testing.T) {
	s := openTestStore(t)
	mustCreateUser(t, s, "ivan")

	_, err := s.CreateUser(context.Background(), model.User{Login: "ivan"})
	assert.ErrorIs(t, err, internalErrors.ErrInvalidInput)

	_, err = s.CreateUser(context.Background(), model.User{Login: "  "})
	assert.ErrorIs(t, err, internalErrors.ErrInvalidInput)
}

func TestUpdateUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "ivan")

	u.Username = "Ivan the Painter"
	u.Description = "watercolors"
	require.NoError(t, s.UpdateUser(ctx, u))

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ivan the Painter", got.Username)
	assert.Equal(t, "watercolors", got.Description)

	err = s.UpdateUser(ctx, model.User{ID: 404, Username: "x"})
	assert.ErrorIs(t, err, internalErrors.ErrUserNotFound)
}

func TestSketches(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	ivan := mustCreateUser(t, s, "ivan")
	olga := mustCreateUser(t, s, "olga")

	first, err := s.CreateSketch(ctx, model.Sketch{Name: "Red Square", Place: "Moscow", AuthorID: ivan.ID})
	require.NoError(t, err)
	assert.Equal(t, "ivan", first.Author.Login)

	_, err = s.CreateSketch(ctx, model.Sketch{Name: "Neva", Place: "Saint Petersburg", AuthorID: olga.ID})
	require.NoError(t, err)

	_, err = s.CreateSketch(ctx, model.Sketch{Name: "Orphan", AuthorID: 999})
	assert.ErrorIs(t, err, internalErrors.ErrUserNotFound)

	all, err := s.ListSketches(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Red Square", all[0].Name)
	assert.Equal(t, "olga", all[1].Author.Login)

	got, err := s.GetSketch(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Name, got.Name)
	assert.Equal(t, ivan.ID, got.Author.ID)

	_, err = s.GetSketch(ctx, 999)
	assert.ErrorIs(t, err, internalErrors.ErrSketchNotFound)

	id, err := s.RandomSketchID(ctx)
	require.NoError(t, err)
	assert.Contains(t, []int64{all[0].ID, all[1].ID}, id)
}

func TestRandomSketchID_Empty(t *testing.T) {
	s := openTestStore(t)
	_, err := s.RandomSketchID(context.Background())
	assert.ErrorIs(t, err, internalErrors.ErrSketchNotFound)
}

func TestListSketches_ReturnsSnapshot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	ivan := mustCreateUser(t, s, "ivan")

	_, err := s.CreateSketch(ctx, model.Sketch{Name: "one", AuthorID: ivan.ID})
	require.NoError(t, err)

	snapshot, err := s.ListSketches(ctx)
	require.NoError(t, err)

	_, err = s.CreateSketch(ctx, model.Sketch{Name: "two", AuthorID: ivan.ID})
	require.NoError(t, err)

	assert.Len(t, snapshot, 1)
}

func TestProfileAndFollows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	ivan := mustCreateUser(t, s, "ivan")
	olga := mustCreateUser(t, s, "olga")
	petr := mustCreateUser(t, s, "petr")

	for _, name := range []string{"a", "b", "c"} {
		_, err := s.CreateSketch(ctx, model.Sketch{Name: name, AuthorID: ivan.ID})
		require.NoError(t, err)
	}

	require.NoError(t, s.Follow(ctx, olga.ID, ivan.ID))
	require.NoError(t, s.Follow(ctx, petr.ID, ivan.ID))
	require.NoError(t, s.Follow(ctx, ivan.ID, olga.ID))
	require.NoError(t, s.Follow(ctx, olga.ID, ivan.ID)) // duplicate is ignored

	profile, err := s.GetProfile(ctx, ivan.ID)
	require.NoError(t, err)

	assert.Equal(t, "ivan", profile.User.Login)
	require.Len(t, profile.Sketches, 3)
	assert.Equal(t, "a", profile.Sketches[0].Name)
	require.Len(t, profile.Followers, 2)
	assert.Equal(t, olga.ID, profile.Followers[0].ID)
	assert.Equal(t, petr.ID, profile.Followers[1].ID)
	require.Len(t, profile.Follows, 1)
	assert.Equal(t, olga.ID, profile.Follows[0].ID)
	assert.True(t, profile.HasFollower(petr.ID))

	require.NoError(t, s.Unfollow(ctx, petr.ID, ivan.ID))
	profile, err = s.GetProfile(ctx, ivan.ID)
	require.NoError(t, err)
	assert.False(t, profile.HasFollower(petr.ID))

	assert.ErrorIs(t, s.Follow(ctx, ivan.ID, ivan.ID), internalErrors.ErrInvalidInput)
	assert.ErrorIs(t, s.Follow(ctx, ivan.ID, 999), internalErrors.ErrUserNotFound)

	_, err = s.GetProfile(ctx, 999)
	assert.ErrorIs(t, err, internalErrors.ErrUserNotFound)
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sketchy.db")

	s, err := Open(path)
	require.NoError(t, err)
	u := mustCreateUser(t, s, "ivan")
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ivan", got.Login)
}

func TestApplyProfileChanges(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	ivan := mustCreateUser(t, s, "ivan")
	olga := mustCreateUser(t, s, "olga")

	edited := ivan
	edited.Username = "Ivan P."
	require.NoError(t, s.ApplyProfileChanges(ctx, model.ProfileChanges{
		User:   &edited,
		Follow: &model.FollowChange{FollowerID: olga.ID, FolloweeID: ivan.ID, Follow: true},
	}))

	profile, err := s.GetProfile(ctx, ivan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ivan P.", profile.User.Username)
	assert.True(t, profile.HasFollower(olga.ID))

	require.NoError(t, s.ApplyProfileChanges(ctx, model.ProfileChanges{
		Follow: &model.FollowChange{FollowerID: olga.ID, FolloweeID: ivan.ID, Follow: false},
	}))
	profile, err = s.GetProfile(ctx, ivan.ID)
	require.NoError(t, err)
	assert.False(t, profile.HasFollower(olga.ID))
	assert.Equal(t, "Ivan P.", profile.User.Username)
}

func TestApplyProfileChanges_RollsBackOnFailure(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	ivan := mustCreateUser(t, s, "ivan")

	edited := ivan
	edited.Username = "Never stored"
	err := s.ApplyProfileChanges(ctx, model.ProfileChanges{
		User:   &edited,
		Follow: &model.FollowChange{FollowerID: 999, FolloweeID: ivan.ID, Follow: true},
	})
	require.ErrorIs(t, err, internalErrors.ErrUserNotFound)

	got, err := s.GetUser(ctx, ivan.ID)
	require.NoError(t, err)
	assert.Equal(t, "ivan", got.Username)

	require.NoError(t, s.ApplyProfileChanges(ctx, model.ProfileChanges{}))
}
