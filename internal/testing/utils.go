// Package testing provides utilities and helpers for testing the sketch site.
package testing

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchy-app/sketchy/model"
	"github.com/sketchy-app/sketchy/store"
)

// CreateTestStore opens an in-memory store that is closed when the test ends.
func CreateTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	st, err := store.Open("")
	require.NoError(t, err, "Failed to open test store")

	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Logf("Warning: failed to close test store: %v", err)
		}
	})

	return st
}

// CreateTestUser creates a user whose display name is derived from the login.
func CreateTestUser(t *testing.T, st *store.SQLiteStore, login string) model.User {
	t.Helper()

	user, err := st.CreateUser(context.Background(), model.User{
		Login:    login,
		Username: "User " + login,
	})
	require.NoError(t, err, "Failed to create test user %s", login)

	return user
}

// CreateTestSketch creates a sketch authored by the given user.
func CreateTestSketch(t *testing.T, st *store.SQLiteStore, authorID int64, name, place string) model.Sketch {
	t.Helper()

	sketch, err := st.CreateSketch(context.Background(), model.Sketch{
		Name:     name,
		Place:    place,
		Image:    fmt.Sprintf("%s.png", name),
		AuthorID: authorID,
	})
	require.NoError(t, err, "Failed to create test sketch %s", name)

	return sketch
}

// Gallery is a small seeded data set shared by handler tests.
type Gallery struct {
	Alice    model.User
	Bob      model.User
	Carol    model.User
	Sketches []model.Sketch
}

// CreateTestGallery seeds three users, four sketches, and two follow edges:
// bob and carol follow alice.
func CreateTestGallery(t *testing.T, st *store.SQLiteStore) Gallery {
	t.Helper()

	g := Gallery{
		Alice: CreateTestUser(t, st, "alice"),
		Bob:   CreateTestUser(t, st, "bob"),
		Carol: CreateTestUser(t, st, "carol"),
	}

	g.Sketches = []model.Sketch{
		CreateTestSketch(t, st, g.Alice.ID, "Red Square sketch", "Moscow"),
		CreateTestSketch(t, st, g.Alice.ID, "Eiffel sketch", "Paris"),
		CreateTestSketch(t, st, g.Bob.ID, "Kremlin at dawn", "Moscow"),
		CreateTestSketch(t, st, g.Carol.ID, "Louvre courtyard", "Paris"),
	}

	ctx := context.Background()
	require.NoError(t, st.Follow(ctx, g.Bob.ID, g.Alice.ID))
	require.NoError(t, st.Follow(ctx, g.Carol.ID, g.Alice.ID))

	return g
}

// AssertSketchIDs verifies the order of sketch IDs.
func AssertSketchIDs(t *testing.T, expected []int64, sketches []model.Sketch) {
	t.Helper()

	ids := make([]int64, len(sketches))
	for i, s := range sketches {
		ids[i] = s.ID
	}
	assert.Equal(t, expected, ids, "Sketch order should match")
}
