package index

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/yhlin/leetcoder/internal/db"
	apperrors "github.com/yhlin/leetcoder/internal/errors"
	"github.com/yhlin/leetcoder/internal/models"
)

func setupIndex(t *testing.T) (*Index, *db.Store, string) {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	m := db.NewMigrator(conn)
	require.NoError(t, m.Initialize())
	require.NoError(t, m.Up())

	store := db.NewStore(conn)
	dir := t.TempDir()
	return New(store, dir), store, dir
}

func storedProblem(t *testing.T, store *db.Store) *models.Problem {
	t.Helper()
	p := &models.Problem{
		ID:          1,
		Title:       "Two Sum",
		Slug:        "two-sum",
		Difficulty:  models.DifficultyEasy,
		Content:     "<p>desc</p>",
		CodeSnippet: "def twoSum(self, nums, target):",
		Tags:        models.StringList{"Array", "Hash Table"},
		URL:         models.ProblemURL("two-sum"),
	}
	require.NoError(t, store.UpsertProblem(p))
	return p
}

func TestExistsFalseWhenNeverAdded(t *testing.T) {
	ix, store, _ := setupIndex(t)
	storedProblem(t, store)

	exists, err := ix.Exists(1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExistsTrueWhenFilePresent(t *testing.T) {
	ix, store, dir := setupIndex(t)
	p := storedProblem(t, store)

	filename := "p0001_two_sum.py"
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte("stub"), 0644))
	require.NoError(t, ix.Add(p, filename))

	exists, err := ix.Exists(1)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestExistsPurgesStaleRecordWhenFileDeleted(t *testing.T) {
	ix, store, dir := setupIndex(t)
	p := storedProblem(t, store)

	filename := "p0001_two_sum.py"
	path := filepath.Join(dir, filename)
	require.NoError(t, os.WriteFile(path, []byte("stub"), 0644))
	require.NoError(t, ix.Add(p, filename))

	// Delete the file out-of-band; the bookkeeping record is now stale.
	require.NoError(t, os.Remove(path))

	exists, err := ix.Exists(1)
	require.NoError(t, err)
	assert.False(t, exists)

	// The stale record was dropped as a side effect.
	added, err := store.IsAdded(1)
	require.NoError(t, err)
	assert.False(t, added)
}

func TestAddRejectsUnknownProblem(t *testing.T) {
	ix, _, _ := setupIndex(t)

	err := ix.Add(&models.Problem{ID: 99, Slug: "ghost"}, "p0099_ghost.py")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestSearchAndListPassThroughAddedOnly(t *testing.T) {
	ix, store, dir := setupIndex(t)
	p := storedProblem(t, store)

	// A second stored problem that is never added.
	other := *p
	other.ID = 2
	other.Title = "Add Two Numbers"
	other.Slug = "add-two-numbers"
	other.Tags = models.StringList{"Linked List"}
	require.NoError(t, store.UpsertProblem(&other))

	filename := "p0001_two_sum.py"
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte("stub"), 0644))
	require.NoError(t, ix.Add(p, filename))

	byTitle, err := ix.SearchByTitle("sum")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, 1, byTitle[0].ID)

	byTag, err := ix.SearchByTag("array")
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, 1, byTag[0].ID)

	all, err := ix.All()
	require.NoError(t, err)
	require.Len(t, all, 1)

	stats, err := ix.Statistics()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
}
