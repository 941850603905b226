package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"applauncher-backend/config"
	"applauncher-backend/models"
	"applauncher-backend/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*FileCriteriaRepository, storage.Storage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewFileCriteriaRepository(store, nil), store
}

func newSet(userID, name string, ts time.Time) *models.CriteriaSet {
	return &models.CriteriaSet{
		ID:        uuid.New(),
		UserID:    userID,
		Timestamp: ts,
		Name:      name,
		Criteria:  models.CriteriaList{{ID: 1, Text: "Artikel 2.1: aanvrager is een stichting"}},
		Summary:   "Regeling voor culturele evenementen",
	}
}

func TestFileCriteriaRepository_SaveListDelete(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	set := newSet("user-1", "Subsidie 2025-01-02 10:00", time.Now())
	require.NoError(t, repo.Create(ctx, set))

	sets, err := repo.ListByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, set.ID, sets[0].ID)
	assert.Equal(t, set.Criteria, sets[0].Criteria)

	require.NoError(t, repo.Delete(ctx, set.ID, "user-1"))

	sets, err = repo.ListByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestFileCriteriaRepository_KeyLayout(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepo(t)

	ts := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	set := newSet("user-1", "x", ts)
	require.NoError(t, repo.Create(ctx, set))

	keys, err := store.List(ctx, "subsidies")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "subsidies/subsidy_757365722d31_20250304050607_"+set.ID.String()[:8]+".json", keys[0])
}

func TestFileCriteriaRepository_ListNewestFirstAndPerUser(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	older := newSet("user-1", "older", base)
	newer := newSet("user-1", "newer", base.Add(time.Hour))
	other := newSet("user-1_b", "someone else", base.Add(2*time.Hour))
	for _, s := range []*models.CriteriaSet{older, newer, other} {
		require.NoError(t, repo.Create(ctx, s))
	}

	sets, err := repo.ListByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "newer", sets[0].Name)
	assert.Equal(t, "older", sets[1].Name)
}

func TestFileCriteriaRepository_DeleteChecksOwner(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	set := newSet("owner", "x", time.Now())
	require.NoError(t, repo.Create(ctx, set))

	assert.ErrorIs(t, repo.Delete(ctx, set.ID, "intruder"), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, uuid.New(), "owner"), ErrNotFound)

	got, err := repo.GetByID(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner", got.UserID)
}

func TestFileCriteriaRepository_FindByContentHash(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	set := newSet("u", "x", time.Now())
	set.ContentHash = "abc"
	require.NoError(t, repo.Create(ctx, set))

	got, err := repo.FindByContentHash(ctx, "u", "abc")
	require.NoError(t, err)
	assert.Equal(t, set.ID, got.ID)

	_, err = repo.FindByContentHash(ctx, "u", "zzz")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindByContentHash(ctx, "other", "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileCriteriaRepository_Selections(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	_, err := repo.GetSelection(ctx, models.UserScope("u"))
	assert.ErrorIs(t, err, ErrNotFound)

	first, second := uuid.New(), uuid.New()
	require.NoError(t, repo.PutSelection(ctx, &models.Selection{Scope: models.UserScope("u"), SelectionID: first, Timestamp: time.Now()}))
	require.NoError(t, repo.PutSelection(ctx, &models.Selection{Scope: models.UserScope("u"), SelectionID: second, Timestamp: time.Now()}))
	require.NoError(t, repo.PutSelection(ctx, &models.Selection{Scope: models.GlobalScope, SelectionID: first, SetByUserName: "Admin"}))

	sel, err := repo.GetSelection(ctx, models.UserScope("u"))
	require.NoError(t, err)
	assert.Equal(t, second, sel.SelectionID)

	global, err := repo.GetSelection(ctx, models.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, first, global.SelectionID)
	assert.Equal(t, "Admin", global.SetByUserName)

	_, err = repo.GetSelection(ctx, "u")
	assert.ErrorContains(t, err, "invalid selection scope")
}

func TestFileCriteriaRepository_SimilarUserIDsKeepOwnSelection(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepo(t)

	dotted, dashed := uuid.New(), uuid.New()
	require.NoError(t, repo.PutSelection(ctx, &models.Selection{Scope: models.UserScope("jan.smit"), SelectionID: dotted}))
	require.NoError(t, repo.PutSelection(ctx, &models.Selection{Scope: models.UserScope("jan-smit"), SelectionID: dashed}))

	sel, err := repo.GetSelection(ctx, models.UserScope("jan.smit"))
	require.NoError(t, err)
	assert.Equal(t, dotted, sel.SelectionID)

	sel, err = repo.GetSelection(ctx, models.UserScope("jan-smit"))
	require.NoError(t, err)
	assert.Equal(t, dashed, sel.SelectionID)

	keys, err := store.List(ctx, "selections/")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestFileCriteriaRepository_SimilarUserIDsKeepOwnSets(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.Create(ctx, newSet("jan.smit", "punt", time.Now())))
	require.NoError(t, repo.Create(ctx, newSet("jan-smit", "streep", time.Now())))

	sets, err := repo.ListByUserID(ctx, "jan.smit")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "punt", sets[0].Name)
}

func TestFileCriteriaRepository_UserScopeNamedGlobal(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	official, hijack := uuid.New(), uuid.New()
	require.NoError(t, repo.PutSelection(ctx, &models.Selection{Scope: models.GlobalScope, SelectionID: official}))
	require.NoError(t, repo.PutSelection(ctx, &models.Selection{Scope: models.UserScope("global"), SelectionID: hijack}))

	global, err := repo.GetSelection(ctx, models.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, official, global.SelectionID)

	own, err := repo.GetSelection(ctx, models.UserScope("global"))
	require.NoError(t, err)
	assert.Equal(t, hijack, own.SelectionID)
}

func TestFileCriteriaRepository_SkipsCorruptFiles(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepo(t)

	require.NoError(t, store.Upload(ctx, "subsidies/subsidy_75_20250101000000_deadbeef.json", strings.NewReader("{not json"), ""))
	set := newSet("u", "ok", time.Now())
	require.NoError(t, repo.Create(ctx, set))

	sets, err := repo.ListByUserID(ctx, "u")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, set.ID, sets[0].ID)
}

func TestOpen_LocalStore(t *testing.T) {
	store, closeStore, err := Open(context.Background(), config.StorageConfig{Type: "local", LocalPath: t.TempDir()}, "", "", nil)
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &FileCriteriaRepository{}, store)

	_, _, err = Open(context.Background(), config.StorageConfig{Type: "postgres"}, "", "", nil)
	assert.ErrorContains(t, err, "DATABASE_URL")
}
