package service

import (
	"context"
	"testing"
	"time"

	"applauncher-backend/models"
	"applauncher-backend/repository"
	"applauncher-backend/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = models.User{ID: "alice", Name: "Alice"}
	bob   = models.User{ID: "bob", Name: "Bob"}
	admin = models.User{ID: "root", Name: "Beheer", Role: models.RoleAdmin}
)

func newTestCriteriaService(t *testing.T) *CriteriaService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repo := repository.NewFileCriteriaRepository(store, nil)

	clock := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	return NewCriteriaService(
		WithCriteriaRepository(repo),
		WithSelectionRepository(repo),
		WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)
}

func saveSet(t *testing.T, svc *CriteriaService, userID string, selection bool) *models.CriteriaSet {
	t.Helper()
	set, err := svc.SaveCriteria(context.Background(), SaveCriteriaRequest{
		UserID:      userID,
		Criteria:    []models.SubsidyCriterion{{ID: 1, Text: "De aanvrager is een rechtspersoon"}},
		Summary:     "Samenvatting",
		IsSelection: selection,
	})
	require.NoError(t, err)
	return set
}

func TestCriteriaService_SaveNames(t *testing.T) {
	svc := newTestCriteriaService(t)

	plain := saveSet(t, svc, "alice", false)
	assert.Equal(t, "Subsidie 2025-05-01 09:30", plain.Name)

	sel := saveSet(t, svc, "alice", true)
	assert.Equal(t, "Selectie: 2025-05-01 09:30", sel.Name)
	assert.True(t, sel.IsSelection)

	named, err := svc.SaveCriteria(context.Background(), SaveCriteriaRequest{UserID: "alice", Name: "Selectie: Cultuur", IsSelection: true})
	require.NoError(t, err)
	assert.Equal(t, "Selectie: Cultuur", named.Name)
	assert.NotNil(t, named.Criteria)
}

func TestCriteriaService_ListEmpty(t *testing.T) {
	svc := newTestCriteriaService(t)
	sets, err := svc.ListCriteria(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, sets)
	assert.Empty(t, sets)
}

func TestCriteriaService_OwnerChecks(t *testing.T) {
	ctx := context.Background()
	svc := newTestCriteriaService(t)
	set := saveSet(t, svc, "alice", false)

	got, err := svc.GetCriteria(ctx, set.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, set.ID, got.ID)

	_, err = svc.GetCriteria(ctx, set.ID, "bob")
	assert.ErrorIs(t, err, ErrSetNotFound)

	assert.ErrorIs(t, svc.DeleteCriteria(ctx, set.ID, "bob"), ErrSetNotFound)
	assert.ErrorIs(t, svc.Select(ctx, bob, set.ID), ErrSetNotFound)

	require.NoError(t, svc.DeleteCriteria(ctx, set.ID, "alice"))
	_, err = svc.GetCriteria(ctx, set.ID, "alice")
	assert.ErrorIs(t, err, ErrSetNotFound)
}

func TestCriteriaService_Selection(t *testing.T) {
	ctx := context.Background()
	svc := newTestCriteriaService(t)

	_, err := svc.CurrentSelection(ctx, "alice")
	assert.ErrorIs(t, err, ErrNoSelection)

	set := saveSet(t, svc, "alice", true)
	require.NoError(t, svc.Select(ctx, alice, set.ID))

	current, err := svc.CurrentSelection(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, set.ID, current.ID)

	_, err = svc.CurrentSelection(ctx, "bob")
	assert.ErrorIs(t, err, ErrNoSelection)

	require.NoError(t, svc.DeleteCriteria(ctx, set.ID, "alice"))
	_, err = svc.CurrentSelection(ctx, "alice")
	assert.ErrorIs(t, err, ErrSetNotFound)
}

func TestCriteriaService_GlobalSelection(t *testing.T) {
	ctx := context.Background()
	svc := newTestCriteriaService(t)
	set := saveSet(t, svc, "alice", false)

	_, _, err := svc.GlobalSelection(ctx)
	assert.ErrorIs(t, err, ErrNoSelection)

	assert.ErrorIs(t, svc.SetGlobalSelection(ctx, alice, set.ID), ErrForbidden)
	assert.ErrorIs(t, svc.SetGlobalSelection(ctx, admin, uuid.New()), ErrSetNotFound)

	require.NoError(t, svc.SetGlobalSelection(ctx, admin, set.ID))

	global, sel, err := svc.GlobalSelection(ctx)
	require.NoError(t, err)
	assert.Equal(t, set.ID, global.ID)
	assert.Equal(t, models.GlobalScope, sel.Scope)
	assert.Equal(t, "root", sel.SetByUserID)
	assert.Equal(t, "Beheer", sel.SetByUserName)
}

func TestCriteriaService_UserNamedGlobalCannotOverrideGlobal(t *testing.T) {
	ctx := context.Background()
	svc := newTestCriteriaService(t)
	official := saveSet(t, svc, "root", false)
	require.NoError(t, svc.SetGlobalSelection(ctx, admin, official.ID))

	imposter := models.User{ID: models.GlobalScope, Name: "Imposter"}
	own := saveSet(t, svc, imposter.ID, false)
	require.NoError(t, svc.Select(ctx, imposter, own.ID))

	global, sel, err := svc.GlobalSelection(ctx)
	require.NoError(t, err)
	assert.Equal(t, official.ID, global.ID)
	assert.Equal(t, "root", sel.SetByUserID)

	current, err := svc.CurrentSelection(ctx, imposter.ID)
	require.NoError(t, err)
	assert.Equal(t, own.ID, current.ID)
}

func TestCriteriaService_FindPrevious(t *testing.T) {
	ctx := context.Background()
	svc := newTestCriteriaService(t)

	hash := ContentHash("  regeling tekst \n")
	assert.Equal(t, ContentHash("regeling tekst"), hash)
	assert.Len(t, hash, 64)

	_, err := svc.FindPrevious(ctx, "alice", hash)
	assert.ErrorIs(t, err, ErrSetNotFound)

	saved, err := svc.SaveCriteria(ctx, SaveCriteriaRequest{UserID: "alice", ContentHash: hash})
	require.NoError(t, err)

	prev, err := svc.FindPrevious(ctx, "alice", hash)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, prev.ID)
}

func TestCriteriaService_RequiresRepositories(t *testing.T) {
	svc := NewCriteriaService()
	_, err := svc.ListCriteria(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrRepositoryNotSet)
}
