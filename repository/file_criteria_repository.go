package repository

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"applauncher-backend/models"
	"applauncher-backend/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	setsPrefix       = "subsidies/"
	selectionsPrefix = "selections/"
	timestampLayout  = "20060102150405"
)

// FileCriteriaRepository keeps one JSON document per criteria set in a blob
// store. Lookups are linear scans over the set keys.
type FileCriteriaRepository struct {
	store  storage.Storage
	logger *zap.Logger
}

// NewFileCriteriaRepository creates a new file-backed repository
func NewFileCriteriaRepository(store storage.Storage, logger *zap.Logger) *FileCriteriaRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileCriteriaRepository{store: store, logger: logger}
}

// userKey hex-encodes a user id for use in object keys. The encoding is
// injective and never contains the '_' separator.
func userKey(userID string) string {
	return hex.EncodeToString([]byte(userID))
}

// setKey is subsidies/subsidy_{hex(user)}_{YYYYmmddHHMMSS}_{id[:8]}.json
func setKey(set *models.CriteriaSet) string {
	return fmt.Sprintf("%ssubsidy_%s_%s_%s.json",
		setsPrefix, userKey(set.UserID), set.Timestamp.Format(timestampLayout), set.ID.String()[:8])
}

func selectionKey(scope string) (string, error) {
	if scope == models.GlobalScope {
		return selectionsPrefix + "global.json", nil
	}
	userID, ok := models.ScopeUserID(scope)
	if !ok || userID == "" {
		return "", fmt.Errorf("invalid selection scope %q", scope)
	}
	return selectionsPrefix + "user_" + userKey(userID) + ".json", nil
}

func (r *FileCriteriaRepository) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return r.store.Upload(ctx, key, bytes.NewReader(data), "application/json")
}

func (r *FileCriteriaRepository) getJSON(ctx context.Context, key string, v any) error {
	rc, err := r.store.Download(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	defer rc.Close()
	if err := json.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// Create writes set under a new key
func (r *FileCriteriaRepository) Create(ctx context.Context, set *models.CriteriaSet) error {
	if set.ID == uuid.Nil {
		set.ID = uuid.New()
	}
	return r.putJSON(ctx, setKey(set), set)
}

type storedSet struct {
	key string
	set *models.CriteriaSet
}

// scan reads every set whose key passes match. Unreadable files are logged and skipped.
func (r *FileCriteriaRepository) scan(ctx context.Context, match func(key string) bool) ([]storedSet, error) {
	keys, err := r.store.List(ctx, setsPrefix)
	if err != nil {
		return nil, err
	}

	var out []storedSet
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") || !match(key) {
			continue
		}
		var set models.CriteriaSet
		if err := r.getJSON(ctx, key, &set); err != nil {
			r.logger.Warn("skipping unreadable criteria file", zap.String("key", key), zap.Error(err))
			continue
		}
		out = append(out, storedSet{key: key, set: &set})
	}
	return out, nil
}

func (r *FileCriteriaRepository) find(ctx context.Context, id uuid.UUID) (*storedSet, error) {
	suffix := "_" + id.String()[:8] + ".json"
	found, err := r.scan(ctx, func(key string) bool { return strings.HasSuffix(key, suffix) })
	if err != nil {
		return nil, err
	}
	for i := range found {
		if found[i].set.ID == id {
			return &found[i], nil
		}
	}
	return nil, ErrNotFound
}

// GetByID retrieves a set regardless of owner
func (r *FileCriteriaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CriteriaSet, error) {
	s, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.set, nil
}

// ListByUserID retrieves all sets of a user, newest first
func (r *FileCriteriaRepository) ListByUserID(ctx context.Context, userID string) ([]*models.CriteriaSet, error) {
	prefix := setsPrefix + "subsidy_" + userKey(userID) + "_"
	found, err := r.scan(ctx, func(key string) bool { return strings.HasPrefix(key, prefix) })
	if err != nil {
		return nil, err
	}

	sets := make([]*models.CriteriaSet, 0, len(found))
	for _, s := range found {
		if s.set.UserID == userID {
			sets = append(sets, s.set)
		}
	}
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].Timestamp.After(sets[j].Timestamp)
	})
	return sets, nil
}

// Delete removes a set owned by userID
func (r *FileCriteriaRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	s, err := r.find(ctx, id)
	if err != nil {
		return err
	}
	if s.set.UserID != userID {
		return ErrNotFound
	}
	return r.store.Delete(ctx, s.key)
}

// FindByContentHash returns the newest set of userID extracted from identical input
func (r *FileCriteriaRepository) FindByContentHash(ctx context.Context, userID, hash string) (*models.CriteriaSet, error) {
	sets, err := r.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, s := range sets {
		if s.ContentHash != "" && s.ContentHash == hash {
			return s, nil
		}
	}
	return nil, ErrNotFound
}

// PutSelection replaces the selection record of sel.Scope
func (r *FileCriteriaRepository) PutSelection(ctx context.Context, sel *models.Selection) error {
	key, err := selectionKey(sel.Scope)
	if err != nil {
		return err
	}
	return r.putJSON(ctx, key, sel)
}

// GetSelection retrieves the selection record of scope
func (r *FileCriteriaRepository) GetSelection(ctx context.Context, scope string) (*models.Selection, error) {
	key, err := selectionKey(scope)
	if err != nil {
		return nil, err
	}
	var sel models.Selection
	if err := r.getJSON(ctx, key, &sel); err != nil {
		return nil, err
	}
	if sel.Scope != scope {
		return nil, ErrNotFound
	}
	return &sel, nil
}
