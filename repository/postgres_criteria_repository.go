package repository

import (
	"context"
	"errors"
	"fmt"

	"applauncher-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCriteriaRepository stores criteria sets and selections in Postgres
type PostgresCriteriaRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCriteriaRepository creates a new postgres repository
func NewPostgresCriteriaRepository(db *pgxpool.Pool) *PostgresCriteriaRepository {
	return &PostgresCriteriaRepository{db: db}
}

// EnsureSchema creates the tables if they do not exist
func (r *PostgresCriteriaRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, CriteriaSchema); err != nil {
		return fmt.Errorf("failed to create criteria schema: %w", err)
	}
	return nil
}

// Create inserts a new criteria set
func (r *PostgresCriteriaRepository) Create(ctx context.Context, set *models.CriteriaSet) error {
	if set.ID == uuid.Nil {
		set.ID = uuid.New()
	}
	query := `
		INSERT INTO criteria_sets (
			id, user_id, name, content_hash, criteria, summary, is_selection, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)`

	_, err := r.db.Exec(ctx, query,
		set.ID,
		set.UserID,
		set.Name,
		set.ContentHash,
		set.Criteria,
		set.Summary,
		set.IsSelection,
		set.Timestamp,
	)
	return err
}

const selectSet = `
		SELECT id, user_id, name, content_hash, criteria, summary, is_selection, created_at
		FROM criteria_sets`

func scanSet(row pgx.Row) (*models.CriteriaSet, error) {
	set := &models.CriteriaSet{}
	err := row.Scan(
		&set.ID,
		&set.UserID,
		&set.Name,
		&set.ContentHash,
		&set.Criteria,
		&set.Summary,
		&set.IsSelection,
		&set.Timestamp,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return set, nil
}

// GetByID retrieves a criteria set by ID
func (r *PostgresCriteriaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CriteriaSet, error) {
	return scanSet(r.db.QueryRow(ctx, selectSet+` WHERE id = $1`, id))
}

// ListByUserID retrieves all sets for a user, newest first
func (r *PostgresCriteriaRepository) ListByUserID(ctx context.Context, userID string) ([]*models.CriteriaSet, error) {
	rows, err := r.db.Query(ctx, selectSet+` WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []*models.CriteriaSet
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

// Delete removes a set owned by userID
func (r *PostgresCriteriaRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM criteria_sets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByContentHash returns the newest set of userID with the given input hash
func (r *PostgresCriteriaRepository) FindByContentHash(ctx context.Context, userID, hash string) (*models.CriteriaSet, error) {
	if hash == "" {
		return nil, ErrNotFound
	}
	return scanSet(r.db.QueryRow(ctx,
		selectSet+` WHERE user_id = $1 AND content_hash = $2 ORDER BY created_at DESC LIMIT 1`,
		userID, hash))
}

// PutSelection upserts the selection row of sel.Scope
func (r *PostgresCriteriaRepository) PutSelection(ctx context.Context, sel *models.Selection) error {
	query := `
		INSERT INTO criteria_selections (scope, selection_id, set_by_user_id, set_by_user_name, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (scope) DO UPDATE SET
			selection_id = EXCLUDED.selection_id,
			set_by_user_id = EXCLUDED.set_by_user_id,
			set_by_user_name = EXCLUDED.set_by_user_name,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query, sel.Scope, sel.SelectionID, sel.SetByUserID, sel.SetByUserName, sel.Timestamp)
	return err
}

// GetSelection retrieves the selection row of scope
func (r *PostgresCriteriaRepository) GetSelection(ctx context.Context, scope string) (*models.Selection, error) {
	sel := &models.Selection{}
	err := r.db.QueryRow(ctx, `
		SELECT scope, selection_id, set_by_user_id, set_by_user_name, updated_at
		FROM criteria_selections
		WHERE scope = $1`, scope).Scan(
		&sel.Scope,
		&sel.SelectionID,
		&sel.SetByUserID,
		&sel.SetByUserName,
		&sel.Timestamp,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sel, nil
}
