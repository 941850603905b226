package repository

import (
	"context"
	"errors"

	"applauncher-backend/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a criteria set or selection does not exist
var ErrNotFound = errors.New("not found")

// CriteriaRepository persists criteria sets
type CriteriaRepository interface {
	Create(ctx context.Context, set *models.CriteriaSet) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CriteriaSet, error)
	// ListByUserID returns the user's sets, newest first
	ListByUserID(ctx context.Context, userID string) ([]*models.CriteriaSet, error)
	// Delete removes the set if it belongs to userID
	Delete(ctx context.Context, id uuid.UUID, userID string) error
	FindByContentHash(ctx context.Context, userID, hash string) (*models.CriteriaSet, error)
}

// SelectionRepository stores one selection per scope (models.UserScope or models.GlobalScope)
type SelectionRepository interface {
	PutSelection(ctx context.Context, sel *models.Selection) error
	GetSelection(ctx context.Context, scope string) (*models.Selection, error)
}
