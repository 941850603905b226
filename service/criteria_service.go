package service

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"applauncher-backend/models"
	"applauncher-backend/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

const selectionNamePrefix = "Selectie: "

// CriteriaService handles persistence rules for subsidy criteria sets
type CriteriaService struct {
	criteriaRepo  repository.CriteriaRepository
	selectionRepo repository.SelectionRepository
	now           func() time.Time
}

// CriteriaServiceOption is a functional option for CriteriaService
type CriteriaServiceOption func(*CriteriaService)

// WithCriteriaRepository sets the criteria set repository
func WithCriteriaRepository(repo repository.CriteriaRepository) CriteriaServiceOption {
	return func(s *CriteriaService) {
		s.criteriaRepo = repo
	}
}

// WithSelectionRepository sets the selection repository
func WithSelectionRepository(repo repository.SelectionRepository) CriteriaServiceOption {
	return func(s *CriteriaService) {
		s.selectionRepo = repo
	}
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) CriteriaServiceOption {
	return func(s *CriteriaService) {
		s.now = now
	}
}

// NewCriteriaService creates a new criteria service
func NewCriteriaService(opts ...CriteriaServiceOption) *CriteriaService {
	s := &CriteriaService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CriteriaService) ready() error {
	if s.criteriaRepo == nil || s.selectionRepo == nil {
		return ErrRepositoryNotSet
	}
	return nil
}

// ContentHash fingerprints extraction input
func ContentHash(input string) string {
	sum := blake2b.Sum256([]byte(strings.TrimSpace(input)))
	return hex.EncodeToString(sum[:])
}

// SaveCriteriaRequest represents a request to save a criteria set
type SaveCriteriaRequest struct {
	UserID      string
	Name        string
	Criteria    []models.SubsidyCriterion
	Summary     string
	IsSelection bool
	ContentHash string
}

// SaveCriteria persists a new criteria set. Selections are named "Selectie: …".
func (s *CriteriaService) SaveCriteria(ctx context.Context, req SaveCriteriaRequest) (*models.CriteriaSet, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	now := s.now()
	name := strings.TrimSpace(req.Name)
	if req.IsSelection && !strings.HasPrefix(name, strings.TrimSpace(selectionNamePrefix)) {
		if name == "" {
			name = now.Format("2006-01-02 15:04")
		}
		name = selectionNamePrefix + name
	}
	if name == "" {
		name = "Subsidie " + now.Format("2006-01-02 15:04")
	}

	criteria := req.Criteria
	if criteria == nil {
		criteria = []models.SubsidyCriterion{}
	}

	set := &models.CriteriaSet{
		ID:          uuid.New(),
		UserID:      req.UserID,
		Timestamp:   now,
		Name:        name,
		ContentHash: req.ContentHash,
		Criteria:    criteria,
		Summary:     req.Summary,
		IsSelection: req.IsSelection,
	}
	if err := s.criteriaRepo.Create(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

// ListCriteria lists the user's sets, newest first
func (s *CriteriaService) ListCriteria(ctx context.Context, userID string) ([]*models.CriteriaSet, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	sets, err := s.criteriaRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sets == nil {
		sets = []*models.CriteriaSet{}
	}
	return sets, nil
}

// GetCriteria returns a set owned by userID
func (s *CriteriaService) GetCriteria(ctx context.Context, id uuid.UUID, userID string) (*models.CriteriaSet, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	set, err := s.criteriaRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && set.UserID != userID) {
		return nil, ErrSetNotFound
	}
	return set, err
}

// DeleteCriteria removes a set owned by userID
func (s *CriteriaService) DeleteCriteria(ctx context.Context, id uuid.UUID, userID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	err := s.criteriaRepo.Delete(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSetNotFound
	}
	return err
}

// FindPrevious returns the user's newest set extracted from the same input
func (s *CriteriaService) FindPrevious(ctx context.Context, userID, contentHash string) (*models.CriteriaSet, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	set, err := s.criteriaRepo.FindByContentHash(ctx, userID, contentHash)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSetNotFound
	}
	return set, err
}

// Select makes id the user's current selection
func (s *CriteriaService) Select(ctx context.Context, user models.User, id uuid.UUID) error {
	if _, err := s.GetCriteria(ctx, id, user.ID); err != nil {
		return err
	}
	return s.selectionRepo.PutSelection(ctx, &models.Selection{
		Scope:         models.UserScope(user.ID),
		SelectionID:   id,
		SetByUserID:   user.ID,
		SetByUserName: user.Name,
		Timestamp:     s.now(),
	})
}

// CurrentSelection returns the set the user selected last. It returns
// ErrNoSelection when there is none or the set has since been deleted.
func (s *CriteriaService) CurrentSelection(ctx context.Context, userID string) (*models.CriteriaSet, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	sel, err := s.selectionRepo.GetSelection(ctx, models.UserScope(userID))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoSelection
	}
	if err != nil {
		return nil, err
	}
	set, err := s.criteriaRepo.GetByID(ctx, sel.SelectionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSetNotFound
	}
	return set, err
}

// SetGlobalSelection makes id the default for every user. Admins only.
func (s *CriteriaService) SetGlobalSelection(ctx context.Context, user models.User, id uuid.UUID) error {
	if !user.IsAdmin() {
		return ErrForbidden
	}
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.criteriaRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSetNotFound
		}
		return err
	}
	return s.selectionRepo.PutSelection(ctx, &models.Selection{
		Scope:         models.GlobalScope,
		SelectionID:   id,
		SetByUserID:   user.ID,
		SetByUserName: user.Name,
		Timestamp:     s.now(),
	})
}

// GlobalSelection returns the global default set and its selection record
func (s *CriteriaService) GlobalSelection(ctx context.Context) (*models.CriteriaSet, *models.Selection, error) {
	if err := s.ready(); err != nil {
		return nil, nil, err
	}
	sel, err := s.selectionRepo.GetSelection(ctx, models.GlobalScope)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrNoSelection
	}
	if err != nil {
		return nil, nil, err
	}
	set, err := s.criteriaRepo.GetByID(ctx, sel.SelectionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, sel, ErrSetNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return set, sel, nil
}
