package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SubsidyCriterion is a single numbered criterion of a subsidy scheme
type SubsidyCriterion struct {
	ID   int    `json:"id" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// CriteriaList is stored as JSONB by the postgres backend
type CriteriaList []SubsidyCriterion

// Value implements driver.Valuer for JSONB
func (c CriteriaList) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB
func (c *CriteriaList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = CriteriaList{}
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported criteria type %T", value)
	}
}

// CriteriaSet is one persisted extraction or explicit save. Sets are never
// updated in place.
type CriteriaSet struct {
	ID          uuid.UUID    `json:"id"`
	UserID      string       `json:"user_id"`
	Timestamp   time.Time    `json:"timestamp"`
	Name        string       `json:"name"`
	ContentHash string       `json:"content_hash,omitempty"`
	Criteria    CriteriaList `json:"criteria"`
	Summary     string       `json:"summary"`
	IsSelection bool         `json:"is_selection,omitempty"`
}

// GlobalScope is the selection key shared by all users
const GlobalScope = "global"

const userScopePrefix = "user:"

// UserScope is the selection key of a single user. The prefix keeps user ids
// from ever colliding with GlobalScope.
func UserScope(userID string) string {
	return userScopePrefix + userID
}

// ScopeUserID returns the user id of a UserScope key
func ScopeUserID(scope string) (string, bool) {
	if !strings.HasPrefix(scope, userScopePrefix) {
		return "", false
	}
	return strings.TrimPrefix(scope, userScopePrefix), true
}

// Selection points a scope (UserScope or GlobalScope) at a criteria set
type Selection struct {
	Scope         string    `json:"scope"`
	SelectionID   uuid.UUID `json:"selection_id"`
	SetByUserID   string    `json:"set_by_user_id,omitempty"`
	SetByUserName string    `json:"set_by_user_name,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
