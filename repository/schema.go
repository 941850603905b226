package repository

// CriteriaSchema creates the tables used by PostgresCriteriaRepository
const CriteriaSchema = `
CREATE TABLE IF NOT EXISTS criteria_sets (
    id UUID PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    content_hash TEXT NOT NULL DEFAULT '',
    criteria JSONB NOT NULL DEFAULT '[]'::jsonb,
    summary TEXT NOT NULL DEFAULT '',
    is_selection BOOLEAN NOT NULL DEFAULT false,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_criteria_sets_user_created
    ON criteria_sets (user_id, created_at DESC);

CREATE INDEX IF NOT EXISTS idx_criteria_sets_user_hash
    ON criteria_sets (user_id, content_hash)
    WHERE content_hash <> '';

CREATE TABLE IF NOT EXISTS criteria_selections (
    scope TEXT PRIMARY KEY,
    selection_id UUID NOT NULL REFERENCES criteria_sets(id) ON DELETE CASCADE,
    set_by_user_id TEXT NOT NULL DEFAULT '',
    set_by_user_name TEXT NOT NULL DEFAULT '',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`
