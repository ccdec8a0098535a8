package schema

// SchemaSQL contains the full database schema initialization script.
// It mirrors the migrations in migrations/ squashed into a single pass,
// for bootstrapping fresh development databases without goose.
const SchemaSQL = `
-- Athletes

CREATE TABLE IF NOT EXISTS users (
    user_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    username VARCHAR(50) UNIQUE NOT NULL,
    discord_id VARCHAR(255) UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Activity events; the append-only source for all progression counters

CREATE TABLE IF NOT EXISTS stats_events (
    event_id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    event_type VARCHAR(50) NOT NULL,
    pillar VARCHAR(20),
    points INTEGER NOT NULL DEFAULT 0,
    event_data JSONB,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_stats_events_user_time ON stats_events (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_stats_events_type_time ON stats_events (event_type, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_stats_events_user_type ON stats_events (user_id, event_type);

-- Consecutive-day streak state, maintained on every recorded activity

CREATE TABLE IF NOT EXISTS user_streaks (
    user_id UUID PRIMARY KEY REFERENCES users(user_id) ON DELETE CASCADE,
    current_streak INTEGER NOT NULL DEFAULT 0,
    longest_streak INTEGER NOT NULL DEFAULT 0,
    last_active_day DATE,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Catalog mirror; the compiled-in catalog stays the source of truth

CREATE TABLE IF NOT EXISTS achievement_definitions (
    achievement_id VARCHAR(100) PRIMARY KEY,
    title VARCHAR(200) NOT NULL,
    category VARCHAR(50) NOT NULL,
    tier VARCHAR(50) NOT NULL,
    rarity VARCHAR(50) NOT NULL,
    points INTEGER NOT NULL DEFAULT 0,
    hidden BOOLEAN NOT NULL DEFAULT FALSE,
    definition JSONB NOT NULL,
    content_hash CHAR(64) NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Unlock rows are insert-only and deliberately carry no FK to the catalog
-- mirror: unlocks outlive definitions removed from the catalog.

CREATE TABLE IF NOT EXISTS achievement_unlocks (
    user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    achievement_id VARCHAR(100) NOT NULL,
    points INTEGER NOT NULL DEFAULT 0,
    unlocked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, achievement_id)
);

CREATE INDEX IF NOT EXISTS idx_achievement_unlocks_achievement ON achievement_unlocks (achievement_id);

-- Daily challenge completions, one row per athlete per challenge per UTC day

CREATE TABLE IF NOT EXISTS challenge_completions (
    user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    challenge_key VARCHAR(100) NOT NULL,
    day DATE NOT NULL,
    points INTEGER NOT NULL DEFAULT 0,
    completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, day, challenge_key)
);

CREATE INDEX IF NOT EXISTS idx_challenge_completions_day ON challenge_completions (day, challenge_key);

-- Domain event audit log

CREATE TABLE IF NOT EXISTS events (
    id BIGSERIAL PRIMARY KEY,
    event_type VARCHAR(100) NOT NULL,
    user_id UUID,
    payload JSONB,
    metadata JSONB,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_events_type ON events (event_type, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_events_user ON events (user_id, created_at DESC);
`
