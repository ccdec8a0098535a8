package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/progression"
)

// AchievementRepository implements the achievement repository for PostgreSQL.
// It owns the unlock history and the published catalog mirror.
type AchievementRepository struct {
	db *pgxpool.Pool
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// GetDefinitionHashes returns achievement id -> content hash for every
// mirrored definition
func (r *AchievementRepository) GetDefinitionHashes(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.Query(ctx, `SELECT achievement_id, content_hash FROM achievement_definitions`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryDefinitionHashes, err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var id, hash string
		if err := rows.Scan(&id, &hash); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryDefinitionHashes, err)
		}
		hashes[id] = hash
	}
	return hashes, rows.Err()
}

// UpsertDefinition inserts or replaces one mirrored catalog definition
func (r *AchievementRepository) UpsertDefinition(ctx context.Context, def progression.AchievementDefinition, contentHash string) error {
	defJSON, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertDefinition, err)
	}

	query := `
		INSERT INTO achievement_definitions
			(achievement_id, title, category, tier, rarity, points, hidden, definition, content_hash, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (achievement_id) DO UPDATE
		SET title = EXCLUDED.title,
			category = EXCLUDED.category,
			tier = EXCLUDED.tier,
			rarity = EXCLUDED.rarity,
			points = EXCLUDED.points,
			hidden = EXCLUDED.hidden,
			definition = EXCLUDED.definition,
			content_hash = EXCLUDED.content_hash,
			updated_at = NOW()
	`
	_, err = r.db.Exec(ctx, query,
		def.ID, def.Title, string(def.Category), string(def.Tier), string(def.Rarity),
		def.Points, def.Hidden, defJSON, contentHash,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertDefinition, err)
	}
	return nil
}

// DeleteDefinitions removes mirrored definitions that left the catalog.
// Unlock rows are untouched; athletes keep what they earned.
func (r *AchievementRepository) DeleteDefinitions(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, `DELETE FROM achievement_definitions WHERE achievement_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteDefinitions, err)
	}
	return nil
}

// RecordUnlock inserts an unlock record. Returns false when the athlete
// already holds the achievement; unlock rows are never updated or deleted.
func (r *AchievementRepository) RecordUnlock(ctx context.Context, record domain.UnlockRecord) (bool, error) {
	if _, err := parseUserUUID(record.UserID); err != nil {
		return false, err
	}

	unlockedAt := record.UnlockedAt
	query := `
		INSERT INTO achievement_unlocks (user_id, achievement_id, points, unlocked_at)
		VALUES ($1, $2, $3, COALESCE($4, NOW()))
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query,
		record.UserID, record.AchievementID, record.Points, timeOrNil(unlockedAt),
	)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToRecordUnlock, err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetUnlocks retrieves every unlock for an athlete, oldest first
func (r *AchievementRepository) GetUnlocks(ctx context.Context, userID string) ([]domain.UnlockRecord, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT user_id, achievement_id, points, unlocked_at
		FROM achievement_unlocks
		WHERE user_id = $1
		ORDER BY unlocked_at, achievement_id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryUnlocks, err)
	}
	defer rows.Close()

	var unlocks []domain.UnlockRecord
	for rows.Next() {
		var u domain.UnlockRecord
		if err := rows.Scan(&u.UserID, &u.AchievementID, &u.Points, &u.UnlockedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryUnlocks, err)
		}
		unlocks = append(unlocks, u)
	}
	return unlocks, rows.Err()
}

// GetUnlockedIDs retrieves the achievement ids an athlete holds
func (r *AchievementRepository) GetUnlockedIDs(ctx context.Context, userID string) ([]string, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT achievement_id FROM achievement_unlocks WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryUnlocks, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryUnlocks, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetUnlockCounts returns how many athletes hold each achievement
func (r *AchievementRepository) GetUnlockCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT achievement_id, COUNT(*) FROM achievement_unlocks GROUP BY achievement_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCountUnlocks, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			id    string
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCountUnlocks, err)
		}
		counts[id] = count
	}
	return counts, rows.Err()
}
