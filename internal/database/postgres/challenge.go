package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

// ChallengeRepository implements the challenge repository for PostgreSQL
type ChallengeRepository struct {
	db *pgxpool.Pool
}

// NewChallengeRepository creates a new ChallengeRepository
func NewChallengeRepository(db *pgxpool.Pool) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

// RecordCompletion inserts a completion row. Returns false when the
// athlete already completed the challenge on that day.
func (r *ChallengeRepository) RecordCompletion(ctx context.Context, completion domain.ChallengeCompletion) (bool, error) {
	if _, err := parseUserUUID(completion.UserID); err != nil {
		return false, err
	}

	query := `
		INSERT INTO challenge_completions (user_id, challenge_key, day, points, completed_at)
		VALUES ($1, $2, $3::date, $4, COALESCE($5, NOW()))
		ON CONFLICT (user_id, day, challenge_key) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query,
		completion.UserID, completion.ChallengeKey, completion.Day,
		completion.Points, timeOrNil(completion.CompletedAt),
	)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToRecordCompletion, err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetCompletion retrieves one completion row, or nil when the athlete has
// not completed that challenge on that day
func (r *ChallengeRepository) GetCompletion(ctx context.Context, userID, day, challengeKey string) (*domain.ChallengeCompletion, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT user_id, challenge_key, TO_CHAR(day, 'YYYY-MM-DD'), points, completed_at
		FROM challenge_completions
		WHERE user_id = $1 AND day = $2::date AND challenge_key = $3
	`
	var c domain.ChallengeCompletion
	err := r.db.QueryRow(ctx, query, userID, day, challengeKey).Scan(
		&c.UserID, &c.ChallengeKey, &c.Day, &c.Points, &c.CompletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCompletion, err)
	}
	return &c, nil
}

// GetCompletionsForDay retrieves an athlete's completions for one UTC day
func (r *ChallengeRepository) GetCompletionsForDay(ctx context.Context, userID, day string) ([]domain.ChallengeCompletion, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT user_id, challenge_key, TO_CHAR(day, 'YYYY-MM-DD'), points, completed_at
		FROM challenge_completions
		WHERE user_id = $1 AND day = $2::date
		ORDER BY completed_at
	`
	rows, err := r.db.Query(ctx, query, userID, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryCompletions, err)
	}
	defer rows.Close()

	var completions []domain.ChallengeCompletion
	for rows.Next() {
		var c domain.ChallengeCompletion
		if err := rows.Scan(&c.UserID, &c.ChallengeKey, &c.Day, &c.Points, &c.CompletedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryCompletions, err)
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

// GetCompletionCounts returns completions per challenge key for a day
func (r *ChallengeRepository) GetCompletionCounts(ctx context.Context, day string) (map[string]int, error) {
	query := `
		SELECT challenge_key, COUNT(*)
		FROM challenge_completions
		WHERE day = $1::date
		GROUP BY challenge_key
	`
	rows, err := r.db.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCountCompletions, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			key   string
			count int
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCountCompletions, err)
		}
		counts[key] = count
	}
	return counts, rows.Err()
}
