package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

// goalEventTypes are the event types counted as completed goals. Daily
// challenges are goals completed through the rotation, so they count too.
var goalEventTypes = []string{
	string(domain.EventGoalCompleted),
	string(domain.EventChallengeCompleted),
}

// StatsRepository implements the stats repository for PostgreSQL
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// RecordEvent inserts a new event into the stats_events table and fills in
// the generated ID and timestamp
func (r *StatsRepository) RecordEvent(ctx context.Context, event *domain.StatsEvent) error {
	if _, err := parseUserUUID(event.UserID); err != nil {
		return err
	}

	eventDataJSON, err := json.Marshal(event.EventData)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalEventData, err)
	}

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO stats_events (user_id, event_type, pillar, points, event_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING event_id, created_at
	`
	err = r.db.QueryRow(ctx, query,
		event.UserID, string(event.EventType), pillarToText(event.Pillar),
		event.Points, eventDataJSON, createdAt,
	).Scan(&event.EventID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertEvent, err)
	}
	return nil
}

// GetEventsByUser retrieves all events for a specific user within a time range
func (r *StatsRepository) GetEventsByUser(ctx context.Context, userID string, startTime, endTime time.Time) ([]domain.StatsEvent, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT event_id, user_id, event_type, pillar, points, event_data, created_at
		FROM stats_events
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	defer rows.Close()

	return scanStatsEvents(rows)
}

// GetUserEventsByType retrieves the most recent events of a specific type
// for a specific user
func (r *StatsRepository) GetUserEventsByType(ctx context.Context, userID string, eventType domain.EventType, limit int) ([]domain.StatsEvent, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT event_id, user_id, event_type, pillar, points, event_data, created_at
		FROM stats_events
		WHERE user_id = $1 AND event_type = $2
		ORDER BY created_at DESC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, userID, string(eventType), limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryUserEvents, err)
	}
	defer rows.Close()

	return scanStatsEvents(rows)
}

// GetUserPoints retrieves the lifetime point total for a user
func (r *StatsRepository) GetUserPoints(ctx context.Context, userID string) (int, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return 0, err
	}

	var points int
	query := `SELECT COALESCE(SUM(points), 0) FROM stats_events WHERE user_id = $1`
	if err := r.db.QueryRow(ctx, query, userID).Scan(&points); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToQueryUserPoints, err)
	}
	return points, nil
}

// GetUserPillarPoints retrieves lifetime points grouped by pillar
func (r *StatsRepository) GetUserPillarPoints(ctx context.Context, userID string) (map[domain.Pillar]int, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT pillar, COALESCE(SUM(points), 0)
		FROM stats_events
		WHERE user_id = $1 AND pillar IS NOT NULL
		GROUP BY pillar
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryPillarPoints, err)
	}
	defer rows.Close()

	return scanPillarCounts(rows, ErrMsgFailedToQueryPillarPoints)
}

// GetUserGoalCount retrieves the lifetime number of completed goals
func (r *StatsRepository) GetUserGoalCount(ctx context.Context, userID string) (int, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return 0, err
	}

	var count int
	query := `SELECT COUNT(*) FROM stats_events WHERE user_id = $1 AND event_type = ANY($2)`
	if err := r.db.QueryRow(ctx, query, userID, goalEventTypes).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToQueryGoalCounts, err)
	}
	return count, nil
}

// GetUserPillarGoals retrieves completed goal counts grouped by pillar
func (r *StatsRepository) GetUserPillarGoals(ctx context.Context, userID string) (map[domain.Pillar]int, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT pillar, COUNT(*)
		FROM stats_events
		WHERE user_id = $1 AND event_type = ANY($2) AND pillar IS NOT NULL
		GROUP BY pillar
	`
	rows, err := r.db.Query(ctx, query, userID, goalEventTypes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryGoalCounts, err)
	}
	defer rows.Close()

	return scanPillarCounts(rows, ErrMsgFailedToQueryGoalCounts)
}

// GetUserDaysActive retrieves the number of distinct UTC days with activity.
// Unlock announcement rows are excluded; an unlock granted on an idle day
// (say, after a catalog addition) must not count that day as active.
func (r *StatsRepository) GetUserDaysActive(ctx context.Context, userID string) (int, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return 0, err
	}

	var days int
	query := `
		SELECT COUNT(DISTINCT (created_at AT TIME ZONE 'UTC')::date)
		FROM stats_events
		WHERE user_id = $1 AND event_type != $2
	`
	if err := r.db.QueryRow(ctx, query, userID, domain.EventAchievementUnlocked).Scan(&days); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToQueryDaysActive, err)
	}
	return days, nil
}

// GetUserEventCounts retrieves event counts for a specific user grouped by event type
func (r *StatsRepository) GetUserEventCounts(ctx context.Context, userID string, startTime, endTime time.Time) (map[domain.EventType]int, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT event_type, COUNT(*)
		FROM stats_events
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY event_type
	`
	rows, err := r.db.Query(ctx, query, userID, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryUserEventCounts, err)
	}
	defer rows.Close()

	return scanEventTypeCounts(rows, ErrMsgFailedToQueryUserEventCounts)
}

// GetUserPointsInRange retrieves a user's point total within a time range
func (r *StatsRepository) GetUserPointsInRange(ctx context.Context, userID string, startTime, endTime time.Time) (int, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return 0, err
	}

	var points int
	query := `
		SELECT COALESCE(SUM(points), 0)
		FROM stats_events
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
	`
	if err := r.db.QueryRow(ctx, query, userID, startTime, endTime).Scan(&points); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToQueryUserPoints, err)
	}
	return points, nil
}

// GetUserPillarGoalsInRange retrieves per-pillar goal counts within a time range
func (r *StatsRepository) GetUserPillarGoalsInRange(ctx context.Context, userID string, startTime, endTime time.Time) (map[domain.Pillar]int, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT pillar, COUNT(*)
		FROM stats_events
		WHERE user_id = $1 AND event_type = ANY($2) AND pillar IS NOT NULL
			AND created_at >= $3 AND created_at < $4
		GROUP BY pillar
	`
	rows, err := r.db.Query(ctx, query, userID, goalEventTypes, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryGoalCounts, err)
	}
	defer rows.Close()

	return scanPillarCounts(rows, ErrMsgFailedToQueryGoalCounts)
}

// GetEventCounts retrieves event counts grouped by event type within a time range
func (r *StatsRepository) GetEventCounts(ctx context.Context, startTime, endTime time.Time) (map[domain.EventType]int, error) {
	query := `
		SELECT event_type, COUNT(*)
		FROM stats_events
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY event_type
	`
	rows, err := r.db.Query(ctx, query, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEventCounts, err)
	}
	defer rows.Close()

	return scanEventTypeCounts(rows, ErrMsgFailedToQueryEventCounts)
}

// GetTotalEventCount retrieves the total number of events within a time range
func (r *StatsRepository) GetTotalEventCount(ctx context.Context, startTime, endTime time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM stats_events WHERE created_at >= $1 AND created_at < $2`
	if err := r.db.QueryRow(ctx, query, startTime, endTime).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetTotalEventCount, err)
	}
	return count, nil
}

// GetTotalPoints retrieves the points awarded across all athletes within a
// time range
func (r *StatsRepository) GetTotalPoints(ctx context.Context, startTime, endTime time.Time) (int, error) {
	var total int
	query := `SELECT COALESCE(SUM(points), 0) FROM stats_events WHERE created_at >= $1 AND created_at < $2`
	if err := r.db.QueryRow(ctx, query, startTime, endTime).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToQueryTotalPoints, err)
	}
	return total, nil
}

// GetTopUsersByPoints retrieves the athletes with the most points in a time range
func (r *StatsRepository) GetTopUsersByPoints(ctx context.Context, startTime, endTime time.Time, limit int) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT s.user_id, u.username, COALESCE(SUM(s.points), 0) AS total
		FROM stats_events s
		JOIN users u ON u.user_id = s.user_id
		WHERE s.created_at >= $1 AND s.created_at < $2
		GROUP BY s.user_id, u.username
		ORDER BY total DESC, u.username
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, startTime, endTime, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryTopUsers, err)
	}
	defer rows.Close()

	return scanLeaderboard(rows, domain.MetricPoints)
}

// GetTopUsersByGoals retrieves the athletes with the most completed goals
// in a time range, counting the same event types as GetUserGoalCount
func (r *StatsRepository) GetTopUsersByGoals(ctx context.Context, startTime, endTime time.Time, limit int) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT s.user_id, u.username, COUNT(*) AS total
		FROM stats_events s
		JOIN users u ON u.user_id = s.user_id
		WHERE s.event_type = ANY($1) AND s.created_at >= $2 AND s.created_at < $3
		GROUP BY s.user_id, u.username
		ORDER BY total DESC, u.username
		LIMIT $4
	`
	rows, err := r.db.Query(ctx, query, goalEventTypes, startTime, endTime, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryTopUsers, err)
	}
	defer rows.Close()

	return scanLeaderboard(rows, domain.MetricGoals)
}

// GetTopUsersByStreak retrieves the athletes with the longest live streaks.
// A streak is live when its last active day is today or yesterday in UTC.
func (r *StatsRepository) GetTopUsersByStreak(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT st.user_id, u.username, st.current_streak AS total
		FROM user_streaks st
		JOIN users u ON u.user_id = st.user_id
		WHERE st.current_streak > 0
			AND st.last_active_day >= (NOW() AT TIME ZONE 'UTC')::date - 1
		ORDER BY total DESC, u.username
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryStreakLeaders, err)
	}
	defer rows.Close()

	return scanLeaderboard(rows, domain.MetricStreak)
}

// GetStreak retrieves the persisted streak state for a user. Returns nil
// when the user has never recorded activity.
func (r *StatsRepository) GetStreak(ctx context.Context, userID string) (*domain.StreakState, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT user_id, current_streak, longest_streak,
			COALESCE(TO_CHAR(last_active_day, 'YYYY-MM-DD'), ''), updated_at
		FROM user_streaks
		WHERE user_id = $1
	`
	var state domain.StreakState
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&state.UserID, &state.CurrentStreak, &state.LongestStreak,
		&state.LastActiveDay, &state.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStreak, err)
	}
	return &state, nil
}

// UpsertStreak inserts or replaces the streak state for a user
func (r *StatsRepository) UpsertStreak(ctx context.Context, state domain.StreakState) error {
	if _, err := parseUserUUID(state.UserID); err != nil {
		return err
	}

	query := `
		INSERT INTO user_streaks (user_id, current_streak, longest_streak, last_active_day, updated_at)
		VALUES ($1, $2, $3, $4::date, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_active_day = EXCLUDED.last_active_day,
			updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query,
		state.UserID, state.CurrentStreak, state.LongestStreak, state.LastActiveDay,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertStreak, err)
	}
	return nil
}

// ResetExpiredStreaks zeroes every streak whose last active day is before
// the given UTC day and returns the athletes affected
func (r *StatsRepository) ResetExpiredStreaks(ctx context.Context, before string) ([]domain.ExpiredStreak, error) {
	// RETURNING sees post-update values, so the pre-update streak comes
	// from a locked self-select.
	query := `
		UPDATE user_streaks us
		SET current_streak = 0, updated_at = NOW()
		FROM (
			SELECT user_id, current_streak
			FROM user_streaks
			WHERE current_streak > 0 AND last_active_day < $1::date
			FOR UPDATE
		) old
		WHERE us.user_id = old.user_id
		RETURNING us.user_id, old.current_streak
	`
	rows, err := r.db.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToResetStreaks, err)
	}
	defer rows.Close()

	var expired []domain.ExpiredStreak
	for rows.Next() {
		var e domain.ExpiredStreak
		if err := rows.Scan(&e.UserID, &e.PreviousStreak); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToResetStreaks, err)
		}
		expired = append(expired, e)
	}
	return expired, rows.Err()
}

func scanStatsEvents(rows pgx.Rows) ([]domain.StatsEvent, error) {
	var events []domain.StatsEvent
	for rows.Next() {
		var (
			e         domain.StatsEvent
			pillar    *string
			eventData []byte
		)
		if err := rows.Scan(&e.EventID, &e.UserID, &e.EventType, &pillar, &e.Points, &eventData, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
		}
		if pillar != nil {
			p := domain.Pillar(*pillar)
			e.Pillar = &p
		}
		if len(eventData) > 0 {
			var data map[string]interface{}
			if err := json.Unmarshal(eventData, &data); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalEventData, err)
			}
			e.EventData = data
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func scanPillarCounts(rows pgx.Rows, errMsg string) (map[domain.Pillar]int, error) {
	counts := make(map[domain.Pillar]int)
	for rows.Next() {
		var (
			pillar string
			count  int
		)
		if err := rows.Scan(&pillar, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", errMsg, err)
		}
		counts[domain.Pillar(pillar)] = count
	}
	return counts, rows.Err()
}

func scanEventTypeCounts(rows pgx.Rows, errMsg string) (map[domain.EventType]int, error) {
	counts := make(map[domain.EventType]int)
	for rows.Next() {
		var (
			eventType string
			count     int
		)
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", errMsg, err)
		}
		counts[domain.EventType(eventType)] = count
	}
	return counts, rows.Err()
}

func scanLeaderboard(rows pgx.Rows, metric string) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryTopUsers, err)
		}
		e.Metric = metric
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
