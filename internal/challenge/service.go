package challenge

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
	"github.com/babygoats/BabyGoats_Go/internal/repository"
	"github.com/babygoats/BabyGoats_Go/internal/stats"
)

// Service rotates daily challenges and records completions
type Service interface {
	// GetDailyChallenges returns today's rotation. With a userID the
	// entries carry that athlete's completion state.
	GetDailyChallenges(ctx context.Context, userID string) ([]domain.DailyChallenge, error)

	// CompleteChallenge records an idempotent per-day completion and awards
	// the template's points through the stats service. A second completion
	// of the same challenge on the same day returns ErrChallengeAlreadyDone.
	CompleteChallenge(ctx context.Context, userID, challengeKey string) (*domain.ChallengeCompletion, error)

	// RotateDaily logs yesterday's engagement and announces the new day's
	// rotation. Called by the midnight rollover worker.
	RotateDaily(ctx context.Context) ([]domain.DailyChallenge, error)

	// PoolSize reports how many templates the pool carries.
	PoolSize() int
}

type service struct {
	repo     repository.Challenge
	stats    stats.Service
	eventBus event.Bus

	// pool is immutable after construction; rotation reads need no locking
	pool       []domain.ChallengeTemplate
	dailyCount int
}

// NewService creates a challenge service around a loaded pool
func NewService(repo repository.Challenge, statsService stats.Service, eventBus event.Bus, pool *domain.ChallengePool) (Service, error) {
	if pool == nil || len(pool.Challenges) == 0 {
		return nil, domain.ErrChallengePoolEmpty
	}

	templates := make([]domain.ChallengeTemplate, len(pool.Challenges))
	copy(templates, pool.Challenges)

	dailyCount := pool.DailyCount
	if dailyCount <= 0 {
		dailyCount = DefaultDailyCount
	}
	if dailyCount > len(templates) {
		dailyCount = len(templates)
	}

	return &service{
		repo:       repo,
		stats:      statsService,
		eventBus:   eventBus,
		pool:       templates,
		dailyCount: dailyCount,
	}, nil
}

// GetDailyChallenges returns today's rotation with completion state
func (s *service) GetDailyChallenges(ctx context.Context, userID string) ([]domain.DailyChallenge, error) {
	day := time.Now().UTC().Format(DayFormat)
	return s.challengesForDay(ctx, userID, day)
}

// CompleteChallenge records a completion for one of today's challenges
func (s *service) CompleteChallenge(ctx context.Context, userID, challengeKey string) (*domain.ChallengeCompletion, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUserIDRequired)
	}
	if challengeKey == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgChallengeKeyRequired)
	}

	now := time.Now().UTC()
	day := now.Format(DayFormat)

	template, ok := s.templateForDay(day, challengeKey)
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", domain.ErrChallengeNotFound, challengeKey, day)
	}

	completion := domain.ChallengeCompletion{
		UserID:       userID,
		ChallengeKey: challengeKey,
		Day:          day,
		Points:       template.Points,
		CompletedAt:  now,
	}
	inserted, err := s.repo.RecordCompletion(ctx, completion)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCompleteFailed, err)
	}
	if !inserted {
		return nil, domain.ErrChallengeAlreadyDone
	}

	// The completion row is the idempotency guard, so it is written first.
	// If the award fails the row stands and a retry reports already-done;
	// the error below is the operator's signal to re-award the points.
	metadata := map[string]interface{}{
		"challenge_key": template.ChallengeKey,
		"title":         template.Title,
		"difficulty":    template.Difficulty,
	}
	pillar := template.Pillar
	if _, err := s.stats.RecordActivity(ctx, userID, domain.EventChallengeCompleted, &pillar, template.Points, metadata, domain.SourceChallenge); err != nil {
		log.Error(LogMsgFailedToAwardPoints, "error", err, "challenge_key", challengeKey, "user_id", userID)
		return nil, fmt.Errorf(ErrMsgAwardPointsFailed, err)
	}

	log.Info(LogMsgChallengeCompleted,
		"user_id", userID,
		"challenge_key", challengeKey,
		"day", day,
		"points", template.Points)
	s.publishCompletedEvent(ctx, &completion, template)

	return &completion, nil
}

// RotateDaily reports yesterday's engagement and the new day's selection
func (s *service) RotateDaily(ctx context.Context) ([]domain.DailyChallenge, error) {
	log := logger.FromContext(ctx)
	now := time.Now().UTC()
	today := now.Format(DayFormat)
	yesterday := now.AddDate(0, 0, -1).Format(DayFormat)

	counts, err := s.repo.GetCompletionCounts(ctx, yesterday)
	if err != nil {
		log.Warn(LogMsgFailedToCountCompletions, "error", err, "day", yesterday)
	} else if len(counts) > 0 {
		total := 0
		for _, c := range counts {
			total += c
		}
		log.Info(LogMsgDayCompletions, "day", yesterday, "completions", total, "challenges", len(counts))
	}

	rotation, err := s.challengesForDay(ctx, "", today)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRotateFailed, err)
	}

	keys := make([]string, len(rotation))
	for i, c := range rotation {
		keys[i] = c.ChallengeKey
	}
	log.Info(LogMsgDailyRotation, "day", today, "count", len(rotation), "challenges", keys)
	return rotation, nil
}

// PoolSize reports the number of loaded templates
func (s *service) PoolSize() int {
	return len(s.pool)
}

// challengesForDay assembles one day's rotation, annotated with the
// athlete's completion state when a userID is given
func (s *service) challengesForDay(ctx context.Context, userID, day string) ([]domain.DailyChallenge, error) {
	rotation := s.rotationForDay(day)

	completed := make(map[string]domain.ChallengeCompletion)
	if userID != "" {
		rows, err := s.repo.GetCompletionsForDay(ctx, userID, day)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetChallengesFailed, err)
		}
		for _, row := range rows {
			completed[row.ChallengeKey] = row
		}
	}

	out := make([]domain.DailyChallenge, 0, len(rotation))
	for _, template := range rotation {
		entry := domain.DailyChallenge{
			ChallengeTemplate: template,
			Day:               day,
		}
		if row, ok := completed[template.ChallengeKey]; ok {
			entry.Completed = true
			at := row.CompletedAt
			entry.CompletedAt = &at
		}
		out = append(out, entry)
	}
	return out, nil
}

// rotationForDay picks the day's templates deterministically: every caller
// shuffles an identical copy with the same day-derived seed, so the
// selection is stable all day with no storage or coordination.
func (s *service) rotationForDay(day string) []domain.ChallengeTemplate {
	seed := daySeed(day)
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic rotation, not crypto

	shuffled := make([]domain.ChallengeTemplate, len(s.pool))
	copy(shuffled, s.pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:s.dailyCount]
}

// templateForDay finds one of the day's templates by key
func (s *service) templateForDay(day, challengeKey string) (domain.ChallengeTemplate, bool) {
	for _, template := range s.rotationForDay(day) {
		if template.ChallengeKey == challengeKey {
			return template, true
		}
	}
	return domain.ChallengeTemplate{}, false
}

// daySeed derives the rotation seed from a YYYY-MM-DD day string. A
// malformed day falls back to the zero date rather than failing; callers
// always pass service-formatted days.
func daySeed(day string) int64 {
	t, err := time.Parse(DayFormat, day)
	if err != nil {
		t = time.Time{}
	}
	return int64(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

func (s *service) publishCompletedEvent(ctx context.Context, completion *domain.ChallengeCompletion, template domain.ChallengeTemplate) {
	if s.eventBus == nil {
		return
	}
	evt := event.NewChallengeCompletedEvent(completion.UserID, completion.ChallengeKey,
		string(template.Pillar), completion.Points, completion.Day)
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgFailedToPublishEvent, "error", err, "challenge_key", completion.ChallengeKey)
	}
}
