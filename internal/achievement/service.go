package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
	"github.com/babygoats/BabyGoats_Go/internal/progression"
	"github.com/babygoats/BabyGoats_Go/internal/repository"
	"github.com/babygoats/BabyGoats_Go/internal/stats"
)

// Service evaluates athlete counters against the achievement catalog and
// owns the unlock history
type Service interface {
	// EvaluateUser diffs the athlete's current progress against persisted
	// unlocks and records every newly earned achievement. Returns the new
	// unlock records; an empty slice means nothing new was earned.
	EvaluateUser(ctx context.Context, userID string) ([]domain.UnlockRecord, error)

	// GetUserAchievements returns the full catalog from the athlete's point
	// of view. Hidden achievements that are neither earned nor satisfied are
	// masked unless includeHidden is set (privileged callers only).
	GetUserAchievements(ctx context.Context, userID string, includeHidden bool) ([]Achievement, error)

	// GetUserLevels reports the athlete's standing on every pillar ladder.
	GetUserLevels(ctx context.Context, userID string) ([]progression.UserLevel, error)

	// BrowseCatalog lists the catalog without athlete context, optionally
	// filtered by category and rarity. Hidden entries are always masked.
	BrowseCatalog(ctx context.Context, category, rarity string) ([]Achievement, error)
}

// Achievement is one catalog definition seen from a caller's point of view
type Achievement struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Tier        string     `json:"tier"`
	Rarity      string     `json:"rarity"`
	Points      int        `json:"points"`
	Hidden      bool       `json:"hidden"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
	Current     int        `json:"current"`
	Target      int        `json:"target"`
	Percentage  float64    `json:"percentage"`
	// UnlockedBy is how many athletes hold the achievement. Populated by
	// BrowseCatalog only.
	UnlockedBy int `json:"unlocked_by,omitempty"`
}

type service struct {
	repo     repository.Achievement
	stats    stats.Service
	catalog  *progression.Catalog
	eventBus event.Bus
}

// NewService creates a new achievement service
func NewService(repo repository.Achievement, statsService stats.Service, catalog *progression.Catalog, eventBus event.Bus) Service {
	return &service{
		repo:     repo,
		stats:    statsService,
		catalog:  catalog,
		eventBus: eventBus,
	}
}

// EvaluateUser runs the catalog against a fresh counters snapshot.
// RecordUnlock reports first-insert, so concurrent evaluations of the same
// athlete cannot double-announce an unlock; no locking is needed here.
func (s *service) EvaluateUser(ctx context.Context, userID string) ([]domain.UnlockRecord, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUserIDRequired)
	}

	counters, err := s.stats.GetUserCounters(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEvaluateFailed, err)
	}

	unlockedIDs, err := s.repo.GetUnlockedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEvaluateFailed, err)
	}
	held := make(map[string]bool, len(unlockedIDs))
	for _, id := range unlockedIDs {
		held[id] = true
	}

	newly := []domain.UnlockRecord{}
	for _, def := range s.catalog.Achievements() {
		if held[def.ID] {
			continue
		}
		progress := progression.CalculateAchievementProgress(def, *counters)
		if !progress.IsCompleted {
			continue
		}

		record := domain.UnlockRecord{
			UserID:        userID,
			AchievementID: def.ID,
			Points:        def.Points,
			UnlockedAt:    time.Now().UTC(),
		}
		inserted, err := s.repo.RecordUnlock(ctx, record)
		if err != nil {
			return newly, fmt.Errorf(ErrMsgRecordUnlockFailed, err)
		}
		if !inserted {
			// A concurrent evaluation won the insert and owns the announcement
			continue
		}
		newly = append(newly, record)

		log.Info(LogMsgAchievementUnlocked,
			"user_id", userID,
			"achievement_id", def.ID,
			"tier", def.Tier,
			"points", def.Points)
		s.publishUnlockEvent(ctx, userID, def)
		s.recordFeedRow(ctx, userID, def)
	}

	if len(newly) > 0 {
		log.Info(LogMsgEvaluationComplete, "user_id", userID, "new_unlocks", len(newly))
	}
	return newly, nil
}

// GetUserAchievements returns progress on every definition with hidden masking
func (s *service) GetUserAchievements(ctx context.Context, userID string, includeHidden bool) ([]Achievement, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUserIDRequired)
	}

	counters, err := s.stats.GetUserCounters(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetAchievementsFailed, err)
	}
	unlocks, err := s.repo.GetUnlocks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetAchievementsFailed, err)
	}
	unlockedAt := make(map[string]time.Time, len(unlocks))
	for _, rec := range unlocks {
		unlockedAt[rec.AchievementID] = rec.UnlockedAt
	}

	out := make([]Achievement, 0, s.catalog.Size())
	for _, def := range s.catalog.Achievements() {
		progress := progression.CalculateAchievementProgress(def, *counters)
		view := newView(def)
		view.Current = progress.Current
		view.Target = progress.Target
		view.Percentage = progress.Percentage

		if at, ok := unlockedAt[def.ID]; ok {
			view.Unlocked = true
			view.UnlockedAt = &at
		}

		// Satisfying the requirement reveals a hidden achievement even
		// before the evaluation sweep persists the unlock row
		if def.Hidden && !view.Unlocked && !progress.IsCompleted && !includeHidden {
			mask(&view)
		}
		out = append(out, view)
	}
	return out, nil
}

// GetUserLevels reports the athlete's standing on all pillar ladders
func (s *service) GetUserLevels(ctx context.Context, userID string) ([]progression.UserLevel, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUserIDRequired)
	}

	counters, err := s.stats.GetUserCounters(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetLevelsFailed, err)
	}
	levels, err := s.catalog.AllLevels(counters.PillarPoints)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetLevelsFailed, err)
	}
	return levels, nil
}

// BrowseCatalog lists definitions with global unlock counts
func (s *service) BrowseCatalog(ctx context.Context, category, rarity string) ([]Achievement, error) {
	counts, err := s.repo.GetUnlockCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBrowseCatalogFailed, err)
	}

	defs := s.catalog.Achievements()
	if category != "" {
		defs = s.catalog.ByCategory(progression.Category(category))
	}

	out := make([]Achievement, 0, len(defs))
	for _, def := range defs {
		if rarity != "" && string(def.Rarity) != rarity {
			continue
		}
		view := newView(def)
		view.Target = def.Requirement.Target()
		view.UnlockedBy = counts[def.ID]
		if def.Hidden {
			mask(&view)
		}
		out = append(out, view)
	}
	return out, nil
}

func newView(def progression.AchievementDefinition) Achievement {
	return Achievement{
		ID:          def.ID,
		Title:       def.Title,
		Description: def.Description,
		Category:    string(def.Category),
		Tier:        string(def.Tier),
		Rarity:      string(def.Rarity),
		Points:      def.Points,
		Hidden:      def.Hidden,
	}
}

// mask redacts everything that would give a hidden achievement away. The
// id, category, tier and rarity stay so the UI can render a locked card.
func mask(a *Achievement) {
	a.Title = HiddenTitle
	a.Description = HiddenDescription
	a.Current = 0
	a.Target = 0
	a.Percentage = 0
}

func (s *service) publishUnlockEvent(ctx context.Context, userID string, def progression.AchievementDefinition) {
	if s.eventBus == nil {
		return
	}
	evt := event.NewAchievementUnlockedEvent(userID, def.ID, def.Title, string(def.Tier), string(def.Rarity),
		def.Points, def.UnlockMessage, domain.SourceSystem)
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgFailedToPublishEvent, "error", err, "achievement_id", def.ID)
	}
}

// recordFeedRow writes a zero-point history row so the unlock shows up in
// the athlete's activity feed. Unlock points stay out of stats_events;
// feeding them back in would let point achievements unlock each other.
func (s *service) recordFeedRow(ctx context.Context, userID string, def progression.AchievementDefinition) {
	metadata := map[string]interface{}{
		"achievement_id": def.ID,
		"title":          def.Title,
		"tier":           string(def.Tier),
	}
	if _, err := s.stats.RecordActivity(ctx, userID, domain.EventAchievementUnlocked, nil, 0, metadata, domain.SourceSystem); err != nil {
		logger.FromContext(ctx).Warn(LogMsgFailedToRecordFeedRow, "error", err, "achievement_id", def.ID)
	}
}
