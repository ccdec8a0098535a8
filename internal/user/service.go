package user

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
	"github.com/babygoats/BabyGoats_Go/internal/progression"
	"github.com/babygoats/BabyGoats_Go/internal/repository"
	"github.com/babygoats/BabyGoats_Go/internal/stats"
)

// Service defines the interface for athlete account operations
type Service interface {
	// RegisterAthlete creates an account. The username must be unique;
	// discordID optionally links the athlete for community announcements.
	RegisterAthlete(ctx context.Context, username, discordID string) (*domain.User, error)

	GetAthlete(ctx context.Context, userID string) (*domain.User, error)
	GetAthleteByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetProfile assembles the athlete, their counters snapshot and the
	// engine levels for all pillars in one view.
	GetProfile(ctx context.Context, userID string) (*Profile, error)

	UpdateAthlete(ctx context.Context, athlete domain.User) error
	DeleteAthlete(ctx context.Context, userID string) error

	// SearchAthletes finds athletes whose username contains the query,
	// case-insensitive. Backs the coach lookup tools.
	SearchAthletes(ctx context.Context, query string, limit int) ([]domain.User, error)

	GetCacheStats() CacheStats
}

// Profile is the assembled view the profile endpoint serves
type Profile struct {
	User     domain.User             `json:"user"`
	Counters domain.UserCounters     `json:"counters"`
	Levels   []progression.UserLevel `json:"levels"`
}

// service implements the Service interface
type service struct {
	repo      repository.User
	stats     stats.Service
	catalog   *progression.Catalog
	eventBus  event.Bus
	userCache *userCache
}

// loadCacheConfig reads cache tuning from the environment
func loadCacheConfig() CacheConfig {
	config := DefaultCacheConfig()

	if val := os.Getenv(EnvUserCacheSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			config.Size = size
		}
	}

	if val := os.Getenv(EnvUserCacheTTL); val != "" {
		if ttl, err := time.ParseDuration(val); err == nil && ttl > 0 {
			config.TTL = ttl
		}
	}

	return config
}

// NewService creates a new athlete service
func NewService(repo repository.User, statsService stats.Service, catalog *progression.Catalog, eventBus event.Bus) Service {
	return &service{
		repo:      repo,
		stats:     statsService,
		catalog:   catalog,
		eventBus:  eventBus,
		userCache: newUserCache(loadCacheConfig()),
	}
}

// RegisterAthlete creates a new athlete account
func (s *service) RegisterAthlete(ctx context.Context, username, discordID string) (*domain.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUsernameRequired)
	}
	if len(username) > MaxUsernameLength {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUsernameTooLong)
	}

	athlete := domain.User{Username: username, DiscordID: discordID}
	if err := s.repo.CreateUser(ctx, &athlete); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrDiscordIDTaken) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgRegisterFailed, err)
	}

	s.userCache.SetAll(&athlete)
	log.Info(LogMsgAthleteRegistered, "user_id", athlete.ID, "username", athlete.Username)
	s.publishRegisteredEvent(ctx, &athlete)

	return &athlete, nil
}

// GetAthlete retrieves an athlete by ID, read-through cached
func (s *service) GetAthlete(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUserIDRequired)
	}

	if athlete, ok := s.userCache.Get(idKey(userID)); ok {
		return athlete, nil
	}

	athlete, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgGetAthleteFailed, err)
	}

	s.userCache.SetAll(athlete)
	return athlete, nil
}

// GetAthleteByUsername retrieves an athlete by exact username, read-through cached
func (s *service) GetAthleteByUsername(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUsernameRequired)
	}

	if athlete, ok := s.userCache.Get(nameKey(username)); ok {
		return athlete, nil
	}

	athlete, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgGetAthleteFailed, err)
	}

	s.userCache.SetAll(athlete)
	return athlete, nil
}

// GetProfile assembles athlete, counters and engine levels in one view
func (s *service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	athlete, err := s.GetAthlete(ctx, userID)
	if err != nil {
		return nil, err
	}

	counters, err := s.stats.GetUserCounters(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgProfileFailed, err)
	}

	levels, err := s.catalog.AllLevels(counters.PillarPoints)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgProfileFailed, err)
	}

	return &Profile{
		User:     *athlete,
		Counters: *counters,
		Levels:   levels,
	}, nil
}

// UpdateAthlete updates username and Discord link
func (s *service) UpdateAthlete(ctx context.Context, athlete domain.User) error {
	log := logger.FromContext(ctx)

	if athlete.ID == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUserIDRequired)
	}
	athlete.Username = strings.TrimSpace(athlete.Username)
	if athlete.Username == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUsernameRequired)
	}
	if len(athlete.Username) > MaxUsernameLength {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUsernameTooLong)
	}

	// A rename leaves the old username's cache entry behind; it has to go
	// too or old-name lookups serve the stale athlete until the TTL fires.
	stale := []string{idKey(athlete.ID), nameKey(athlete.Username)}
	if current, err := s.repo.GetUserByID(ctx, athlete.ID); err == nil && current.Username != athlete.Username {
		stale = append(stale, nameKey(current.Username))
	}

	if err := s.repo.UpdateUser(ctx, athlete); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) ||
			errors.Is(err, domain.ErrUsernameTaken) ||
			errors.Is(err, domain.ErrDiscordIDTaken) {
			return err
		}
		return fmt.Errorf(ErrMsgUpdateFailed, err)
	}

	s.userCache.Invalidate(stale...)
	log.Info(LogMsgAthleteUpdated, "user_id", athlete.ID, "username", athlete.Username)
	return nil
}

// DeleteAthlete removes an athlete and their activity history
func (s *service) DeleteAthlete(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	if userID == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUserIDRequired)
	}

	stale := []string{idKey(userID)}
	if current, err := s.repo.GetUserByID(ctx, userID); err == nil {
		stale = append(stale, nameKey(current.Username))
	}

	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf(ErrMsgDeleteFailed, err)
	}

	s.userCache.Invalidate(stale...)
	log.Info(LogMsgAthleteDeleted, "user_id", userID)
	return nil
}

// SearchAthletes finds athletes by username substring
func (s *service) SearchAthletes(ctx context.Context, query string, limit int) ([]domain.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgQueryRequired)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	athletes, err := s.repo.SearchUsers(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSearchFailed, err)
	}
	return athletes, nil
}

// GetCacheStats reports athlete cache effectiveness
func (s *service) GetCacheStats() CacheStats {
	return s.userCache.GetStats()
}

func (s *service) publishRegisteredEvent(ctx context.Context, athlete *domain.User) {
	if s.eventBus == nil {
		return
	}
	evt := event.NewAthleteRegisteredEvent(athlete.ID, athlete.Username)
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgFailedToPublishEvent, "error", err, "user_id", athlete.ID)
	}
}
