package repository

import (
	"context"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

// User defines the interface for athlete account persistence
type User interface {
	// CreateUser inserts a new athlete and fills in the generated ID and timestamps
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	DeleteUser(ctx context.Context, userID string) error

	// SearchUsers finds athletes whose username contains the query, case-insensitive
	SearchUsers(ctx context.Context, query string, limit int) ([]domain.User, error)

	// ListUserIDs returns every athlete ID, for evaluation and rollover sweeps
	ListUserIDs(ctx context.Context) ([]string, error)
}
