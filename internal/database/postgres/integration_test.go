package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/babygoats/BabyGoats_Go/internal/database"
	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

// setupTestDatabase starts a throwaway Postgres container, connects a pool
// and applies the migrations. The test is skipped when Docker is not
// available. Cleanup is registered on t.
func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	var pgContainer *postgres.PostgresContainer
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(5*time.Second)),
		)
	}()

	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	if pgContainer == nil {
		return nil
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPool(connStr, 5, time.Minute, 5*time.Minute)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := applyMigrations(ctx, t, pool, "../../../migrations"); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	return pool
}

// createTestUser inserts an athlete directly and returns the generated id
func createTestUser(ctx context.Context, t *testing.T, pool *pgxpool.Pool, username string) string {
	t.Helper()
	repo := NewUserRepository(pool)
	user := &domain.User{Username: username}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user.ID
}

func TestUserRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := setupTestDatabase(t)
	repo := NewUserRepository(pool)

	t.Run("CreateUser", func(t *testing.T) {
		user := &domain.User{
			Username:  "creation_user",
			DiscordID: "discord123",
		}

		err := repo.CreateUser(ctx, user)
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		if user.ID == "" {
			t.Error("expected user ID to be set")
		}
		if user.CreatedAt.IsZero() {
			t.Error("expected created_at to be set")
		}

		retrieved, err := repo.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if retrieved.Username != "creation_user" {
			t.Errorf("expected username creation_user, got %s", retrieved.Username)
		}
		if retrieved.DiscordID != "discord123" {
			t.Errorf("expected discord id discord123, got %s", retrieved.DiscordID)
		}
	})

	t.Run("CreateUser duplicate username", func(t *testing.T) {
		user := &domain.User{Username: "dupe_user"}
		if err := repo.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		err := repo.CreateUser(ctx, &domain.User{Username: "dupe_user"})
		if !errors.Is(err, domain.ErrUsernameTaken) {
			t.Errorf("expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("GetUserByUsername", func(t *testing.T) {
		createTestUser(ctx, t, pool, "lookup_user")

		retrieved, err := repo.GetUserByUsername(ctx, "lookup_user")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if retrieved.Username != "lookup_user" {
			t.Errorf("expected username lookup_user, got %s", retrieved.Username)
		}
	})

	t.Run("GetUserByUsername not found", func(t *testing.T) {
		_, err := repo.GetUserByUsername(ctx, "nonexistent_user_xyz")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("GetUserByID rejects malformed id", func(t *testing.T) {
		_, err := repo.GetUserByID(ctx, "not-a-uuid")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("GetUserByDiscordID", func(t *testing.T) {
		user := &domain.User{Username: "discord_user", DiscordID: "discord_lookup_456"}
		if err := repo.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		retrieved, err := repo.GetUserByDiscordID(ctx, "discord_lookup_456")
		if err != nil {
			t.Fatalf("GetUserByDiscordID failed: %v", err)
		}
		if retrieved.ID != user.ID {
			t.Errorf("expected user %s, got %s", user.ID, retrieved.ID)
		}
	})

	t.Run("UpdateUser", func(t *testing.T) {
		user := &domain.User{Username: "update_user"}
		if err := repo.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		user.Username = "updated_user"
		user.DiscordID = "discord_updated"
		if err := repo.UpdateUser(ctx, *user); err != nil {
			t.Fatalf("UpdateUser failed: %v", err)
		}

		retrieved, err := repo.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if retrieved.Username != "updated_user" {
			t.Errorf("expected username updated_user, got %s", retrieved.Username)
		}
		if retrieved.DiscordID != "discord_updated" {
			t.Errorf("expected discord id discord_updated, got %s", retrieved.DiscordID)
		}
	})

	t.Run("UpdateUser not found", func(t *testing.T) {
		err := repo.UpdateUser(ctx, domain.User{
			ID:       "00000000-0000-0000-0000-000000000000",
			Username: "ghost",
		})
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("DeleteUser cascades", func(t *testing.T) {
		userID := createTestUser(ctx, t, pool, "delete_user")

		statsRepo := NewStatsRepository(pool)
		evt := &domain.StatsEvent{
			UserID:    userID,
			EventType: domain.EventGoalCompleted,
			Points:    10,
		}
		if err := statsRepo.RecordEvent(ctx, evt); err != nil {
			t.Fatalf("RecordEvent failed: %v", err)
		}

		if err := repo.DeleteUser(ctx, userID); err != nil {
			t.Fatalf("DeleteUser failed: %v", err)
		}

		_, err := repo.GetUserByID(ctx, userID)
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound after delete, got %v", err)
		}

		var count int
		err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM stats_events WHERE user_id = $1`, userID).Scan(&count)
		if err != nil {
			t.Fatalf("count query failed: %v", err)
		}
		if count != 0 {
			t.Errorf("expected cascaded delete of stats events, found %d", count)
		}
	})

	t.Run("SearchUsers", func(t *testing.T) {
		createTestUser(ctx, t, pool, "search_alpha")
		createTestUser(ctx, t, pool, "search_beta")
		createTestUser(ctx, t, pool, "other_gamma")

		results, err := repo.SearchUsers(ctx, "SEARCH", 10)
		if err != nil {
			t.Fatalf("SearchUsers failed: %v", err)
		}
		if len(results) != 2 {
			t.Errorf("expected 2 matches, got %d", len(results))
		}

		limited, err := repo.SearchUsers(ctx, "search", 1)
		if err != nil {
			t.Fatalf("SearchUsers failed: %v", err)
		}
		if len(limited) != 1 {
			t.Errorf("expected limit to cap results at 1, got %d", len(limited))
		}
	})

	t.Run("ListUserIDs", func(t *testing.T) {
		ids, err := repo.ListUserIDs(ctx)
		if err != nil {
			t.Fatalf("ListUserIDs failed: %v", err)
		}
		if len(ids) == 0 {
			t.Error("expected at least one user id")
		}
	})
}
