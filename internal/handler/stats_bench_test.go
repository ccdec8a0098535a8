package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

func init() {
	// Set log level to WARN for benchmarks (reduces noise)
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	handler := slog.NewTextHandler(os.Stdout, opts)
	slog.SetDefault(slog.New(handler))
}

// benchStatsService is a zero-overhead stats.Service for handler benchmarks
type benchStatsService struct{}

func (s *benchStatsService) RecordActivity(ctx context.Context, userID string, eventType domain.EventType, pillar *domain.Pillar, points int, metadata interface{}, source string) (*domain.StatsEvent, error) {
	return &domain.StatsEvent{EventID: 1, UserID: userID, EventType: eventType, Pillar: pillar, Points: points}, nil
}
func (s *benchStatsService) GetUserCounters(ctx context.Context, userID string) (*domain.UserCounters, error) {
	return &domain.UserCounters{}, nil
}
func (s *benchStatsService) GetUserCurrentStreak(ctx context.Context, userID string) (int, error) {
	return 0, nil
}
func (s *benchStatsService) GetUserEvents(ctx context.Context, userID string, period string) ([]domain.StatsEvent, error) {
	return nil, nil
}
func (s *benchStatsService) GetUserStats(ctx context.Context, userID string, period string) (*domain.StatsSummary, error) {
	return nil, nil
}
func (s *benchStatsService) GetSystemStats(ctx context.Context, period string) (*domain.StatsSummary, error) {
	return nil, nil
}
func (s *benchStatsService) GetLeaderboard(ctx context.Context, metric string, period string, limit int) ([]domain.LeaderboardEntry, error) {
	return nil, nil
}
func (s *benchStatsService) ResetExpiredStreaks(ctx context.Context, before string) ([]domain.ExpiredStreak, error) {
	return nil, nil
}

// BenchmarkHandler_RecordActivity benchmarks the full HTTP handler: decode,
// validation, event-type vetting and response encoding.
func BenchmarkHandler_RecordActivity(b *testing.B) {
	InitValidator()

	handler := HandleRecordActivity(&benchStatsService{})

	reqBody := RecordActivityRequest{
		UserID:    "bench-user-123",
		EventType: string(domain.EventGoalCompleted),
		Pillar:    "relentless",
		Points:    25,
	}
	bodyBytes, _ := json.Marshal(reqBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest("POST", "/api/v1/activities", bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			b.Fatalf("Expected status 201, got %d", w.Code)
		}
	}
}

// BenchmarkHandler_RecordActivity_NoPillar benchmarks the pillar-less path
// (workouts that count toward no ladder).
func BenchmarkHandler_RecordActivity_NoPillar(b *testing.B) {
	InitValidator()

	handler := HandleRecordActivity(&benchStatsService{})

	reqBody := RecordActivityRequest{
		UserID:    "bench-user-123",
		EventType: string(domain.EventWorkoutLogged),
		Points:    10,
	}
	bodyBytes, _ := json.Marshal(reqBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest("POST", "/api/v1/activities", bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			b.Fatalf("Expected status 201, got %d", w.Code)
		}
	}
}
