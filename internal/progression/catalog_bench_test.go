package progression

import (
	"testing"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

func benchCounters() domain.UserCounters {
	return domain.UserCounters{
		Streak:         14,
		GoalsCompleted: 52,
		TotalPoints:    1240,
		DaysActive:     60,
		PillarGoals: map[domain.Pillar]int{
			domain.PillarResilient:  18,
			domain.PillarRelentless: 22,
			domain.PillarFearless:   12,
		},
		PillarPoints: map[domain.Pillar]int{
			domain.PillarResilient:  480,
			domain.PillarRelentless: 510,
			domain.PillarFearless:   250,
		},
		PillarLevels: map[domain.Pillar]int{
			domain.PillarResilient:  2,
			domain.PillarRelentless: 3,
			domain.PillarFearless:   2,
		},
	}
}

// BenchmarkCatalog_UserLevel measures a single ladder resolution, the inner
// loop of every counters assembly and level-up check.
func BenchmarkCatalog_UserLevel(b *testing.B) {
	catalog := DefaultCatalog()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := catalog.UserLevel(domain.PillarRelentless, 735); err != nil {
			b.Fatalf("UserLevel failed: %v", err)
		}
	}
}

// BenchmarkCatalog_AllProgress measures a full progress sweep across the
// catalog, as served by the progression endpoints per request.
func BenchmarkCatalog_AllProgress(b *testing.B) {
	catalog := DefaultCatalog()
	counters := benchCounters()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		progress := catalog.AllProgress(counters)
		if len(progress) != catalog.Size() {
			b.Fatalf("Expected %d progress entries, got %d", catalog.Size(), len(progress))
		}
	}
}

// BenchmarkCatalog_AllLevels measures resolving every pillar ladder at once.
func BenchmarkCatalog_AllLevels(b *testing.B) {
	catalog := DefaultCatalog()
	points := benchCounters().PillarPoints

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		levels, err := catalog.AllLevels(points)
		if err != nil {
			b.Fatalf("AllLevels failed: %v", err)
		}
		if len(levels) != len(domain.Pillars) {
			b.Fatalf("Expected %d levels, got %d", len(domain.Pillars), len(levels))
		}
	}
}
