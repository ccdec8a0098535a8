package achievement

import (
	"github.com/babygoats/BabyGoats_Go/internal/repository"
)

// Repository is a local interface for achievement repository operations.
// It embeds repository.Achievement to enable mock generation in this package.
// Generated mock will be in internal/achievement/mocks/mock_repository.go
type Repository interface {
	repository.Achievement
}
