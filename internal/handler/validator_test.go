package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

// Test boundaries
const (
	MaxUsernameLength = 50
	MinPoints         = 0
	MaxPoints         = 1000
)

type TestStruct struct {
	Pillar   string `validate:"pillar"`
	Period   string `validate:"period"`
	Username string `validate:"required,max=50,excludesall=\x00\n\r\t"`
	Points   int    `validate:"gte=0,lte=1000"`
}

// =============================================================================
// Validator Tests - Demonstrating 5-Case Testing Model
// =============================================================================

func TestValidator_PillarValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		pillar  string
		wantErr bool
	}{
		// CASE 1: Best Case
		{"valid resilient", string(domain.PillarResilient), false},
		{"valid relentless", string(domain.PillarRelentless), false},
		{"valid fearless", string(domain.PillarFearless), false},

		// CASE 2: Boundary - empty allowed (not required)
		{"empty pillar allowed", "", false},

		// CASE 3: Edge - case insensitive
		{"uppercase pillar", "RESILIENT", false},
		{"mixed case pillar", "Fearless", false},

		// CASE 4: Invalid Case
		{"invalid pillar", "unstoppable", true},
		{"typo", "resiliant", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := TestStruct{
				Pillar:   tt.pillar,
				Username: "validuser",
				Points:   10,
			}

			err := v.ValidateStruct(input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_PeriodValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		period  string
		wantErr bool
	}{
		// CASE 1: Best Case
		{"valid daily", domain.PeriodDaily, false},
		{"valid weekly", domain.PeriodWeekly, false},
		{"valid all", domain.PeriodAll, false},

		// CASE 2: Boundary - empty allowed (not required)
		{"empty period allowed", "", false},

		// CASE 3: Edge - case insensitive
		{"uppercase period", "MONTHLY", false},

		// CASE 4: Invalid Case
		{"invalid period", "fortnightly", true},
		{"typo", "weekyl", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := TestStruct{
				Period:   tt.period,
				Username: "validuser",
				Points:   10,
			}

			err := v.ValidateStruct(input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_UsernameValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		// CASE 1: Best Case
		{"valid username", "validuser", false},
		{"alphanumeric", "user123", false},
		{"with underscore", "user_name", false},

		// CASE 2: Boundary Case
		{"one char (just inside)", "a", false},
		{"exactly max length", strings.Repeat("a", MaxUsernameLength), false},
		{"over max length", strings.Repeat("a", MaxUsernameLength+1), true},

		// CASE 4: Invalid Case
		{"empty username", "", true},
		{"with newline", "user\nname", true},
		{"with tab", "user\tname", true},
		{"with null byte", "user\x00name", true},
		{"with carriage return", "user\rname", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := TestStruct{
				Username: tt.username,
				Points:   10,
			}

			err := v.ValidateStruct(input)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidator_PointsValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		points  int
		wantErr bool
	}{
		// CASE 1: Best Case
		{"valid points", 25, false},
		{"mid range", 500, false},

		// CASE 2: Boundary Case
		{"negative (beyond lower)", -1, true},
		{"zero (at min)", MinPoints, false},
		{"max allowed", MaxPoints, false},
		{"over max (beyond upper)", MaxPoints + 1, true},

		// CASE 2: Worst Case - extremes
		{"very negative", -999999, true},
		{"very large", 999999, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := TestStruct{
				Username: "validuser",
				Points:   tt.points,
			}

			err := v.ValidateStruct(input)

			if tt.wantErr {
				assert.Error(t, err, "Expected validation error for points=%d", tt.points)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_MultipleFieldErrors(t *testing.T) {
	InitValidator()
	v := GetValidator()

	t.Run("all fields invalid", func(t *testing.T) {
		input := TestStruct{
			Pillar:   "invalid",
			Username: "", // Required field
			Points:   -1, // Below minimum
		}

		err := v.ValidateStruct(input)

		require.Error(t, err)
		// Should have errors for all three fields
		assert.Contains(t, err.Error(), "Pillar")
		assert.Contains(t, err.Error(), "Username")
		assert.Contains(t, err.Error(), "Points")
	})
}
