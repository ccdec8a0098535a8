//go:build staging

package staging

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

type dailyChallengesResponse struct {
	Day        string `json:"day"`
	Challenges []struct {
		ChallengeKey string `json:"challenge_key"`
		Title        string `json:"title"`
		Points       int    `json:"points"`
		Completed    bool   `json:"completed"`
	} `json:"challenges"`
}

// TestDailyChallenges tests today's challenge card
func TestDailyChallenges(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/api/v1/challenges/today", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var today dailyChallengesResponse
	if err := json.Unmarshal(body, &today); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(today.Challenges) == 0 {
		t.Fatal("Expected at least one challenge on today's card")
	}
	if today.Day == "" {
		t.Error("Expected 'day' field on the challenge card")
	}
}

// TestChallengeCompletion tests the completion flow and its per-day dedup
func TestChallengeCompletion(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/api/v1/challenges/today", nil)
	if resp.StatusCode != http.StatusOK {
		t.Skipf("Cannot fetch today's challenges: %d", resp.StatusCode)
	}

	var today dailyChallengesResponse
	if err := json.Unmarshal(body, &today); err != nil {
		t.Fatalf("Failed to unmarshal challenges: %v", err)
	}
	if len(today.Challenges) == 0 {
		t.Skip("No challenges on today's card")
	}

	userID, _ := registerTestAthlete(t, "staging_chal")
	challengeKey := today.Challenges[0].ChallengeKey

	request := map[string]interface{}{
		"user_id":       userID,
		"challenge_key": challengeKey,
	}

	resp, body = makeRequest(t, "POST", "/api/v1/challenges/complete", request)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var completion struct {
		Completion struct {
			ChallengeKey string `json:"challenge_key"`
			Day          string `json:"day"`
			Points       int    `json:"points"`
		} `json:"completion"`
	}
	if err := json.Unmarshal(body, &completion); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if completion.Completion.ChallengeKey != challengeKey {
		t.Errorf("Expected completion for %q, got %q", challengeKey, completion.Completion.ChallengeKey)
	}

	// Completing the same challenge twice in one day must conflict
	resp, body = makeRequest(t, "POST", "/api/v1/challenges/complete", request)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected status 409 for repeat completion, got %d. Body: %s", resp.StatusCode, string(body))
	}

	// The card should now show the challenge as completed for this athlete
	resp, body = makeRequest(t, "GET", fmt.Sprintf("/api/v1/challenges/today?user_id=%s", userID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, &today); err != nil {
		t.Fatalf("Failed to unmarshal challenges: %v", err)
	}

	found := false
	for _, c := range today.Challenges {
		if c.ChallengeKey == challengeKey {
			found = true
			if !c.Completed {
				t.Error("Expected completed challenge to be marked on the card")
			}
		}
	}
	if !found {
		t.Errorf("Challenge %q missing from today's card after completion", challengeKey)
	}
}
