package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
)

type TestSecurityCommand struct{}

func (c *TestSecurityCommand) Name() string {
	return "test-security"
}

func (c *TestSecurityCommand) Description() string {
	return "Run API security tests against a live server"
}

// Run probes a live server's auth and validation surface: missing and
// wrong API keys, oversized and malformed fields, and an activity with
// an unknown pillar.
func (c *TestSecurityCommand) Run(args []string) error {
	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		fail("API_KEY not found in environment (check .env file)")
		return fmt.Errorf("API_KEY not found")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	banner("Security Feature Tests")

	cases := []struct {
		desc    string
		path    string
		key     string
		want    int
		payload map[string]interface{}
	}{
		{
			desc:    "Register without API key (should fail with 401)",
			path:    "/api/v1/athletes",
			key:     "",
			want:    401,
			payload: map[string]interface{}{"username": "security_check"},
		},
		{
			desc:    "Register with wrong API key (should fail with 401)",
			path:    "/api/v1/athletes",
			key:     "wrong_key",
			want:    401,
			payload: map[string]interface{}{"username": "security_check"},
		},
		{
			desc:    "Register with valid API key (should succeed with 200/201)",
			path:    "/api/v1/athletes",
			key:     apiKey,
			want:    200,
			payload: map[string]interface{}{"username": "security_check"},
		},
		{
			desc:    "Missing username (should fail with 400)",
			path:    "/api/v1/athletes",
			key:     apiKey,
			want:    400,
			payload: map[string]interface{}{"discord_id": "123456789"},
		},
		{
			desc:    "Username too long (should fail with 400)",
			path:    "/api/v1/athletes",
			key:     apiKey,
			want:    400,
			payload: map[string]interface{}{"username": strings.Repeat("A", 200)},
		},
		{
			desc:    "Username with control characters (should fail with 400)",
			path:    "/api/v1/athletes",
			key:     apiKey,
			want:    400,
			payload: map[string]interface{}{"username": "security\ncheck"},
		},
		{
			desc: "Activity with invalid pillar (should fail with 400)",
			path: "/api/v1/activities",
			key:  apiKey,
			want: 400,
			payload: map[string]interface{}{
				"user_id":    "00000000-0000-0000-0000-000000000001",
				"event_type": "goal_completed",
				"pillar":     "unstoppable",
				"points":     10,
			},
		},
	}

	failures := 0
	for i, tc := range cases {
		fmt.Printf("Test %d: %s\n", i+1, tc.desc)
		got := c.makeRequest(baseURL, tc.path, tc.key, tc.payload)
		if c.acceptable(got, tc.want) {
			fmt.Printf(" - Result: %d (OK)\n", got)
		} else {
			fmt.Printf(" - Result: %s%d (Expected %d)%s\n", ansiRed, got, tc.want, ansiReset)
			failures++
		}
		fmt.Println()
	}

	if failures > 0 {
		fail("Security Tests Failed (%d failures)", failures)
		return fmt.Errorf("security tests failed")
	}

	ok("Security Tests Complete")
	return nil
}

// acceptable widens the success case: 201 is a fresh registration and 409
// a re-run against an existing athlete, both prove the request was
// authenticated and validated.
func (c *TestSecurityCommand) acceptable(got, want int) bool {
	if got == want {
		return true
	}
	return want == 200 && (got == 201 || got == 409)
}

func (c *TestSecurityCommand) makeRequest(baseURL, path, apiKey string, payload interface{}) int {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error marshaling payload: %v\n", err)
		return 0
	}

	req, err := http.NewRequest("POST", baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return 0
	}

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		return 0
	}
	defer resp.Body.Close()

	return resp.StatusCode
}
