package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babygoats/BabyGoats_Go/internal/guide"
)

func guideLoaderFixture(t *testing.T) *guide.Loader {
	t.Helper()

	dir := t.TempDir()
	sheets := map[string]string{
		"resilient.txt":  "Bouncing back from setbacks.\n---\n- Retry a failed drill\n- Talk through what went wrong\n",
		"relentless.txt": "Showing up every day.\n---\n- Log one activity before breakfast\n",
		"fearless.txt":   "Trying the scary thing.\n---\n- Attempt one new skill\n",
	}
	for name, content := range sheets {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	loader := guide.NewLoader(dir)
	require.NoError(t, loader.Load())
	return loader
}

func TestHandleGetGuide(t *testing.T) {
	loader := guideLoaderFixture(t)

	tests := []struct {
		name           string
		pillar         string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success - Resilient",
			pillar:         "resilient",
			expectedStatus: http.StatusOK,
			expectedBody:   "Bouncing back from setbacks.",
		},
		{
			name:           "Success - Mixed Case",
			pillar:         "Fearless",
			expectedStatus: http.StatusOK,
			expectedBody:   "Attempt one new skill",
		},
		{
			name:           "Unknown Pillar",
			pillar:         "unstoppable",
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgUnknownPillarError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Get("/api/v1/guides/{pillar}", HandleGetGuide(loader))

			req := httptest.NewRequest("GET", "/api/v1/guides/"+tt.pillar, nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleGetAllGuides(t *testing.T) {
	loader := guideLoaderFixture(t)

	handler := HandleGetAllGuides(loader)

	req := httptest.NewRequest("GET", "/api/v1/guides", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resilient"`)
	assert.Contains(t, w.Body.String(), `"relentless"`)
	assert.Contains(t, w.Body.String(), `"fearless"`)
	assert.Contains(t, w.Body.String(), "Showing up every day.")
}
