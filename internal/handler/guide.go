package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/guide"
)

// GuidesResponse wraps all pillar guides keyed by pillar name.
type GuidesResponse struct {
	Guides map[string]*guide.Guide `json:"guides"`
}

// HandleGetGuide returns the coaching guide for one pillar.
// @Summary Get pillar guide
// @Description Returns the description and drill list for one pillar
// @Tags guides
// @Produce json
// @Param pillar path string true "Pillar (resilient, relentless, fearless)"
// @Success 200 {object} guide.Guide
// @Failure 404 {object} ErrorResponse
// @Router /guides/{pillar} [get]
func HandleGetGuide(loader *guide.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pillar := domain.Pillar(strings.ToLower(chi.URLParam(r, "pillar")))
		if !pillar.Valid() {
			respondError(w, http.StatusNotFound, ErrMsgUnknownPillarError)
			return
		}

		g, ok := loader.GetGuide(pillar)
		if !ok {
			respondError(w, http.StatusNotFound, ErrMsgUnknownPillarError)
			return
		}

		respondJSON(w, http.StatusOK, g)
	}
}

// HandleGetAllGuides returns every pillar guide.
// @Summary Get all guides
// @Description Returns the coaching guides for all pillars
// @Tags guides
// @Produce json
// @Success 200 {object} GuidesResponse
// @Router /guides [get]
func HandleGetAllGuides(loader *guide.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := loader.GetAllGuides()

		guides := make(map[string]*guide.Guide, len(all))
		for pillar, g := range all {
			guides[string(pillar)] = g
		}

		respondJSON(w, http.StatusOK, GuidesResponse{Guides: guides})
	}
}
