// Package handlers contains the HTTP handler implementations for the poster
// service API. Handlers translate between the HTTP surface and the domain
// services; they hold no business logic of their own.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bwip/internal/core"
	"bwip/internal/posters"
	"bwip/internal/types"
)

// LocationService defines the service contract for the location handler.
// Defined locally to avoid tight coupling to the service package.
type LocationService interface {
	ListLocations(ctx context.Context, authorityID string) ([]types.Location, error)
	GetLocation(ctx context.Context, id string) (*types.Location, error)
	Recommendation(ctx context.Context, locationID string) (*posters.Preview, error)
}

// LocationHandler maps HTTP requests to location and recommendation
// operations.
type LocationHandler struct {
	service LocationService
	logger  *slog.Logger
}

// NewLocationHandler creates a LocationHandler with the provided dependencies.
func NewLocationHandler(svc LocationService, logger *slog.Logger) *LocationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocationHandler{service: svc, logger: logger}
}

// RegisterRoutes mounts the location endpoints. All routes assume the actor
// middleware is already applied.
func (h *LocationHandler) RegisterRoutes(r chi.Router) {
	r.Route("/locations", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Get("/{locationID}", h.HandleGet)
		r.Get("/{locationID}/recommendation", h.HandleRecommendation)
	})
}

// HandleList handles GET /v1/locations. The authority scope comes from the
// acting identity; system actors may select one with the authority_id query
// parameter.
func (h *LocationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	authorityID := h.resolveAuthority(r)
	if authorityID == "" {
		core.Error(w, r, types.NewAppError(types.ErrCodeValidationMissingField,
			"authority_id is required", nil))
		return
	}

	locations, err := h.service.ListLocations(r.Context(), authorityID)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	if locations == nil {
		locations = []types.Location{}
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: locations})
}

// HandleGet handles GET /v1/locations/{locationID}.
func (h *LocationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	loc, err := h.service.GetLocation(r.Context(), chi.URLParam(r, "locationID"))
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: loc})
}

// HandleRecommendation handles GET /v1/locations/{locationID}/recommendation.
// It fetches fresh water quality data and returns the mandated template
// alongside the codes the authority may pick instead.
func (h *LocationHandler) HandleRecommendation(w http.ResponseWriter, r *http.Request) {
	preview, err := h.service.Recommendation(r.Context(), chi.URLParam(r, "locationID"))
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: preview})
}

func (h *LocationHandler) resolveAuthority(r *http.Request) string {
	actor, _ := types.GetActor(r.Context())
	if actor.AuthorityID != "" {
		return actor.AuthorityID
	}
	return r.URL.Query().Get("authority_id")
}
