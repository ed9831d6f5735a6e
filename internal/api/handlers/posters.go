package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bwip/internal/core"
	"bwip/internal/posters"
	"bwip/internal/types"
)

// PosterService defines the service contract for the poster handler.
// Defined locally to avoid tight coupling to the service package.
type PosterService interface {
	Generate(ctx context.Context, req posters.GenerateRequest) (*types.Poster, error)
	GetPoster(ctx context.Context, id string) (*types.Poster, error)
	ListPosters(ctx context.Context, authorityID, locationID string) ([]types.Poster, error)
	Download(ctx context.Context, id string) ([]byte, string, error)
}

// PosterHandler maps HTTP requests to the poster generation pipeline.
type PosterHandler struct {
	service   PosterService
	validator *core.Validator
	logger    *slog.Logger
}

// NewPosterHandler creates a PosterHandler with the provided dependencies.
func NewPosterHandler(svc PosterService, val *core.Validator, logger *slog.Logger) *PosterHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PosterHandler{service: svc, validator: val, logger: logger}
}

// RegisterRoutes mounts the poster endpoints. All routes assume the actor
// middleware is already applied.
func (h *PosterHandler) RegisterRoutes(r chi.Router) {
	r.Route("/posters", func(r chi.Router) {
		r.Post("/", h.HandleGenerate)
		r.Get("/", h.HandleList)
		r.Get("/{posterID}", h.HandleGet)
		r.Get("/{posterID}/download", h.HandleDownload)
	})
}

// HandleGenerate handles POST /v1/posters. The request body carries the full
// generation order; the response is the persisted poster record.
func (h *PosterHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req posters.GenerateRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	poster, err := h.service.Generate(r.Context(), req)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, r, http.StatusCreated, core.APIResponse{Data: poster})
}

// HandleList handles GET /v1/posters, optionally narrowed with the
// location_id query parameter. The authority scope comes from the acting
// identity.
func (h *PosterHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, _ := types.GetActor(r.Context())
	authorityID := actor.AuthorityID
	if authorityID == "" {
		authorityID = r.URL.Query().Get("authority_id")
	}
	locationID := r.URL.Query().Get("location_id")

	if authorityID == "" && locationID == "" {
		core.Error(w, r, types.NewAppError(types.ErrCodeValidationMissingField,
			"authority_id or location_id is required", nil))
		return
	}

	list, err := h.service.ListPosters(r.Context(), authorityID, locationID)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	if list == nil {
		list = []types.Poster{}
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: list})
}

// HandleGet handles GET /v1/posters/{posterID}, returning the poster record
// including its data snapshot but not the PDF binary.
func (h *PosterHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	poster, err := h.service.GetPoster(r.Context(), chi.URLParam(r, "posterID"))
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: poster})
}

// HandleDownload handles GET /v1/posters/{posterID}/download, streaming the
// stored PDF with its canonical filename.
func (h *PosterHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.service.Download(r.Context(), chi.URLParam(r, "posterID"))
	if err != nil {
		core.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
