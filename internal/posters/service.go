package posters

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bwip/internal/pdf"
	"bwip/internal/types"
)

// SummarySource produces the live water quality summary for a beach.
type SummarySource interface {
	Summarize(ctx context.Context, beachID string) (*types.WaterQualitySummary, error)
}

// Renderer turns a render request into a PDF binary.
type Renderer interface {
	Render(req pdf.RenderRequest) ([]byte, error)
}

// LocationStore reads location rows.
type LocationStore interface {
	GetByID(ctx context.Context, id string) (*types.Location, error)
	ListByAuthority(ctx context.Context, authorityID string) ([]types.Location, error)
}

// PosterStore persists poster rows and their PDF binaries. Posters are
// insert-only; there is no update or delete.
type PosterStore interface {
	Create(ctx context.Context, p *types.Poster, pdfData []byte) error
	GetByID(ctx context.Context, id string) (*types.Poster, error)
	GetPDF(ctx context.Context, id string) ([]byte, error)
	ListByAuthority(ctx context.Context, authorityID string) ([]types.Poster, error)
	ListByLocation(ctx context.Context, locationID string) ([]types.Poster, error)
}

// AuditStore appends audit events.
type AuditStore interface {
	Record(ctx context.Context, ev *types.AuditEvent) error
}

// Service orchestrates poster generation end to end.
type Service struct {
	locations LocationStore
	posters   PosterStore
	audit     AuditStore
	source    SummarySource
	renderer  Renderer
	logger    *slog.Logger

	now   func() time.Time
	newID func() string
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides poster/audit ID generation, for tests.
func WithIDGenerator(gen func() string) ServiceOption {
	return func(s *Service) { s.newID = gen }
}

// NewService creates the poster orchestrator.
func NewService(locations LocationStore, posters PosterStore, audit AuditStore, source SummarySource, renderer Renderer, logger *slog.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		locations: locations,
		posters:   posters,
		audit:     audit,
		source:    source,
		renderer:  renderer,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview is the recommendation response for a location: the current
// summary, the mandated template, and the codes the authority may choose
// from instead.
type Preview struct {
	Location       *types.Location               `json:"location"`
	Summary        *types.WaterQualitySummary    `json:"summary"`
	Recommendation *types.TemplateRecommendation `json:"recommendation"`
	Available      []types.TemplateCode          `json:"available_templates"`
}

// Recommendation fetches fresh data for a location and computes the
// template recommendation without generating anything.
func (s *Service) Recommendation(ctx context.Context, locationID string) (*Preview, error) {
	loc, err := s.getLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	summary, err := s.source.Summarize(ctx, loc.BeachesID)
	if err != nil {
		return nil, err
	}
	rec, err := Recommend(loc.Classification, summary)
	if err != nil {
		return nil, err
	}
	return &Preview{
		Location:       loc,
		Summary:        summary,
		Recommendation: rec,
		Available:      TemplatesFor(loc.Classification),
	}, nil
}

// GenerateRequest is one poster generation order.
type GenerateRequest struct {
	LocationID         string            `json:"location_id" validate:"required"`
	Template           types.TemplateCode `json:"template" validate:"required"`
	Size               types.PaperSize   `json:"size" validate:"required"`
	Orientation        types.Orientation `json:"orientation" validate:"required"`
	Language           types.Language    `json:"language" validate:"required"`
	CustomNotification string            `json:"custom_notification,omitempty" validate:"max=500"`
	OverrideReason     string            `json:"override_reason,omitempty" validate:"max=1000"`
}

// Generate runs the full pipeline: validate, fetch, recommend, render,
// persist, audit. The summary fetched in the data step is the exact snapshot
// both rendered and persisted; it is computed once and never refetched. The
// audit write is best-effort: a generated and persisted poster is returned
// even if the audit row could not be written.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*types.Poster, error) {
	actor, _ := types.GetActor(ctx)
	log := s.logger.With(
		"location_id", req.LocationID,
		"template", req.Template,
		"actor_id", actor.ID,
	)

	loc, err := s.validate(ctx, req)
	if err != nil {
		log.Warn("poster generation rejected", "state", types.StateFailed, "error", err)
		return nil, err
	}
	log.Debug("generation request validated", "state", types.StateValidated)

	summary, err := s.source.Summarize(ctx, loc.BeachesID)
	if err != nil {
		log.Error("water quality fetch failed", "state", types.StateFailed, "error", err)
		return nil, err
	}
	summary.CustomNotification = req.CustomNotification
	log.Debug("water quality data fetched", "state", types.StateDataFetched,
		"from_mock", summary.FromMockData)

	rec, err := Recommend(loc.Classification, summary)
	if err != nil {
		log.Error("recommendation failed", "state", types.StateFailed, "error", err)
		return nil, err
	}

	poster, err := s.buildPoster(loc, req, rec, summary, actor)
	if err != nil {
		log.Warn("poster generation rejected", "state", types.StateFailed, "error", err)
		return nil, err
	}

	pdfData, err := s.renderer.Render(pdf.RenderRequest{
		Location:    loc,
		Template:    req.Template,
		Size:        req.Size,
		Orientation: req.Orientation,
		Language:    req.Language,
		Summary:     summary,
	})
	if err != nil {
		log.Error("poster render failed", "state", types.StateFailed, "error", err)
		return nil, err
	}
	log.Debug("poster rendered", "state", types.StateRendered, "bytes", len(pdfData))

	if err := s.posters.Create(ctx, poster, pdfData); err != nil {
		log.Error("poster persist failed", "state", types.StateFailed, "error", err)
		return nil, err
	}
	log.Debug("poster persisted", "state", types.StatePersisted, "poster_id", poster.ID)

	s.recordAudit(ctx, actor, poster, log)

	log.Info("poster generated",
		"state", types.StateAudited,
		"poster_id", poster.ID,
		"template", poster.TemplateUsed,
		"overridden", poster.WasOverridden)

	return poster, nil
}

// validate checks the request enums and resolves the location, enforcing
// that the chosen template belongs to the location's classification family.
func (s *Service) validate(ctx context.Context, req GenerateRequest) (*types.Location, error) {
	if !req.Template.Valid() {
		return nil, types.NewAppError(types.ErrCodeValidationInvalidTemplate,
			fmt.Sprintf("unknown template code %q", req.Template), nil)
	}
	if !req.Size.Valid() {
		return nil, types.NewAppError(types.ErrCodeValidationInvalidSize,
			fmt.Sprintf("unknown size %q", req.Size), nil)
	}
	if !req.Orientation.Valid() {
		return nil, types.NewAppError(types.ErrCodeValidationInvalidOrientation,
			fmt.Sprintf("unknown orientation %q", req.Orientation), nil)
	}
	if !req.Language.Valid() {
		return nil, types.NewAppError(types.ErrCodeValidationInvalidLanguage,
			fmt.Sprintf("unknown language %q", req.Language), nil)
	}

	loc, err := s.getLocation(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}
	if !loc.Classification.Valid() {
		return nil, types.NewAppErrorWithDetails(types.ErrCodeConfigUnknownClassification,
			fmt.Sprintf("location %s has unknown classification %q", loc.ID, loc.Classification), nil,
			map[string]any{"location_id": loc.ID})
	}
	if req.Template.Classification() != loc.Classification {
		return nil, types.NewAppErrorWithDetails(types.ErrCodeValidationTemplateMismatch,
			fmt.Sprintf("template %s is not valid for %s waters", req.Template, loc.Classification), nil,
			map[string]any{
				"template":       string(req.Template),
				"classification": string(loc.Classification),
			})
	}
	return loc, nil
}

// buildPoster assembles and validates the immutable poster record,
// deriving the override state from the recommendation.
func (s *Service) buildPoster(loc *types.Location, req GenerateRequest, rec *types.TemplateRecommendation, summary *types.WaterQualitySummary, actor types.Actor) (*types.Poster, error) {
	overridden := req.Template != rec.Recommended
	if overridden && !rec.CanOverride {
		return nil, types.NewAppError(types.ErrCodeValidationOverrideConsistency,
			fmt.Sprintf("template %s is mandated and cannot be overridden", rec.Recommended), nil)
	}

	recommended := rec.Recommended
	poster := &types.Poster{
		ID:                  s.newID(),
		LocationID:          loc.ID,
		TemplateUsed:        req.Template,
		RecommendedTemplate: &recommended,
		WasOverridden:       overridden,
		OverrideReason:      req.OverrideReason,
		CustomNotification:  req.CustomNotification,
		Size:                req.Size,
		Orientation:         req.Orientation,
		Language:            req.Language,
		Snapshot:            *summary,
		GeneratedBy:         actor.ID,
		GeneratedAt:         s.now().UTC(),
	}
	if !overridden {
		// Supplying an override reason without overriding is accepted and
		// discarded rather than rejected.
		poster.OverrideReason = ""
	}
	if err := poster.Validate(); err != nil {
		return nil, err
	}
	return poster, nil
}

// recordAudit writes the generation event. Failures are logged and absorbed;
// the poster already exists and the caller must receive it.
func (s *Service) recordAudit(ctx context.Context, actor types.Actor, poster *types.Poster, log *slog.Logger) {
	ev := &types.AuditEvent{
		ID:         s.newID(),
		ActorID:    actor.ID,
		Action:     types.AuditPosterGenerated,
		LocationID: poster.LocationID,
		PosterID:   poster.ID,
		Details: types.AuditDetails{
			Template:            poster.TemplateUsed,
			Size:                poster.Size,
			Language:            poster.Language,
			RecommendedTemplate: poster.RecommendedTemplate,
			OverrideReason:      poster.OverrideReason,
			CustomNotification:  poster.CustomNotification,
		},
		CreatedAt: s.now().UTC(),
	}
	if err := s.audit.Record(ctx, ev); err != nil {
		log.Error("audit write failed for generated poster",
			"poster_id", poster.ID, "error", err)
	}
}

// GetPoster returns one poster record.
func (s *Service) GetPoster(ctx context.Context, id string) (*types.Poster, error) {
	return s.posters.GetByID(ctx, id)
}

// ListPosters returns the poster history for an authority, optionally
// narrowed to one location.
func (s *Service) ListPosters(ctx context.Context, authorityID, locationID string) ([]types.Poster, error) {
	if locationID != "" {
		return s.posters.ListByLocation(ctx, locationID)
	}
	return s.posters.ListByAuthority(ctx, authorityID)
}

// Download returns the PDF binary for a poster along with its canonical
// filename, derived from the snapshot the poster was rendered from.
func (s *Service) Download(ctx context.Context, id string) ([]byte, string, error) {
	poster, err := s.posters.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := s.posters.GetPDF(ctx, id)
	if err != nil {
		return nil, "", err
	}
	name := poster.Snapshot.BeachName
	filename := PosterFilename(name, poster.TemplateUsed, poster.Size, poster.GeneratedAt)
	return data, filename, nil
}

// GetLocation returns one location record.
func (s *Service) GetLocation(ctx context.Context, id string) (*types.Location, error) {
	return s.getLocation(ctx, id)
}

// ListLocations returns the active locations for an authority.
func (s *Service) ListLocations(ctx context.Context, authorityID string) ([]types.Location, error) {
	return s.locations.ListByAuthority(ctx, authorityID)
}

func (s *Service) getLocation(ctx context.Context, id string) (*types.Location, error) {
	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, types.NewAppError(types.ErrCodeNotFoundLocation,
			fmt.Sprintf("location %s not found", id), nil)
	}
	return loc, nil
}
