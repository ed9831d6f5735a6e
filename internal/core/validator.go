package core

import (
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"bwip/internal/types"
)

// Validator wraps go-playground/validator and translates its failures into
// the service's structured error taxonomy.
type Validator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewValidator creates a Validator with struct tag validation enabled.
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// ValidateStruct runs tag validation on a request struct. Failures come back
// as a *types.AppError carrying a per-field details map; a missing required
// field takes the missing-field code, anything else the generic invalid
// payload code.
func (v *Validator) ValidateStruct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		v.logger.Error("validator returned non-validation error", "error", err)
		return types.NewAppError(types.ErrCodeInternalUnexpected, "request validation failed", err)
	}

	details := make(map[string]any, len(verrs))
	missingRequired := false
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		details[field] = fe.Tag()
		if fe.Tag() == "required" {
			missingRequired = true
		}
	}

	code := types.ErrCodeValidationInvalidJSON
	message := "request failed validation"
	if missingRequired {
		code = types.ErrCodeValidationMissingField
		message = "required field missing from request"
	}
	return types.NewAppErrorWithDetails(code, message, err, details)
}
