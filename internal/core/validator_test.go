package core

import (
	"errors"
	"log/slog"
	"testing"

	"bwip/internal/types"
)

type sampleRequest struct {
	LocationID string `validate:"required"`
	Note       string `validate:"max=10"`
}

func TestValidateStructPasses(t *testing.T) {
	v := NewValidator(slog.Default())

	if err := v.ValidateStruct(sampleRequest{LocationID: "loc-1"}); err != nil {
		t.Errorf("ValidateStruct() error: %v", err)
	}
}

func TestValidateStructMissingRequired(t *testing.T) {
	v := NewValidator(slog.Default())

	err := v.ValidateStruct(sampleRequest{})

	var appErr *types.AppError
	if !errors.As(err, &appErr) || appErr.Code != types.ErrCodeValidationMissingField {
		t.Fatalf("want %s, got %v", types.ErrCodeValidationMissingField, err)
	}
	if appErr.Details["locationid"] != "required" {
		t.Errorf("details = %v", appErr.Details)
	}
}

func TestValidateStructOtherTag(t *testing.T) {
	v := NewValidator(slog.Default())

	err := v.ValidateStruct(sampleRequest{LocationID: "loc-1", Note: "this note is far too long"})

	var appErr *types.AppError
	if !errors.As(err, &appErr) || appErr.Code != types.ErrCodeValidationInvalidJSON {
		t.Errorf("want %s, got %v", types.ErrCodeValidationInvalidJSON, err)
	}
}
