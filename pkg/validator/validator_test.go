package validator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type sampleRequest struct {
	SequenceID string `json:"sequence_id" validate:"required,notblank"`
	Phone      string `json:"phone" validate:"required,numeric"`
}

func TestCustomValidator_ValidateReturnsValidationError(t *testing.T) {
	cv := New()

	req := sampleRequest{
		// SequenceID and Phone left empty to trigger validation errors
	}

	err := cv.Validate(req)
	if err == nil {
		t.Fatalf("expected validation error, got nil")
	}

	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}

	if len(ve.Errors) == 0 {
		t.Fatalf("expected at least one validation error, got none")
	}

	if _, exists := ve.Errors["sequence_id"]; !exists {
		t.Errorf("expected 'sequence_id' to be in validation errors")
	}
	if _, exists := ve.Errors["phone"]; !exists {
		t.Errorf("expected 'phone' to be in validation errors")
	}
}

func TestHandleValidationError_Returns400WithDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	c := e.NewContext(req, rec)

	cv := New()
	err := cv.Validate(sampleRequest{})

	if err == nil {
		t.Fatalf("expected validation error, got nil")
	}

	if err := HandleValidationError(c, err); err != nil {
		t.Fatalf("HandleValidationError returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body ValidationErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if body.Success {
		t.Errorf("expected Success=false, got true")
	}
	if body.Error != "Validation failed" {
		t.Errorf("expected error='Validation failed', got %q", body.Error)
	}
	if len(body.Details) == 0 {
		t.Fatalf("expected details in validation response, got none")
	}
}

func TestCustomValidator_ValidRequestPasses(t *testing.T) {
	cv := New()

	if err := cv.Validate(sampleRequest{SequenceID: "seq-1", Phone: "60123456701"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestHandleValidationError_PlainErrorReturns400(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	c := e.NewContext(req, rec)

	if err := HandleValidationError(c, echo.ErrValidatorNotRegistered); err != nil {
		t.Fatalf("HandleValidationError returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body ValidationErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(body.Details) != 0 {
		t.Errorf("expected no details for a plain error")
	}
}

func TestCustomValidator_BlankStringFailsNotBlank(t *testing.T) {
	cv := New()

	err := cv.Validate(sampleRequest{SequenceID: "   ", Phone: "60123456701"})
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}

	if got := ve.Errors["sequence_id"]; got != "sequence_id must not be blank" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestValidationError_ErrorIsSortedByField(t *testing.T) {
	ve := &ValidationError{Errors: map[string]string{
		"phone":       "phone is a required field",
		"sequence_id": "sequence_id is a required field",
	}}

	want := "phone: phone is a required field; sequence_id: sequence_id is a required field"
	if got := ve.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
