package validation

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"driver-hub/internal/shared/apperrors"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"driver@example.com", "a.b+c@sub.domain.io"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) = %v, want nil", email, err)
		}
	}

	invalid := []string{"", "plainaddress", "@no-local.com", "user@", "user@host", strings.Repeat("a", 200) + "@x.com"}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) = nil, want error", email)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"+77001234567", "77001234567", "+14155552671"}
	for _, phone := range valid {
		if err := ValidatePhone(phone); err != nil {
			t.Errorf("ValidatePhone(%q) = %v, want nil", phone, err)
		}
	}

	invalid := []string{"", "0123", "+0123456", "phone", "+7 700 123"}
	for _, phone := range invalid {
		if err := ValidatePhone(phone); err == nil {
			t.Errorf("ValidatePhone(%q) = nil, want error", phone)
		}
	}
}

func TestValidateAddress(t *testing.T) {
	if err := ValidateAddress("123 Main St"); err != nil {
		t.Errorf("plain address rejected: %v", err)
	}
	if err := ValidateAddress("51.169392, 71.449074"); err != nil {
		t.Errorf("coordinate pair rejected: %v", err)
	}
	if err := ValidateAddress("   "); err == nil {
		t.Error("whitespace-only address accepted")
	}
	if err := ValidateAddress(strings.Repeat("x", 501)); err == nil {
		t.Error("oversized address accepted")
	}
}

func TestValidateDriverStatus(t *testing.T) {
	for _, status := range []string{"OFFLINE", "AVAILABLE", "BUSY"} {
		if err := ValidateDriverStatus(status); err != nil {
			t.Errorf("ValidateDriverStatus(%q) = %v, want nil", status, err)
		}
	}
	for _, status := range []string{"", "offline", "EN_ROUTE", "IDLE"} {
		if err := ValidateDriverStatus(status); err == nil {
			t.Errorf("ValidateDriverStatus(%q) = nil, want error", status)
		}
	}
}

// Status and address rejections come back to the client as 400, not as
// an opaque 500.
func TestValidationErrorsMapToBadRequest(t *testing.T) {
	if err := ValidateDriverStatus("EN_ROUTE"); !errors.Is(err, apperrors.ErrInvalidStatus) {
		t.Errorf("ValidateDriverStatus error = %v, want wrapped ErrInvalidStatus", err)
	}
	if err := ValidateAddress("   "); !errors.Is(err, apperrors.ErrInvalidAddress) {
		t.Errorf("ValidateAddress error = %v, want wrapped ErrInvalidAddress", err)
	}

	for _, err := range []error{
		ValidateDriverStatus("EN_ROUTE"),
		ValidateAddress("   "),
		ValidateAddress(strings.Repeat("x", 501)),
	} {
		if code := apperrors.CheckError(err); code != http.StatusBadRequest {
			t.Errorf("CheckError(%v) = %d, want %d", err, code, http.StatusBadRequest)
		}
	}
}
