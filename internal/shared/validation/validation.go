package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"driver-hub/internal/shared/apperrors"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	uuidRegex  = regexp.MustCompile(`^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12}$`)
)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || len(email) > 200 || !emailRegex.MatchString(email) {
		return errors.New("invalid email address")
	}
	return nil
}

// ValidatePhone validates an E.164-style phone number
func ValidatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" || len(phone) > 50 || !phoneRegex.MatchString(phone) {
		return errors.New("invalid phone number")
	}
	return nil
}

// ValidateUUID validates that a string is a valid UUID
func ValidateUUID(id string) error {
	if !uuidRegex.MatchString(id) {
		return errors.New("invalid UUID format")
	}
	return nil
}

// ValidateAddress validates a free-text destination address
func ValidateAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("%w: address cannot be empty", apperrors.ErrInvalidAddress)
	}
	if len(address) > 500 {
		return fmt.Errorf("%w: address exceeds 500 characters", apperrors.ErrInvalidAddress)
	}
	return nil
}

// ValidateDriverStatus validates that a status is one of the allowed values
func ValidateDriverStatus(status string) error {
	validStatuses := []string{"OFFLINE", "AVAILABLE", "BUSY"}
	for _, valid := range validStatuses {
		if status == valid {
			return nil
		}
	}
	return fmt.Errorf("%w: must be one of %v", apperrors.ErrInvalidStatus, validStatuses)
}

// ValidateStringNotEmpty validates that a string is not empty
func ValidateStringNotEmpty(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}
