package prefs

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

const maxClientIDLength = 128

// GetInput identifies a stored preference.
type GetInput struct {
	ClientID string
	Key      string
}

// Validate checks all fields and collects all errors.
func (i GetInput) Validate() error {
	if errs := validateKey(i.ClientID, i.Key); len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SetInput holds a preference write.
type SetInput struct {
	ClientID string
	Key      string
	Value    string
}

// Validate checks all fields and collects all errors.
func (i SetInput) Validate() error {
	errs := validateKey(i.ClientID, i.Key)
	if len(i.Value) > domain.MaxPrefValueLength {
		errs = append(errs, domain.FieldError{
			Field:   "value",
			Message: fmt.Sprintf("max %d bytes", domain.MaxPrefValueLength),
		})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateKey(clientID, key string) []domain.FieldError {
	var errs []domain.FieldError
	if strings.TrimSpace(clientID) == "" {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	}
	if len(clientID) > maxClientIDLength {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: fmt.Sprintf("max %d characters", maxClientIDLength)})
	}
	if !domain.IsKnownPrefKey(key) {
		errs = append(errs, domain.FieldError{Field: "key", Message: "unknown preference key"})
	}
	return errs
}
