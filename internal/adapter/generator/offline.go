package generator

import (
	"context"
	"fmt"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

// Offline is a provider that fails every call. It keeps the service usable
// without any generator backend: every flow lands on its fallback.
type Offline struct{}

// Generate always fails.
func (Offline) Generate(context.Context, domain.GenerationRequest) (string, error) {
	return "", fmt.Errorf("offline generator: %w", domain.ErrGeneration)
}

// GenerateThumbnail always fails.
func (Offline) GenerateThumbnail(context.Context, domain.ThumbnailRequest) (string, error) {
	return "", fmt.Errorf("offline generator: %w", domain.ErrGeneration)
}
