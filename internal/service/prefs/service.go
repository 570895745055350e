package prefs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

type prefsRepo interface {
	Get(ctx context.Context, clientID, key string) (*domain.Preference, error)
	Upsert(ctx context.Context, p domain.Preference) (*domain.Preference, error)
}

// Service reads and writes cross-session client preferences.
type Service struct {
	repo  prefsRepo
	clock clockwork.Clock
	log   *slog.Logger
}

// NewService creates a new preference service.
func NewService(log *slog.Logger, clock clockwork.Clock, repo prefsRepo) *Service {
	return &Service{
		repo:  repo,
		clock: clock,
		log:   log.With("service", "prefs"),
	}
}

// Find returns the stored preference or domain.ErrNotFound.
func (s *Service) Find(ctx context.Context, in GetInput) (*domain.Preference, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.Get(ctx, in.ClientID, in.Key)
	if err != nil {
		return nil, fmt.Errorf("get pref: %w", err)
	}
	return p, nil
}

// Get returns the value stored under key for clientID. ok is false when
// nothing was stored; only storage failures are returned as errors.
func (s *Service) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	p, err := s.Find(ctx, GetInput{ClientID: clientID, Key: key})
	switch {
	case err == nil:
		return p.Value, true, nil
	case errors.Is(err, domain.ErrNotFound):
		return "", false, nil
	default:
		return "", false, err
	}
}

// Set stores a preference value, replacing any previous one.
func (s *Service) Set(ctx context.Context, in SetInput) (*domain.Preference, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.Upsert(ctx, domain.Preference{
		ClientID:  in.ClientID,
		Key:       in.Key,
		Value:     in.Value,
		UpdatedAt: s.clock.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("upsert pref: %w", err)
	}

	s.log.InfoContext(ctx, "pref stored",
		slog.String("client_id", in.ClientID),
		slog.String("key", in.Key),
		slog.Int("value_len", len(in.Value)),
	)
	return p, nil
}
