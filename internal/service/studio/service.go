// Package studio runs the generation side of the wizard: the topics step
// with its prompt sub-flow and the content step with its thumbnail sub-flow.
package studio

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

// Generation kinds and outcomes reported to the outcome recorder.
const (
	KindTopics    = "topics"
	KindPrompt    = "prompt"
	KindThumbnail = "thumbnail"

	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
	OutcomeDropped  = "dropped"
)

type textGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (string, error)
}

type thumbnailGenerator interface {
	GenerateThumbnail(ctx context.Context, req domain.ThumbnailRequest) (string, error)
}

type prefsReader interface {
	Get(ctx context.Context, clientID, key string) (string, bool, error)
}

type outcomeRecorder interface {
	RecordGeneration(kind, outcome string)
}

// Config holds the timing and fallback knobs of the studio flows.
type Config struct {
	TopicsDelay       time.Duration
	ContentDelay      time.Duration
	CopyIndicatorTTL  time.Duration
	GenerationTimeout time.Duration
	// SilentFallback replaces failed prompt generations with the fallback
	// template instead of an error state.
	SilentFallback bool
}

// Service creates topic and content flows bound to a wizard session.
type Service struct {
	log      *slog.Logger
	clock    clockwork.Clock
	cfg      Config
	text     textGenerator
	thumbs   thumbnailGenerator
	prefs    prefsReader
	recorder outcomeRecorder
	intn     func(n int) int
}

// NewService creates a new studio service.
func NewService(
	log *slog.Logger,
	clock clockwork.Clock,
	cfg Config,
	text textGenerator,
	thumbs thumbnailGenerator,
	prefs prefsReader,
	recorder outcomeRecorder,
) *Service {
	return &Service{
		log:      log.With("service", "studio"),
		clock:    clock,
		cfg:      cfg,
		text:     text,
		thumbs:   thumbs,
		prefs:    prefs,
		recorder: recorder,
		intn:     rand.IntN,
	}
}

func (s *Service) record(kind, outcome string) {
	if s.recorder != nil {
		s.recorder.RecordGeneration(kind, outcome)
	}
}

// requestContext bounds a background request by the generation timeout.
func (s *Service) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.GenerationTimeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, s.cfg.GenerationTimeout)
}

// elapsed reports whether d has passed since t on the service clock.
func (s *Service) elapsed(t time.Time, d time.Duration) bool {
	return s.clock.Since(t) >= d
}
