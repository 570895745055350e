package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/creatorcompass-backend/internal/adapter/generator"
	"github.com/heartmarshall/creatorcompass-backend/internal/adapter/generator/anthropicgen"
	"github.com/heartmarshall/creatorcompass-backend/internal/adapter/generator/httpgen"
	"github.com/heartmarshall/creatorcompass-backend/internal/adapter/generator/openaigen"
	"github.com/heartmarshall/creatorcompass-backend/internal/adapter/memory"
	"github.com/heartmarshall/creatorcompass-backend/internal/adapter/postgres"
	pgprefs "github.com/heartmarshall/creatorcompass-backend/internal/adapter/postgres/prefs"
	"github.com/heartmarshall/creatorcompass-backend/internal/config"
	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

type textGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (string, error)
}

type thumbnailGenerator interface {
	GenerateThumbnail(ctx context.Context, req domain.ThumbnailRequest) (string, error)
}

// newGenerators picks the text and thumbnail generators for the configured
// provider. Anthropic has no image model, so thumbnails stay on HTTP.
func newGenerators(log *slog.Logger, cfg config.GeneratorConfig) (textGenerator, thumbnailGenerator, error) {
	switch cfg.Provider {
	case config.ProviderHTTP:
		c := httpgen.New(log, cfg)
		return c, c, nil
	case config.ProviderAnthropic:
		return anthropicgen.New(log, cfg), httpgen.New(log, cfg), nil
	case config.ProviderOpenAI:
		c := openaigen.New(log, cfg)
		return c, c, nil
	case config.ProviderMock:
		return generator.Offline{}, generator.Offline{}, nil
	}
	return nil, nil, fmt.Errorf("unknown generator provider %q", cfg.Provider)
}

type prefsBackend interface {
	Get(ctx context.Context, clientID, key string) (*domain.Preference, error)
	Upsert(ctx context.Context, p domain.Preference) (*domain.Preference, error)
	Ping(ctx context.Context) error
}

// newPrefsBackend opens the preference storage. The returned func releases
// it and is never nil.
func newPrefsBackend(ctx context.Context, log *slog.Logger, cfg config.PrefsConfig) (prefsBackend, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewPrefsRepo(), func() {}, nil
	case config.DriverPostgres:
		if cfg.MigrateOnStart {
			if err := postgres.Migrate(ctx, log, cfg.DSN); err != nil {
				return nil, func() {}, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, func() {}, err
		}
		log.Info("prefs backend connected", slog.String("driver", cfg.Driver))
		return pgprefs.New(pool), pool.Close, nil
	}
	return nil, func() {}, fmt.Errorf("unknown prefs driver %q", cfg.Driver)
}
