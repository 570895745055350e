// Package prefs implements the client preference repository using PostgreSQL.
package prefs

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/creatorcompass-backend/internal/adapter/postgres"
	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

const table = "client_prefs"

var columns = []string{"client_id", "key", "value", "updated_at"}

// Repo provides client preference persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// New creates a new preference repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Get returns the preference stored under (clientID, key).
// Returns domain.ErrNotFound if nothing was stored.
func (r *Repo) Get(ctx context.Context, clientID, key string) (*domain.Preference, error) {
	query, args, err := r.sb.
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"client_id": clientID, "key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select pref: %w", err)
	}

	var p domain.Preference
	err = r.pool.QueryRow(ctx, query, args...).Scan(&p.ClientID, &p.Key, &p.Value, &p.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "pref", clientID+"/"+key)
	}
	return &p, nil
}

// Upsert inserts the preference or replaces the stored value.
func (r *Repo) Upsert(ctx context.Context, p domain.Preference) (*domain.Preference, error) {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	query, args, err := r.sb.
		Insert(table).
		Columns(columns...).
		Values(p.ClientID, p.Key, p.Value, p.UpdatedAt).
		Suffix("ON CONFLICT (client_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		Suffix("RETURNING client_id, key, value, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert pref: %w", err)
	}

	var out domain.Preference
	err = r.pool.QueryRow(ctx, query, args...).Scan(&out.ClientID, &out.Key, &out.Value, &out.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "pref", p.ClientID+"/"+p.Key)
	}
	return &out, nil
}

// Ping checks database connectivity for readiness probes.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
