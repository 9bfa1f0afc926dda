package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/request-desk/internal/config"
)

// Postgres wraps access to a pgx connection pool.
type Postgres struct {
	Pool *pgxpool.Pool
}

// NewPostgres establishes a connection pool when DSN is provided.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		logger.Warn("POSTGRES_DSN not provided; skipping database connection")
		return &Postgres{Pool: nil}, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to postgres")
	return &Postgres{Pool: pool}, nil
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

// PoolHandle returns the underlying pgx pool.
func (p *Postgres) PoolHandle() *pgxpool.Pool {
	if p == nil {
		return nil
	}
	return p.Pool
}

// PostgresStore keeps each collection as one jsonb document in the
// collections table. Updates lock the row for the whole transaction.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore builds a store over an open pool.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("postgres store requires a connection pool")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Load(ctx context.Context, collection string) ([]byte, error) {
	if err := checkName(collection); err != nil {
		return nil, err
	}
	const query = `SELECT body::text FROM collections WHERE name=$1`
	var body string
	if err := s.pool.QueryRow(ctx, query, collection).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptyCollection, nil
		}
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}
	return []byte(body), nil
}

func (s *PostgresStore) Update(ctx context.Context, collection string, fn UpdateFunc) error {
	if err := checkName(collection); err != nil {
		return err
	}
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin %s update: %w", collection, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const ensure = `
        INSERT INTO collections (name, body)
        VALUES ($1, '[]'::jsonb)
        ON CONFLICT (name) DO NOTHING`
	if _, err := tx.Exec(ctx, ensure, collection); err != nil {
		return fmt.Errorf("ensure %s: %w", collection, err)
	}

	const selectForUpdate = `SELECT body::text FROM collections WHERE name=$1 FOR UPDATE`
	var current string
	if err := tx.QueryRow(ctx, selectForUpdate, collection).Scan(&current); err != nil {
		return fmt.Errorf("lock %s: %w", collection, err)
	}

	next, err := fn([]byte(current))
	if err != nil {
		return err
	}

	const update = `UPDATE collections SET body=$2::jsonb, updated_at=NOW() WHERE name=$1`
	if _, err := tx.Exec(ctx, update, collection, string(next)); err != nil {
		return fmt.Errorf("save %s: %w", collection, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit %s: %w", collection, err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
