package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const pingTimeout = 3 * time.Second

// Open은 실행 이력용 소형 풀을 열고 Ping으로 연결을 확인해요.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 4
	cfg.MinConns = 0
	cfg.MaxConnIdleTime = time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.ConnConfig.ConnectTimeout = pingTimeout
	cfg.ConnConfig.RuntimeParams["application_name"] = "huf"

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping run history: %w", err)
	}
	return pool, nil
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS runs (
  id           TEXT PRIMARY KEY,
  op           TEXT NOT NULL,
  input        TEXT NOT NULL,
  output       TEXT NOT NULL,
  extension    TEXT NOT NULL,
  symbols      INTEGER NOT NULL,
  input_bytes  BIGINT NOT NULL,
  output_bytes BIGINT NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL
)`)
	return err
}

// New picks the run store: Postgres when dsn is set, memory otherwise.
// The returned func releases the store.
func New(ctx context.Context, dsn string) (RunRepo, func(), error) {
	if dsn == "" {
		return NewRunRepoInMemory(), func() {}, nil
	}
	pool, err := Open(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return NewRunRepoPG(pool), pool.Close, nil
}
