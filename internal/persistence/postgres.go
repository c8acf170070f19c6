package persistence

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/flowbit/helpdesk/internal/config"
)

// Postgres is an explicit connection manager around a pgx pool. Connection
// state is tracked by the manager itself, guarded for single initialization;
// a second Connect is a no-op.
type Postgres struct {
	cfg    config.PostgresConfig
	logger *zap.Logger

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// NewPostgres builds an unconnected manager.
func NewPostgres(cfg config.PostgresConfig, logger *zap.Logger) *Postgres {
	return &Postgres{cfg: cfg, logger: logger}
}

// Connect establishes the connection pool and verifies it with a ping.
func (p *Postgres) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pool != nil {
		p.logger.Debug("postgres already connected")
		return nil
	}
	if p.cfg.DSN == "" {
		return errors.New("POSTGRES_DSN not configured")
	}

	poolCfg, err := pgxpool.ParseConfig(p.cfg.DSN)
	if err != nil {
		return err
	}
	if p.cfg.MaxConns > 0 {
		poolCfg.MaxConns = p.cfg.MaxConns
	}
	if p.cfg.MinConns > 0 {
		poolCfg.MinConns = p.cfg.MinConns
	}
	if p.cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(p.cfg.ConnMaxIdleSec) * time.Second
	}
	if p.cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(p.cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return err
	}

	p.pool = pool
	p.logger.Info("connected to postgres")
	return nil
}

// Disconnect releases pool resources. Safe to call when not connected.
func (p *Postgres) Disconnect() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
		p.logger.Info("disconnected from postgres")
	}
}

// IsConnected reports whether a pool is currently established.
func (p *Postgres) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pool != nil
}

// Ping verifies connectivity for readiness probes.
func (p *Postgres) Ping(ctx context.Context) error {
	pool := p.PoolHandle()
	if pool == nil {
		return errors.New("postgres not connected")
	}
	return pool.Ping(ctx)
}

// PoolHandle returns the underlying pgx pool, or nil when disconnected.
func (p *Postgres) PoolHandle() *pgxpool.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pool
}
