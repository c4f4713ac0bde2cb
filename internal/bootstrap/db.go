package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vannarellifabrizio-hash/ses-app/config"
)

// OpenDB opens the postgres pool the snapshot repositories run on and
// verifies it with a ping before the router starts taking traffic.
func OpenDB(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	connectTO := cfg.ConnectTimeout
	if connectTO <= 0 {
		connectTO = 5 * time.Second
	}
	pingTO := cfg.PingTimeout
	if pingTO <= 0 {
		pingTO = 2 * time.Second
	}

	cctx, cancel := context.WithTimeout(ctx, connectTO)
	defer cancel()

	pool, err := pgxpool.New(cctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, pingTO)
	defer pcancel()

	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return pool, nil
}
