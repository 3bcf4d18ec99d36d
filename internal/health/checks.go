package health

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const defaultProbeTimeout = 2 * time.Second

// Pinger is implemented by backends that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Database probes the gorm connection pool.
func Database(db *gorm.DB, timeout time.Duration) Check {
	return Check{Name: "database", Run: func(ctx context.Context) Result {
		if db == nil {
			return Result{Status: StatusDown, Details: "database not configured"}
		}
		sqlDB, err := db.DB()
		if err != nil {
			return FromError(err)
		}

		probeCtx, cancel := context.WithTimeout(ctx, orDefault(timeout))
		defer cancel()
		return FromError(sqlDB.PingContext(probeCtx))
	}}
}

// Redis probes the shared cache. A nil client reports up with a note since rate limiting
// falls back to another store.
func Redis(client Pinger, timeout time.Duration) Check {
	return Check{Name: "redis", Run: func(ctx context.Context) Result {
		if client == nil {
			return Result{Status: StatusUp, Details: "redis disabled"}
		}

		probeCtx, cancel := context.WithTimeout(ctx, orDefault(timeout))
		defer cancel()
		return FromError(client.Ping(probeCtx))
	}}
}

func orDefault(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return defaultProbeTimeout
	}
	return timeout
}
