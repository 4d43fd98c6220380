package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// PoolStats is the connection pool snapshot exposed by the health endpoint.
type PoolStats struct {
	TotalConns      int32  `json:"total_conns"`
	IdleConns       int32  `json:"idle_conns"`
	AcquiredConns   int32  `json:"acquired_conns"`
	MaxConns        int32  `json:"max_conns"`
	AcquireCount    int64  `json:"acquire_count"`
	AcquireDuration string `json:"acquire_duration"`
	Healthy         bool   `json:"healthy"`
}

func buildStats(total, idle, acquired, max int32, acquireCount int64, acquireDur time.Duration) *PoolStats {
	return &PoolStats{
		TotalConns:      total,
		IdleConns:       idle,
		AcquiredConns:   acquired,
		MaxConns:        max,
		AcquireCount:    acquireCount,
		AcquireDuration: acquireDur.String(),
		Healthy:         total > 0,
	}
}

// GetPoolStats snapshots the pool counters.
func GetPoolStats(pool *pgxpool.Pool) *PoolStats {
	s := pool.Stat()
	return buildStats(s.TotalConns(), s.IdleConns(), s.AcquiredConns(),
		s.MaxConns(), s.AcquireCount(), s.AcquireDuration())
}

// HealthHandler pings the database and reports pool statistics. Used by the
// /health/db endpoint.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		stats := GetPoolStats(pool)
		if err := pool.Ping(ctx); err != nil {
			stats.Healthy = false
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
				"pool":   stats,
			})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"pool":   stats,
		})
	}
}
