package db

import (
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/mcguiretech/truapi/internal/common/constants"
	"github.com/mcguiretech/truapi/internal/observability/metrics"
)

func StartPoolMetrics(pool *pgxpool.Pool, interval time.Duration) {
	if interval <= 0 {
		interval = constants.DBPoolMetricsInterval
	}

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			stats := pool.Stat()

			metrics.DBPoolConnections.WithLabelValues(metrics.PoolStateAcquired).Set(float64(stats.AcquiredConns()))
			metrics.DBPoolConnections.WithLabelValues(metrics.PoolStateIdle).Set(float64(stats.IdleConns()))
			metrics.DBPoolConnections.WithLabelValues(metrics.PoolStateMax).Set(float64(stats.MaxConns()))
			metrics.DBPoolConnections.WithLabelValues(metrics.PoolStateTotal).Set(float64(stats.TotalConns()))
		}
	}()
}
