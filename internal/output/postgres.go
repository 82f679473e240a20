package output

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vivek2589/bangalore-graph-package/internal/export"
	"github.com/vivek2589/bangalore-graph-package/internal/models"
)

const defaultEdgeTable = "traffic_graph_edges"

// PostgresSink bulk-inserts edge rows into a table, replacing any previous
// run.
type PostgresSink struct {
	pool  *pgxpool.Pool
	table string
}

func NewPostgresSink(ctx context.Context, cfg models.DatabaseConfig) (*PostgresSink, error) {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode,
	)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	table := cfg.Table
	if table == "" {
		table = defaultEdgeTable
	}
	return &PostgresSink{pool: pool, table: table}, nil
}

func (p *PostgresSink) Publish(ctx context.Context, rows []export.EdgeRow) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	createStmt := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            u BIGINT NOT NULL,
            v BIGINT NOT NULL,
            traffic_volume DOUBLE PRECISION NOT NULL,
            average_speed DOUBLE PRECISION NOT NULL,
            congestion_level DOUBLE PRECISION NOT NULL,
            PRIMARY KEY (u, v)
        )`, p.table)
	if _, err := tx.Exec(ctx, createStmt); err != nil {
		return fmt.Errorf("create edge table: %w", err)
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE %s", p.table)); err != nil {
		return fmt.Errorf("truncate edge table: %w", err)
	}

	insertStmt := fmt.Sprintf(`
        INSERT INTO %s (u, v, traffic_volume, average_speed, congestion_level)
        VALUES ($1, $2, $3, $4, $5)`, p.table)
	for _, row := range rows {
		if _, err := tx.Exec(ctx, insertStmt,
			row.U, row.V, row.TrafficVolume, row.AverageSpeed, row.CongestionLevel,
		); err != nil {
			return fmt.Errorf("insert edge (%d, %d): %w", row.U, row.V, err)
		}
	}

	return tx.Commit(ctx)
}

func (p *PostgresSink) Close() error {
	p.pool.Close()
	return nil
}
