package baryonres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// DBConfig holds connection settings for a SQL-backed data set
type DBConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	QueryTimeout    time.Duration `yaml:"query_timeout"`
}

// DefaultDBConfig returns conservative pool settings; the data set is read once
func DefaultDBConfig() DBConfig {
	return DBConfig{
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Minute,
		QueryTimeout:    10 * time.Second,
	}
}

// OpenDB opens and pings a PostgreSQL database
func OpenDB(ctx context.Context, cfg DBConfig) (*sqlx.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	db, err := sqlx.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

const selectResonances = `
	SELECT name, mass, width,
	       COALESCE(bw_norm, 0)    AS bw_norm,
	       COALESCE(res_index, -1) AS res_index
	FROM baryon_resonances
	ORDER BY name`

// LoadSQLTable reads the baryon_resonances table once into memory. The
// evaluator never queries the database during an evaluation.
func LoadSQLTable(ctx context.Context, db *sqlx.DB, timeout time.Duration) (*Table, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var rows []Record
	if err := db.SelectContext(ctx, &rows, selectResonances); err != nil {
		return nil, fmt.Errorf("failed to load baryon resonances: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("baryon_resonances table is empty")
	}

	for i := range rows {
		if rows[i].Index < 0 {
			res, err := ParseResonance(rows[i].Name)
			if err != nil {
				return nil, err
			}
			rows[i].Index = res.OscillatorQuanta()
		}
	}
	return NewTable(rows)
}
