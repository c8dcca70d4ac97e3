package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/snowflakedb/gosnowflake"
)

// SnowflakeConfig holds connection parameters for a Snowflake account.
type SnowflakeConfig struct {
	Account   string `yaml:"account"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Warehouse string `yaml:"warehouse"`
	Database  string `yaml:"database"`
	Schema    string `yaml:"schema"`
	Role      string `yaml:"role"`

	// QueryTimeout bounds individual statements. Zero means no bound beyond
	// the caller's context.
	QueryTimeout time.Duration `yaml:"queryTimeout"`
}

// SnowflakeExecutor runs statements against Snowflake through database/sql.
type SnowflakeExecutor struct {
	db      *sql.DB
	timeout time.Duration
}

// NewSnowflakeExecutor opens a connection pool for the given account. The pool
// is lazy; Ping verifies connectivity.
func NewSnowflakeExecutor(cfg SnowflakeConfig) (*SnowflakeExecutor, error) {
	dsn, err := gosnowflake.DSN(&gosnowflake.Config{
		Account:   cfg.Account,
		User:      cfg.User,
		Password:  cfg.Password,
		Warehouse: cfg.Warehouse,
		Database:  cfg.Database,
		Schema:    cfg.Schema,
		Role:      cfg.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build snowflake DSN: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open snowflake connection: %w", err)
	}

	return &SnowflakeExecutor{db: db, timeout: cfg.QueryTimeout}, nil
}

// Ping verifies the connection is usable.
func (e *SnowflakeExecutor) Ping(ctx context.Context) error {
	return e.db.PingContext(ctx)
}

// Execute runs one statement and materializes the full result set.
func (e *SnowflakeExecutor) Execute(ctx context.Context, query string) (*Result, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("error reading result columns: %w", err)
	}

	result := &Result{Columns: columns}

	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("error scanning result row: %w", err)
		}
		for i, v := range values {
			// Drivers hand back []byte for text columns; decode eagerly so
			// downstream consumers see plain strings.
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating result rows: %w", err)
	}

	return result, nil
}

// Close releases the connection pool.
func (e *SnowflakeExecutor) Close() error {
	return e.db.Close()
}
