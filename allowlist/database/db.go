package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/ellavondegurechaff/allowlist/allowlist/database/models"
	"github.com/ellavondegurechaff/allowlist/allowlist/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultMaxRetries = 6
	pingTimeout       = 5 * time.Second
)

// Config accepts either a full URL or the individual connection fields.
type Config struct {
	URL          string `toml:"url" env:"DATABASE_URL"`
	Host         string `toml:"host" env:"DB_HOST"`
	Port         int    `toml:"port" env:"DB_PORT"`
	User         string `toml:"user" env:"DB_USER"`
	Password     string `toml:"password" env:"DB_PASSWORD"`
	Database     string `toml:"database" env:"DB_NAME"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	// Seconds; zero keeps connections until the pool closes them.
	MaxLifetime int `toml:"max_lifetime"`
}

// DSN returns the configured URL, or builds one from the individual fields.
func (c Config) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

// New opens the pool and retries the first ping with exponential backoff, so the bot
// can start alongside a database that is still coming up.
func New(ctx context.Context, cfg Config) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	connect := func() (*pgxpool.Pool, error) {
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig.Copy())
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("failed to create connection pool: %w", err))
		}
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err = pool.Ping(pingCtx); err != nil {
			pool.Close()
			return nil, err
		}
		return pool, nil
	}

	pool, err := backoff.Retry(ctx, connect,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(defaultMaxRetries),
		backoff.WithNotify(func(err error, next time.Duration) {
			slog.Warn("Database not reachable, retrying",
				slog.String("type", "db"),
				slog.Any("error", err),
				slog.Duration("retry_in", next),
			)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("database unreachable after %d attempts: %w", defaultMaxRetries, err)
	}

	return &DB{pool: pool, bunDB: newBunDB(cfg.DSN())}, nil
}

func newBunDB(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	db.AddQueryHook(queryLogger{})
	return db
}

// queryLogger reports every bun query through the db log type.
type queryLogger struct{}

func (queryLogger) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (queryLogger) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	err := event.Err
	if err == sql.ErrNoRows {
		err = nil
	}
	logger.LogQuery(event.Query, time.Since(event.StartTime), err)
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func (db *DB) ExecWithLog(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	start := time.Now()
	result, err := db.pool.Exec(ctx, sql, args...)
	logger.LogQuery(sql, time.Since(start), err)
	return result, err
}

func (db *DB) Close() {
	if db.bunDB != nil {
		db.bunDB.Close()
	}
	if db.pool != nil {
		db.pool.Close()
	}
}

var schemaIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_applications_applicant_created ON applications(applicant_id, created_at DESC);",
	"CREATE INDEX IF NOT EXISTS idx_applications_pending ON applications(created_at) WHERE status = 'pending';",
}

// InitializeSchema creates the tables and indexes. Safe to run on every start.
func (db *DB) InitializeSchema(ctx context.Context) error {
	tables := []any{
		(*models.Application)(nil),
		(*models.CooldownExemption)(nil),
	}

	for _, model := range tables {
		if _, err := db.bunDB.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	if err := db.MigrateSchema(ctx); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	for _, idx := range schemaIndexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// legacyRenames maps column names used by databases created by the earlier bot to the
// current ones. Each rename only runs while the old column exists and the new one does not.
var legacyRenames = []struct{ table, from, to string }{
	{"applications", "user_id", "applicant_id"},
	{"applications", "user_name", "applicant_name"},
	{"applications", "moderator_id", "reviewer_id"},
	{"applications", "mod_reason", "review_reason"},
	{"applications", "last_application", "last_application_at"},
	{"cooldown_exempt", "user_id", "applicant_id"},
}

func renameColumn(table, from, to string) string {
	return fmt.Sprintf(`DO $$ BEGIN `+
		`IF EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = '%[1]s' AND column_name = '%[2]s') `+
		`AND NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = '%[1]s' AND column_name = '%[3]s') `+
		`THEN ALTER TABLE %[1]s RENAME COLUMN %[2]s TO %[3]s; END IF; END $$`, table, from, to)
}

// Statements run after the renames. The earlier bot stored Discord IDs as BIGINT and
// left last_application NULL on some rows.
var schemaUpgrades = []string{
	`ALTER TABLE applications ALTER COLUMN applicant_id TYPE VARCHAR USING applicant_id::text`,
	`ALTER TABLE applications ALTER COLUMN reviewer_id TYPE VARCHAR USING reviewer_id::text`,
	`ALTER TABLE applications ALTER COLUMN message_id TYPE VARCHAR USING message_id::text`,
	`ALTER TABLE cooldown_exempt ALTER COLUMN applicant_id TYPE VARCHAR USING applicant_id::text`,
	`ALTER TABLE applications ADD COLUMN IF NOT EXISTS applicant_name VARCHAR NOT NULL DEFAULT ''`,
	`ALTER TABLE applications ADD COLUMN IF NOT EXISTS character_story TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE applications ADD COLUMN IF NOT EXISTS reviewer_id VARCHAR`,
	`ALTER TABLE applications ADD COLUMN IF NOT EXISTS review_reason TEXT`,
	`ALTER TABLE applications ADD COLUMN IF NOT EXISTS channel_id VARCHAR`,
	`ALTER TABLE applications ADD COLUMN IF NOT EXISTS created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp`,
	`ALTER TABLE applications ADD COLUMN IF NOT EXISTS updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp`,
	`ALTER TABLE applications ADD COLUMN IF NOT EXISTS last_application_at TIMESTAMPTZ`,
	`UPDATE applications SET last_application_at = created_at WHERE last_application_at IS NULL`,
	`UPDATE applications SET status = 'pending' WHERE status IS NULL`,
	`ALTER TABLE applications DROP CONSTRAINT IF EXISTS applications_status_check`,
	`ALTER TABLE applications ADD CONSTRAINT applications_status_check CHECK (status IN ('pending', 'approved', 'declined'))`,
	`ALTER TABLE cooldown_exempt ADD COLUMN IF NOT EXISTS granted_by VARCHAR`,
	`ALTER TABLE cooldown_exempt ADD COLUMN IF NOT EXISTS created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp`,
}

func schemaMigrations() []string {
	stmts := make([]string, 0, len(legacyRenames)+len(schemaUpgrades))
	for _, r := range legacyRenames {
		stmts = append(stmts, renameColumn(r.table, r.from, r.to))
	}
	return append(stmts, schemaUpgrades...)
}

// MigrateSchema upgrades existing tables in place, including ones created by the
// earlier bot. Every statement is safe to repeat.
func (db *DB) MigrateSchema(ctx context.Context) error {
	for _, stmt := range schemaMigrations() {
		if _, err := db.bunDB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply %q: %w", stmt, err)
		}
	}
	return nil
}
