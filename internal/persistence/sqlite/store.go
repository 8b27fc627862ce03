package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cenkalti/backoff/v5"

	"github.com/magearena/server/internal/persistence"
	"github.com/magearena/server/internal/persistence/catalog"
	"github.com/magearena/server/internal/persistence/sqlite/migrations"
	apperrors "github.com/magearena/server/internal/platform/errors"
	"github.com/magearena/server/internal/platform/storage/sqlitemigrate"
	"github.com/magearena/server/internal/platform/timeouts"
	_ "modernc.org/sqlite"
)

const defaultPoolSize = 8

// Store implements the persistence contracts over SQLite.
//
// A single database file backs characters, presence, matches, and
// statistics so every server shard shares one consistent view. Row-level
// atomicity in the store, not in-process locking, is the point of mutual
// exclusion for concurrent upserts.
type Store struct {
	sqlDB   *sql.DB
	queries map[string]catalog.Template
}

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	poolSize int
}

// WithPoolSize bounds the connection pool. Acquisition past the bound waits
// up to timeouts.PoolAcquire and then fails with ErrPoolExhausted.
func WithPoolSize(n int) Option {
	return func(o *openOptions) {
		if n > 0 {
			o.poolSize = n
		}
	}
}

// queryNames is every catalog entry the store executes. Resolved eagerly in
// Open so a misconfigured catalog is fatal at startup, not at first use.
var queryNames = []string{
	"CharacterFindBySlot",
	"CharacterFindByName",
	"CharacterFindByNameAndAccount",
	"CharacterTopByClass",
	"CharacterSaveNew",
	"CharacterSaveExisting",
	"CharacterDeleteBySlot",
	"OnlineAccountSetOnline",
	"OnlineAccountSetOffline",
	"OnlineAccountSetAllOffline",
	"OnlineCharacterSetOnline",
	"OnlineCharacterSetOffline",
	"OnlineCharacterSetAllOffline",
	"StatisticsOverallAccumulate",
	"StatisticsWeeklyAccumulate",
	"StatisticsOverallGet",
	"StatisticsWeeklyGet",
	"StatisticsOverallDelete",
	"StatisticsWeeklyDelete",
	"MatchInsert",
	"BannedSerialExists",
	"ServerSettingsGetExpMultiplier",
	"ServerSettingsSetExpMultiplier",
}

// Open opens the arena store, applies bundled migrations, and resolves the
// statement catalog. The initial connection is retried with bounded
// exponential backoff; when the budget is spent Open fails with
// ErrStoreUnavailable instead of blocking indefinitely.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	options := openOptions{poolSize: defaultPoolSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(options.poolSize)
	sqlDB.SetMaxIdleConns(options.poolSize)

	ping := func() (struct{}, error) {
		pingCtx, cancel := context.WithTimeout(context.Background(), timeouts.StoreRequest)
		defer cancel()
		return struct{}{}, sqlDB.PingContext(pingCtx)
	}
	if _, err := backoff.Retry(context.Background(), ping,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(timeouts.StoreConnect),
	); err != nil {
		_ = sqlDB.Close()
		return nil, apperrors.Wrap(apperrors.CodeStoreUnavailable, "ping sqlite db", err)
	}

	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	queryCatalog, err := catalog.Load()
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("load query catalog: %w", err)
	}
	queries := make(map[string]catalog.Template, len(queryNames))
	for _, name := range queryNames {
		tpl, err := queryCatalog.Get(name)
		if err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("resolve query catalog: %w", err)
		}
		queries[name] = tpl
	}

	return &Store{sqlDB: sqlDB, queries: queries}, nil
}

// Close releases the underlying database.
//
// Close is nil-safe so callers can defer it in all startup paths.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// template returns a startup-resolved catalog entry.
func (s *Store) template(name string) catalog.Template {
	tpl, ok := s.queries[name]
	if !ok {
		// Open resolves every name in queryNames; reaching here means a
		// store method asked for a query it never declared.
		panic(apperrors.New(apperrors.CodeUnknownQuery, "query "+name+" was not resolved at startup"))
	}
	return tpl
}

// bind orders values according to the template's parameter list. Every
// declared parameter must be supplied and nothing extra; the mismatch is a
// programming error surfaced immediately.
func bind(tpl catalog.Template, values map[string]any) ([]any, error) {
	if len(values) != len(tpl.Params) {
		return nil, fmt.Errorf("query %s expects %d parameters, got %d", tpl.Name, len(tpl.Params), len(values))
	}
	args := make([]any, 0, len(tpl.Params))
	for _, param := range tpl.Params {
		value, ok := values[param]
		if !ok {
			return nil, fmt.Errorf("query %s is missing parameter %s", tpl.Name, param)
		}
		args = append(args, sql.Named(param, value))
	}
	return args, nil
}

// withConn runs fn on a pooled connection with a bounded per-statement
// timeout, releasing the connection on every exit path. database/sql
// discards connections that report transport failure instead of returning
// them to the pool, so a known-bad connection is never handed out twice.
func (s *Store) withConn(ctx context.Context, op string, fn func(ctx context.Context, conn *sql.Conn) error) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	acquireCtx, cancelAcquire := context.WithTimeout(ctx, timeouts.PoolAcquire)
	conn, err := s.sqlDB.Conn(acquireCtx)
	cancelAcquire()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.Wrap(apperrors.CodePoolExhausted, op+": acquire connection", err)
		}
		return apperrors.Wrap(apperrors.CodeStoreUnavailable, op+": acquire connection", err)
	}
	defer func() { _ = conn.Close() }()

	opCtx, cancelOp := context.WithTimeout(ctx, timeouts.StoreRequest)
	defer cancelOp()

	if err := fn(opCtx, conn); err != nil {
		return classify(op, err)
	}
	return nil
}

// classify maps driver failures to the error taxonomy before they cross the
// store boundary. Domain errors pass through untouched; a timed-out call is
// reported unavailable, never as "probably succeeded".
func classify(op string, err error) error {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || isTransientDriverError(err) {
		return apperrors.Wrap(apperrors.CodeStoreUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isTransientDriverError recognizes SQLite contention that a caller should
// retry with backoff.
func isTransientDriverError(err error) bool {
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "database is locked") ||
		strings.Contains(value, "database table is locked") ||
		strings.Contains(value, "busy")
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure on
// the given column path (for example "characters.name").
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}

var _ persistence.CharacterStore = (*Store)(nil)
var _ persistence.PresenceStore = (*Store)(nil)
var _ persistence.StatisticsStore = (*Store)(nil)
var _ persistence.MatchStore = (*Store)(nil)
var _ persistence.AccountStore = (*Store)(nil)
var _ persistence.SettingsStore = (*Store)(nil)
