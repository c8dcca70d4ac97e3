// Package session holds the caller-owned state around the resolver core: the
// active schema context, the executor, and TTL caches for discovery snapshots
// and query results. The core itself stays stateless; everything cached lives
// here.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldline/fieldline/internal/discovery"
	"github.com/fieldline/fieldline/internal/history"
	"github.com/fieldline/fieldline/internal/warehouse"
	"github.com/fieldline/fieldline/pkg/logger"
)

// QueryRecorder receives an entry for every statement the session actually
// sends to the warehouse. *history.Store satisfies it.
type QueryRecorder interface {
	Add(e history.Entry) error
}

// ErrStatementNotAllowed is returned for statements that are not read-only.
var ErrStatementNotAllowed = errors.New("only read-only statements are allowed")

// ErrStaleContext is returned when a discovery completed for a context the
// session has since moved away from. The stale snapshot is discarded.
var ErrStaleContext = errors.New("schema context changed during discovery")

// Config sizes the session caches.
type Config struct {
	SnapshotTTL       time.Duration `yaml:"snapshot_ttl"`
	SnapshotCacheSize int           `yaml:"snapshot_cache_size"`
	ResultTTL         time.Duration `yaml:"result_ttl"`
	ResultCacheSize   int           `yaml:"result_cache_size"`
	MaxRows           int           `yaml:"max_rows"`
}

// DefaultConfig mirrors the warehouse result-cache defaults: five minutes,
// a thousand queries.
func DefaultConfig() Config {
	return Config{
		SnapshotTTL:       10 * time.Minute,
		SnapshotCacheSize: 100,
		ResultTTL:         5 * time.Minute,
		ResultCacheSize:   1000,
		MaxRows:           10000,
	}
}

// Session is one caller's working state. All mutable schema context lives
// here, never in the resolver core; two sessions can never interfere.
type Session struct {
	ID string

	exec       warehouse.Executor
	log        *logger.Logger
	discoverer *discovery.Discoverer
	cfg        Config

	database string
	schema   string
	table    string

	snapshots *TTLCache[string, *discovery.Snapshot]
	results   *TTLCache[string, []warehouse.Record]

	recorder QueryRecorder
}

// New creates a session over an executor.
func New(exec warehouse.Executor, log *logger.Logger, cfg Config) *Session {
	return &Session{
		ID:         uuid.NewString(),
		exec:       exec,
		log:        log,
		discoverer: discovery.NewDiscoverer(exec, log),
		cfg:        cfg,
		snapshots:  NewTTLCache[string, *discovery.Snapshot](cfg.SnapshotCacheSize, cfg.SnapshotTTL),
		results:    NewTTLCache[string, []warehouse.Record](cfg.ResultCacheSize, cfg.ResultTTL),
	}
}

// SetRecorder attaches a recorder for the session's executed statements.
// Cache hits and guard-rejected statements never reach the warehouse and are
// not recorded.
func (s *Session) SetRecorder(r QueryRecorder) {
	s.recorder = r
}

// SetContext switches the active (database, schema, table) triple. Cached
// snapshots for other contexts stay valid; they are keyed by context.
func (s *Session) SetContext(database, schema, table string) {
	s.database, s.schema, s.table = database, schema, table
}

// Context returns the active schema context.
func (s *Session) Context() (database, schema, table string) {
	return s.database, s.schema, s.table
}

// TableRef returns the fully qualified reference for the active table.
func (s *Session) TableRef() string {
	return warehouse.TableRef(s.database, s.schema, s.table)
}

func snapshotKey(database, schema, table string) string {
	return strings.ToUpper(database) + "|" + strings.ToUpper(schema) + "|" + strings.ToUpper(table)
}

// Snapshot returns a discovery snapshot for the active context, discovering
// on cache miss. A snapshot taken for a context the session left mid-call is
// discarded and ErrStaleContext returned.
func (s *Session) Snapshot(ctx context.Context) (*discovery.Snapshot, error) {
	database, schema, table := s.Context()

	key := snapshotKey(database, schema, table)
	if snapshot, ok := s.snapshots.Get(key); ok {
		return snapshot, nil
	}

	snapshot, err := s.discoverer.Discover(ctx, database, schema, table)
	if err != nil {
		// The empty snapshot is still usable downstream but not worth
		// caching; the next call retries.
		return snapshot, err
	}

	if !snapshot.SameContext(s.database, s.schema, s.table) {
		return nil, ErrStaleContext
	}

	if len(snapshot.Columns) > 0 {
		s.snapshots.Set(key, snapshot)
	}
	return snapshot, nil
}

// InvalidateSnapshot drops the cached snapshot for the active context.
func (s *Session) InvalidateSnapshot() {
	s.snapshots.Delete(snapshotKey(s.Context()))
}

func (s *Session) resultKey(sql string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(sql), " "))
	sum := sha256.Sum256([]byte(normalized + "|" + s.database + "|" + s.schema))
	return hex.EncodeToString(sum[:])
}

// Query executes a read-only statement through the executor with result
// caching. Multi-statement input and anything that is not select-like is
// rejected before reaching the warehouse.
func (s *Session) Query(ctx context.Context, sql string) ([]warehouse.Record, error) {
	if warehouse.CountStatements(sql) > 1 {
		return nil, fmt.Errorf("%w: multiple statements", ErrStatementNotAllowed)
	}
	if !warehouse.IsQueryAllowed(sql) {
		return nil, ErrStatementNotAllowed
	}

	key := s.resultKey(sql)
	if records, ok := s.results.Get(key); ok {
		if s.log != nil {
			s.log.Debugf("result cache hit for session %s", s.ID)
		}
		return records, nil
	}

	startedAt := time.Now().UTC()
	result, err := s.exec.Execute(ctx, sql)
	if err != nil {
		s.record(sql, startedAt, 0, err)
		return nil, warehouse.NewQueryError("session query", err)
	}
	s.record(sql, startedAt, int64(result.RowCount()), nil)

	result = warehouse.CapRows(result, s.cfg.MaxRows)
	records, err := warehouse.NormalizeRows(result)
	if err != nil {
		return nil, warehouse.NewQueryError("session query", err)
	}

	s.results.Set(key, records)
	return records, nil
}

// record writes one execution outcome to the attached recorder. Recording is
// best-effort: an audit failure never fails the query.
func (s *Session) record(sql string, startedAt time.Time, rowCount int64, execErr error) {
	if s.recorder == nil {
		return
	}

	completedAt := time.Now().UTC()
	entry := history.Entry{
		QueryID:     uuid.NewString(),
		SQL:         sql,
		Database:    s.database,
		Schema:      s.schema,
		Status:      history.StatusSuccess,
		RowCount:    rowCount,
		StartedAt:   startedAt,
		CompletedAt: completedAt,
		DurationMS:  completedAt.Sub(startedAt).Milliseconds(),
	}
	if execErr != nil {
		entry.Status = history.StatusFailed
		entry.ErrorMessage = execErr.Error()
	}

	if err := s.recorder.Add(entry); err != nil && s.log != nil {
		s.log.Warnf("query history record failed: %v", err)
	}
}

// ClearCaches empties both session caches.
func (s *Session) ClearCaches() {
	s.snapshots.Clear()
	s.results.Clear()
}

// CacheStats reports both caches' counters.
func (s *Session) CacheStats() map[string]CacheStats {
	return map[string]CacheStats{
		"snapshots": s.snapshots.Stats(),
		"results":   s.results.Stats(),
	}
}
