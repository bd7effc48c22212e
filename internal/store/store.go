// Package store keeps privacy-conscious visitor metrics and analytics
// events in SQLite.
package store

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/LocNguyenSGU/portfolio/internal/analytics"
)

// Retention is how long visitor rows are kept.
const Retention = 365 * 24 * time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	ts INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS visitors_ts ON visitors (ts);
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	category TEXT NOT NULL,
	name TEXT NOT NULL,
	visitor_id TEXT,
	props TEXT,
	ts INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS events_name_ts ON events (name, ts);
`

// Store is the SQLite-backed metrics store. It implements analytics.Sink.
type Store struct {
	db     *sql.DB
	salt   string
	logger *zap.Logger
	now    func() time.Time
}

var _ analytics.Sink = (*Store)(nil)

// VisitorMetric is one recorded page view.
type VisitorMetric struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// VisitorStats summarizes the visitors table.
type VisitorStats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
}

// EventCount is the number of events recorded under one name.
type EventCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Open opens (creating if needed) the database at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// One connection keeps :memory: databases shared and serializes writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	salt, err := randomHex(32)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: salt: %w", err)
	}

	logger.Info("visitor tracking initialized", zap.String("path", path))
	return &Store{db: db, salt: salt, logger: logger, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashIP returns a salted, truncated SHA-256 of ip. Stable for the lifetime
// of the process.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// RecordVisit stores a page view with the IP hashed.
func (s *Store) RecordVisit(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, ts) VALUES (?, ?, ?, ?)`,
		s.HashIP(ip), userAgent, path, s.now().Unix())
	if err != nil {
		return fmt.Errorf("store: record visit: %w", err)
	}
	return nil
}

// CleanupOldVisitors deletes visitor rows older than Retention.
func (s *Store) CleanupOldVisitors(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-Retention).Unix()
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE ts < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("store: cleanup visitors: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		s.logger.Info("privacy cleanup removed old visitor records", zap.Int64("rows", n))
	}
	return n, nil
}

// VisitorStats aggregates the visitors table.
func (s *Store) VisitorStats(ctx context.Context, recent int) (*VisitorStats, error) {
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Unix()
	weekAgo := now.Add(-7 * 24 * time.Hour).Unix()

	stats := &VisitorStats{}
	counts := []struct {
		query string
		args  []any
		dst   *int64
	}{
		{`SELECT COUNT(*) FROM visitors`, nil, &stats.TotalVisitors},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visitors WHERE ts >= ?`, []any{startOfDay}, &stats.VisitorsToday},
		{`SELECT COUNT(*) FROM visitors WHERE ts >= ?`, []any{weekAgo}, &stats.VisitorsThisWeek},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("store: visitor stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), ts
		 FROM visitors ORDER BY ts DESC, id DESC LIMIT ?`, recent)
	if err != nil {
		return nil, fmt.Errorf("store: recent visitors: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var v VisitorMetric
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("store: scan visitor: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		stats.RecentVisitors = append(stats.RecentVisitors, v)
	}
	return stats, rows.Err()
}

// Emit stores an analytics event.
func (s *Store) Emit(ctx context.Context, e analytics.Event) error {
	props, err := json.Marshal(e.Props)
	if err != nil {
		return fmt.Errorf("store: encode props: %w", err)
	}
	at := e.At
	if at.IsZero() {
		at = s.now()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO events (category, name, visitor_id, props, ts) VALUES (?, ?, ?, ?, ?)`,
		e.Category, e.Name, e.VisitorID, string(props), at.Unix())
	if err != nil {
		return fmt.Errorf("store: insert event: %w", err)
	}
	return nil
}

// TopEvents counts events recorded since the given time, most frequent first.
func (s *Store) TopEvents(ctx context.Context, since time.Time, limit int) ([]EventCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, COUNT(*) AS n FROM events WHERE ts >= ?
		 GROUP BY name ORDER BY n DESC, name ASC LIMIT ?`, since.Unix(), limit)
	if err != nil {
		return nil, fmt.Errorf("store: top events: %w", err)
	}
	defer rows.Close()

	var out []EventCount
	for rows.Next() {
		var ec EventCount
		if err := rows.Scan(&ec.Name, &ec.Count); err != nil {
			return nil, fmt.Errorf("store: scan event count: %w", err)
		}
		out = append(out, ec)
	}
	return out, rows.Err()
}
