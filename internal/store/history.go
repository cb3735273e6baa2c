// Package store provides a SQLite-backed history of fetched exchange rates.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/billtracker/internal/rates"

	_ "modernc.org/sqlite" // register sqlite driver
)

// History records every successful rate fetch.
type History struct {
	db *sql.DB
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// Point is one recorded rate of a currency.
type Point struct {
	FetchedAt time.Time
	Rate      float64
	Source    string
}

// SaveSnapshot stores a snapshot and all of its rates.
func (h *History) SaveSnapshot(s rates.Snapshot) error {
	if len(s.Table) == 0 {
		return errors.New("store: empty snapshot")
	}

	tx, err := h.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	fetched := s.FetchedAt
	if fetched.IsZero() {
		fetched = time.Now()
	}
	providerTime := ""
	if !s.Timestamp.IsZero() {
		providerTime = s.Timestamp.UTC().Format(time.RFC3339)
	}

	res, err := tx.Exec(`INSERT INTO snapshots (fetched_at, provider_time, base_code, source)
		VALUES (?, ?, ?, ?)`,
		fetched.UTC().Format(time.RFC3339), providerTime, s.Base, s.Source,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO snapshot_rates (snapshot_id, code, rate) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for code, rate := range s.Table {
		if _, err := stmt.Exec(id, code, rate); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Latest returns the most recently stored snapshot.
func (h *History) Latest() (rates.Snapshot, bool, error) {
	var (
		id                       int64
		fetchedStr, base, source string
		providerStr              sql.NullString
	)
	err := h.db.QueryRow(`SELECT id, fetched_at, provider_time, base_code, source
		FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&id, &fetchedStr, &providerStr, &base, &source)
	if errors.Is(err, sql.ErrNoRows) {
		return rates.Snapshot{}, false, nil
	}
	if err != nil {
		return rates.Snapshot{}, false, err
	}

	s := rates.Snapshot{Base: base, Source: source, Table: rates.Table{}}
	s.FetchedAt, _ = time.Parse(time.RFC3339, fetchedStr)
	if providerStr.Valid && providerStr.String != "" {
		s.Timestamp, _ = time.Parse(time.RFC3339, providerStr.String)
	}

	rows, err := h.db.Query("SELECT code, rate FROM snapshot_rates WHERE snapshot_id = ?", id)
	if err != nil {
		return rates.Snapshot{}, false, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var code string
		var rate float64
		if err := rows.Scan(&code, &rate); err != nil {
			return rates.Snapshot{}, false, err
		}
		s.Table[code] = rate
	}
	return s, true, rows.Err()
}

// RateHistory returns up to limit recorded rates for code, newest first.
func (h *History) RateHistory(code string, limit int) ([]Point, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := h.db.Query(`SELECT s.fetched_at, r.rate, s.source
		FROM snapshot_rates r JOIN snapshots s ON s.id = r.snapshot_id
		WHERE r.code = ?
		ORDER BY s.id DESC
		LIMIT ?`, strings.ToUpper(strings.TrimSpace(code)), limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Point
	for rows.Next() {
		var p Point
		var fetchedStr string
		if err := rows.Scan(&fetchedStr, &p.Rate, &p.Source); err != nil {
			return nil, err
		}
		p.FetchedAt, _ = time.Parse(time.RFC3339, fetchedStr)
		out = append(out, p)
	}
	return out, rows.Err()
}

// SnapshotCount returns the number of stored snapshots.
func (h *History) SnapshotCount() (int, error) {
	var count int
	err := h.db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count)
	return count, err
}

// Prune keeps only the newest keep snapshots.
func (h *History) Prune(keep int) error {
	_, err := h.db.Exec(`DELETE FROM snapshots WHERE id NOT IN
		(SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)`, keep)
	return err
}
