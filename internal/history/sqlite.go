package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/softlock/unvault/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS extractions (
    id           TEXT PRIMARY KEY,
    source       TEXT NOT NULL,
    destination  TEXT NOT NULL,
    kind         TEXT NOT NULL DEFAULT '',
    duration_ms  INTEGER NOT NULL DEFAULT 0,
    extracted_at TEXT NOT NULL
);
`

// SQLiteHistory records completed extractions and mirrors them to a JSON
// file for external consumers.
type SQLiteHistory struct {
	mu         sync.RWMutex
	db         *sql.DB
	exportPath string
}

func NewSQLite(dbPath, exportPath string) (*SQLiteHistory, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteHistory{db: db, exportPath: exportPath}, nil
}

func (h *SQLiteHistory) Add(rec *domain.ExtractionRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.db.Exec(`
		INSERT OR REPLACE INTO extractions
		(id, source, destination, kind, duration_ms, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Source, rec.Destination, rec.Kind,
		rec.Duration.Milliseconds(), rec.ExtractedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	return h.exportJSON()
}

func (h *SQLiteHistory) List(limit int) ([]*domain.ExtractionRecord, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.list(limit)
}

func (h *SQLiteHistory) list(limit int) ([]*domain.ExtractionRecord, error) {
	query := `
		SELECT id, source, destination, kind, duration_ms, extracted_at
		FROM extractions ORDER BY extracted_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.ExtractionRecord
	for rows.Next() {
		var rec domain.ExtractionRecord
		var durationMs int64
		var extractedAt string

		if err := rows.Scan(&rec.ID, &rec.Source, &rec.Destination, &rec.Kind,
			&durationMs, &extractedAt); err != nil {
			return nil, err
		}

		rec.Duration = time.Duration(durationMs) * time.Millisecond
		rec.ExtractedAt, _ = time.Parse(time.RFC3339, extractedAt)
		records = append(records, &rec)
	}

	return records, rows.Err()
}

func (h *SQLiteHistory) exportJSON() error {
	if h.exportPath == "" {
		return nil
	}

	records, err := h.list(0)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(domain.History{Extractions: records}, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(h.exportPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(h.exportPath, data, 0644)
}

func (h *SQLiteHistory) Close() error {
	return h.db.Close()
}
