package manager

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/softlock/unvault/internal/domain"
	"github.com/softlock/unvault/internal/extract"
)

// Manager wires the download, cache, extraction and history layers into one
// operation: hand it a local path or a URL and a destination, get back a
// record of what happened.
type Manager struct {
	fetcher   domain.Fetcher
	cache     domain.Cache
	extractor domain.Extractor
	history   domain.HistoryStore
}

func New(
	fetcher domain.Fetcher,
	cache domain.Cache,
	extractor domain.Extractor,
	history domain.HistoryStore,
) *Manager {

	return &Manager{
		fetcher:   fetcher,
		cache:     cache,
		extractor: extractor,
		history:   history,
	}
}

type ExtractOptions struct {
	MergeSingle bool
	Format      string
	SHA256      string
}

func (m *Manager) Extract(ctx context.Context, source, dest string, opts ExtractOptions) (*domain.ExtractionRecord, error) {
	archivePath := source
	if isURL(source) {
		path, err := m.obtain(ctx, source, opts.SHA256)
		if err != nil {
			return nil, err
		}
		archivePath = path
	}

	start := time.Now()
	result, err := m.extractor.Extract(domain.ExtractionRequest{
		Source:      archivePath,
		Destination: dest,
		MergeSingle: opts.MergeSingle,
		Format:      opts.Format,
	})
	if err != nil {
		return nil, err
	}

	kind := opts.Format
	if kind == "" {
		kind = string(extract.GuessKind(result.Source))
	}

	rec := &domain.ExtractionRecord{
		ID:          uuid.NewString(),
		Source:      result.Source,
		Destination: result.Destination,
		Kind:        kind,
		Duration:    time.Since(start),
		ExtractedAt: time.Now(),
	}
	if err := m.history.Add(rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (m *Manager) ListInstallerEntries(path string) ([]string, error) {
	return m.extractor.ListInstallerEntries(path)
}

func (m *Manager) History(limit int) ([]*domain.ExtractionRecord, error) {
	return m.history.List(limit)
}

// obtain returns a local path for a remote archive, downloading it unless
// the cache already holds it.
func (m *Manager) obtain(ctx context.Context, url, sha256 string) (string, error) {
	if m.cache.Has(url) {
		return m.cache.GetPath(url), nil
	}

	result := m.fetcher.Fetch(ctx, domain.Download{URL: url, SHA256: sha256})
	if result.Error != nil {
		return "", result.Error
	}

	return m.cache.Store(url, result.Path)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
