package domain

import (
	"context"
)

// ToolInvoker drives an external archive tool. A deployment can satisfy it
// with process invocation or a linked decoding library without changing the
// orchestration logic.
type ToolInvoker interface {
	// Test reports whether the tool recognizes the file; nil means yes.
	Test(path string) error
	// List returns the relative paths the archive contains.
	List(path string) ([]string, error)
	// Extract unpacks the archive into dest. formatHint disambiguates
	// formats the tool cannot auto-detect reliably; empty means auto.
	Extract(path, dest, formatHint string) error
}

type Extractor interface {
	Extract(req ExtractionRequest) (ExtractionResult, error)
	ListInstallerEntries(path string) ([]string, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, dl Download) FetchResult
}

type Cache interface {
	Has(url string) bool
	GetPath(url string) string
	Store(url, src string) (string, error)
	Size() (int64, error)
	Clear() error
}

type HistoryStore interface {
	Add(rec *ExtractionRecord) error
	List(limit int) ([]*ExtractionRecord, error)
	Close() error
}
