package domain

import "time"

// ExtractionRequest describes one archive to unpack into a destination
// directory. Source must point at an existing file; it is resolved to an
// absolute path before dispatch.
type ExtractionRequest struct {
	Source      string
	Destination string
	MergeSingle bool
	Format      string // explicit extractor override, empty means autodetect
}

// ExtractionResult echoes back what was extracted and where. It does not
// enumerate the extracted entries.
type ExtractionResult struct {
	Source      string
	Destination string
}

// ExtractionRecord is one row of the extraction history.
type ExtractionRecord struct {
	ID          string        `json:"id"`
	Source      string        `json:"source"`
	Destination string        `json:"destination"`
	Kind        string        `json:"kind"`
	Duration    time.Duration `json:"duration"`
	ExtractedAt time.Time     `json:"extracted_at"`
}

// History wraps the extraction records for JSON export.
type History struct {
	Extractions []*ExtractionRecord `json:"extractions"`
}

// Download identifies a remote archive to fetch before extraction.
type Download struct {
	URL    string
	SHA256 string
}

type FetchResult struct {
	URL   string
	Path  string
	Error error
}
