package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/softlock/unvault/internal/domain"
)

// HTTPFetcher downloads archives over HTTP into a working directory before
// they enter the extraction pipeline.
type HTTPFetcher struct {
	client    *http.Client
	outputDir string
}

func New(outputDir string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		outputDir: outputDir,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, dl domain.Download) domain.FetchResult {
	filename := path.Base(dl.URL)
	// per-fetch staging name; parallel downloads sharing a basename must
	// not clobber each other before the cache files them under their keys
	dst := filepath.Join(f.outputDir, fmt.Sprintf("%s.part-%s", filename, uuid.NewString()[:8]))

	req, err := http.NewRequestWithContext(ctx, "GET", dl.URL, nil)
	if err != nil {
		return domain.FetchResult{URL: dl.URL, Error: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.FetchResult{URL: dl.URL, Error: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.FetchResult{
			URL:   dl.URL,
			Error: fmt.Errorf("unexpected status: %d", resp.StatusCode),
		}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return domain.FetchResult{URL: dl.URL, Error: err}
	}

	file, err := os.Create(dst)
	if err != nil {
		return domain.FetchResult{URL: dl.URL, Error: err}
	}
	defer file.Close()

	bar := progressbar.DefaultBytes(
		resp.ContentLength,
		fmt.Sprintf("Downloading %s", filename),
	)

	if _, err := io.Copy(io.MultiWriter(file, bar), resp.Body); err != nil {
		return domain.FetchResult{URL: dl.URL, Error: err}
	}

	if dl.SHA256 != "" {
		actual, err := computeChecksum(dst)
		if err != nil {
			return domain.FetchResult{URL: dl.URL, Error: err}
		}

		if actual != dl.SHA256 {
			os.Remove(dst)
			return domain.FetchResult{
				URL:   dl.URL,
				Error: fmt.Errorf("checksum mismatch: expected %s, got %s", dl.SHA256, actual),
			}
		}
	}

	return domain.FetchResult{URL: dl.URL, Path: dst}
}

func computeChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
