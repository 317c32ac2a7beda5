package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// decompressGzip expands a standalone gzip stream into destDir, named by
// stripping the compression suffix from the source basename. It produces a
// single file, never a directory tree.
func decompressGzip(src, destDir string) error {
	target := filepath.Join(destDir, strings.TrimSuffix(filepath.Base(src), ".gz"))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	gzr, err := gzip.NewReader(in)
	if err != nil {
		return fmt.Errorf("gzip: %w", err)
	}
	defer gzr.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, gzr); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
