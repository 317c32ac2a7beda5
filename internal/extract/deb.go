package extract

import (
	"os"
	"path/filepath"

	"github.com/softlock/unvault/internal/domain"
)

var (
	controlTarExts = []string{".gz", ".xz", ".zst", ""}
	dataTarExts    = []string{".gz", ".xz", ".zst", ".bz2", ".lzma", ""}
)

// extractDeb unpacks a Debian package: the outer AR container goes through
// the generic archive tool, the control tarball is parked (still compressed)
// under debian/, and the data tarball re-enters the extraction pipeline in
// place before its compressed artifact is removed.
func (x *Extractor) extractDeb(src, dest string) error {
	if err := x.sevenZip.Extract(src, dest, "ar"); err != nil {
		return err
	}

	debianDir := filepath.Join(dest, "debian")
	if err := os.MkdirAll(debianDir, 0755); err != nil {
		return err
	}

	for _, ext := range controlTarExts {
		name := "control.tar" + ext
		controlTar := filepath.Join(dest, name)
		if _, err := os.Stat(controlTar); err != nil {
			continue
		}
		if err := os.Rename(controlTar, filepath.Join(debianDir, name)); err != nil {
			return err
		}
		break
	}

	for _, ext := range dataTarExts {
		dataTar := filepath.Join(dest, "data.tar"+ext)
		if _, err := os.Stat(dataTar); err != nil {
			continue
		}
		if _, err := x.Extract(domain.NewRequest(dataTar, dest)); err != nil {
			return err
		}
		return os.Remove(dataTar)
	}

	return nil
}
