package extract

import (
	"errors"
	"os"

	"github.com/softlock/unvault/internal/domain"
)

// extractExe handles executables: InnoSetup installers are delegated to the
// installer tool, anything else must prove itself a valid archive through
// the generic tool's test mode.
func (x *Extractor) extractExe(src, dest string) error {
	if x.isInnoSetup(src) {
		return x.extractInno(src, dest)
	}

	if err := x.sevenZip.Test(src); err != nil {
		if errors.Is(err, domain.ErrMissingExecutable) {
			return err
		}
		return &FormatError{Path: src, Reason: "not an archive or GOG setup file"}
	}
	return x.sevenZip.Extract(src, dest, "")
}

// extractGog unpacks a GOG/InnoSetup installer. A file without the InnoSetup
// signature is a format mismatch, not an extraction failure.
func (x *Extractor) extractGog(src, dest string) error {
	if !x.isInnoSetup(src) {
		return &FormatError{Path: src, Reason: "not a GOG setup file"}
	}
	return x.extractInno(src, dest)
}

func (x *Extractor) extractInno(src, dest string) error {
	// the installer tool cannot create missing parents
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}
	return x.inno.Extract(src, dest, "")
}

// isInnoSetup probes src with the installer tool. A missing tool means the
// type cannot be confirmed, not that extraction failed.
func (x *Extractor) isInnoSetup(src string) bool {
	err := x.inno.Test(src)
	if err == nil {
		return true
	}
	if errors.Is(err, domain.ErrMissingExecutable) {
		x.log.Warn().Str("archive", src).
			Msg("innoextract not found, cannot determine archive type")
	}
	return false
}
