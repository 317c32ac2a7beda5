package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/softlock/unvault/internal/domain"
	"github.com/softlock/unvault/internal/logging"
)

// Extractor dispatches archives to the backend matching their format and
// reconciles the extracted content with the destination directory.
type Extractor struct {
	sevenZip domain.ToolInvoker
	inno     domain.ToolInvoker
	log      zerolog.Logger
}

func New(sevenZip, inno domain.ToolInvoker) *Extractor {
	return &Extractor{
		sevenZip: sevenZip,
		inno:     inno,
		log:      logging.GetLogger("extract"),
	}
}

// Extract unpacks req.Source into req.Destination. The whole operation is
// sequential: detect, extract into a staging directory, merge, clean up.
// Concurrent extractions into the same destination are isolated by the
// staging directory naming; their final merges are not mutually atomic.
func (x *Extractor) Extract(req domain.ExtractionRequest) (domain.ExtractionResult, error) {
	var result domain.ExtractionResult

	src, err := filepath.Abs(req.Source)
	if err != nil {
		return result, &ExtractError{Path: req.Source, Err: err}
	}
	if _, err := os.Stat(src); err != nil {
		return result, &ExtractError{Path: src, Err: err}
	}

	kind := GuessKind(src)
	tag := ""
	if req.Format != "" {
		kind, tag = kindFromOverride(req.Format)
	}
	if kind == KindUnknown {
		kind, tag = KindSevenZip, "auto"
	}

	x.log.Debug().Str("archive", src).Str("destination", req.Destination).
		Str("kind", string(kind)).Msg("extracting")

	staging, err := newStagingDir(req.Destination)
	if err != nil {
		return result, &ExtractError{Path: src, Err: err}
	}

	if err := x.dispatch(kind, tag, src, staging); err != nil {
		var formatErr *FormatError
		if errors.As(err, &formatErr) {
			return result, err
		}
		return result, &ExtractError{Path: src, Err: err}
	}

	if err := x.mergeStaged(staging, req.Destination, req.MergeSingle); err != nil {
		return result, &ExtractError{Path: src, Err: err}
	}

	x.log.Debug().Str("archive", src).Str("destination", req.Destination).
		Msg("finished extracting")
	return domain.ExtractionResult{Source: src, Destination: req.Destination}, nil
}

func (x *Extractor) dispatch(kind Kind, tag, src, staging string) error {
	switch kind {
	case KindTar, KindTarGz, KindTarXz, KindTarBz2, KindTarZst:
		return extractTar(kind, src, staging)
	case KindGzip:
		return decompressGzip(src, staging)
	case KindExe:
		return x.extractExe(src, staging)
	case KindGog:
		return x.extractGog(src, staging)
	case KindDeb:
		return x.extractDeb(src, staging)
	case KindAppImage:
		return copyAppImage(src, staging)
	case KindSevenZip:
		if tag == "auto" {
			tag = ""
		}
		return x.sevenZip.Extract(src, staging, tag)
	default:
		return fmt.Errorf("no extractor for kind %q", kind)
	}
}

// ListInstallerEntries returns the relative paths contained in an
// InnoSetup/GOG installer.
func (x *Extractor) ListInstallerEntries(path string) ([]string, error) {
	return x.inno.List(path)
}
