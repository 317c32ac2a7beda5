package extract

import (
	"io"
	"os"
	"path/filepath"
)

// copyAppImage places the file verbatim into destDir. AppImages are opaque
// single-file executables; decoding their inner filesystem would break them.
func copyAppImage(src, destDir string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(filepath.Join(destDir, filepath.Base(src)),
		os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
