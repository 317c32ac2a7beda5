package tools

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/softlock/unvault/internal/domain"
)

// Locator resolves external executables, preferring a bundled runtime
// directory over the system PATH. The runtime root is injected at
// construction; an empty root skips straight to PATH lookup.
type Locator struct {
	runtimeDir string
}

func NewLocator(runtimeDir string) *Locator {
	return &Locator{runtimeDir: runtimeDir}
}

// Locate returns the absolute path of the named tool. Fixed subpaths of the
// runtime directory are checked first, then versioned subdirectories matched
// by name prefix (innoextract-1.9/innoextract), then the system PATH.
// Failure yields domain.ErrMissingExecutable.
func (l *Locator) Locate(name string, subpaths ...string) (string, error) {
	if l.runtimeDir != "" {
		for _, sub := range subpaths {
			path := filepath.Join(l.runtimeDir, sub)
			if isExecutable(path) {
				return path, nil
			}
		}

		entries, _ := os.ReadDir(l.runtimeDir)
		for _, entry := range entries {
			if !entry.IsDir() || !strings.HasPrefix(entry.Name(), name) {
				continue
			}
			path := filepath.Join(l.runtimeDir, entry.Name(), name)
			if isExecutable(path) {
				return path, nil
			}
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("%s: %w", name, domain.ErrMissingExecutable)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Mode()&0111 != 0
}
