package extract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// stagingPrefix is reserved at the top level of every destination directory;
// archive entries must never collide with it.
const stagingPrefix = ".extract-"

// randomID returns the 8-hex-char id that keeps concurrent staging
// directories from colliding.
func randomID() string {
	return uuid.NewString()[:8]
}

// newStagingDir allocates the extraction sandbox inside the destination
// directory. Backends populate it, the merge step consumes and deletes it.
// On failure it is left behind for the caller to clean up.
func newStagingDir(dest string) (string, error) {
	path := filepath.Join(dest, stagingPrefix+randomID())
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	return path, nil
}
