package tools

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// SevenZipCLI drives the general-purpose 7-zip tool through its command
// line. Extraction uses the full 7z binary; the lighter standalone 7za is
// enough for archive testing.
type SevenZipCLI struct {
	locator *Locator
}

func NewSevenZip(locator *Locator) *SevenZipCLI {
	return &SevenZipCLI{locator: locator}
}

// Test checks whether the file is a valid archive. Exit code 0 means yes.
func (z *SevenZipCLI) Test(path string) error {
	bin, err := z.locator.Locate("7za", filepath7za)
	if err != nil {
		return err
	}
	if out, err := exec.Command(bin, "t", path).CombinedOutput(); err != nil {
		return fmt.Errorf("7za test failed: %w\noutput: %s", err, bytes.TrimSpace(out))
	}
	return nil
}

// List returns the paths contained in the archive, parsed from the tool's
// technical listing output.
func (z *SevenZipCLI) List(path string) ([]string, error) {
	bin, err := z.locator.Locate("7z", filepath7z)
	if err != nil {
		return nil, err
	}
	out, err := exec.Command(bin, "l", "-slt", path).Output()
	if err != nil {
		return nil, fmt.Errorf("7z listing failed: %w", err)
	}
	return parseSevenZipListing(out), nil
}

// Extract unpacks the archive into dest with exact-overwrite mode forced.
// A sub-format tag is passed through unless the tool should auto-detect.
func (z *SevenZipCLI) Extract(path, dest, formatHint string) error {
	bin, err := z.locator.Locate("7z", filepath7z)
	if err != nil {
		return err
	}

	args := []string{"x", path, "-o" + dest, "-aoa"}
	if formatHint != "" && formatHint != "auto" {
		args = append(args, "-t"+formatHint)
	}

	if out, err := exec.Command(bin, args...).CombinedOutput(); err != nil {
		return fmt.Errorf("7z extraction failed: %w\noutput: %s", err, bytes.TrimSpace(out))
	}
	return nil
}

const (
	filepath7z  = "p7zip/7z"
	filepath7za = "p7zip/7za"
)

// parseSevenZipListing pulls the entry paths out of `7z l -slt` output. The
// first Path line names the archive itself and is skipped.
func parseSevenZipListing(out []byte) []string {
	var entries []string
	first := true
	for _, line := range strings.Split(string(out), "\n") {
		name, ok := strings.CutPrefix(strings.TrimRight(line, "\r"), "Path = ")
		if !ok {
			continue
		}
		if first {
			first = false
			continue
		}
		entries = append(entries, name)
	}
	return entries
}
