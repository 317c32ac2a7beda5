package tools

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// InnoextractCLI drives the innoextract tool used for InnoSetup and GOG
// installers.
type InnoextractCLI struct {
	locator *Locator
}

func NewInnoextract(locator *Locator) *InnoextractCLI {
	return &InnoextractCLI{locator: locator}
}

// Test checks the InnoSetup signature. Exit code 0 means the file is a
// compatible installer.
func (i *InnoextractCLI) Test(path string) error {
	bin, err := i.locator.Locate("innoextract")
	if err != nil {
		return err
	}
	if err := exec.Command(bin, "-i", path).Run(); err != nil {
		return fmt.Errorf("not an InnoSetup installer: %w", err)
	}
	return nil
}

// List returns the relative paths inside an installer, from quiet listing
// mode output.
func (i *InnoextractCLI) List(path string) ([]string, error) {
	bin, err := i.locator.Locate("innoextract")
	if err != nil {
		return nil, err
	}
	out, err := exec.Command(bin, "-lmq", path).Output()
	if err != nil {
		return nil, fmt.Errorf("innoextract listing failed: %w", err)
	}
	return parseInnoListing(out), nil
}

// Extract unpacks the installer's game data into dest. The format hint is
// ignored; innoextract handles exactly one format.
func (i *InnoextractCLI) Extract(path, dest, _ string) error {
	bin, err := i.locator.Locate("innoextract")
	if err != nil {
		return err
	}
	cmd := exec.Command(bin, "-m", "-g", "-d", dest, "-e", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("innoextract failed to extract installer: %w\noutput: %s",
			err, bytes.TrimSpace(out))
	}
	return nil
}

// parseInnoListing strips the fixed-width ` - ` prefix innoextract puts in
// front of every entry.
func parseInnoListing(out []byte) []string {
	var entries []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) <= 3 {
			continue
		}
		entries = append(entries, line[3:])
	}
	return entries
}
