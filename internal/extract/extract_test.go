package extract

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"

	"github.com/softlock/unvault/internal/domain"
)

type toolCall struct {
	path   string
	dest   string
	format string
}

// fakeTool stands in for the external 7z/innoextract binaries.
type fakeTool struct {
	testErr   error
	entries   []string
	listErr   error
	onExtract func(path, dest, format string) error
	calls     []toolCall
}

func (f *fakeTool) Test(path string) error { return f.testErr }

func (f *fakeTool) List(path string) ([]string, error) { return f.entries, f.listErr }

func (f *fakeTool) Extract(path, dest, format string) error {
	f.calls = append(f.calls, toolCall{path, dest, format})
	if f.onExtract != nil {
		return f.onExtract(path, dest, format)
	}
	return nil
}

func newTestExtractor(sevenZip, inno domain.ToolInvoker) *Extractor {
	if sevenZip == nil {
		sevenZip = &fakeTool{}
	}
	if inno == nil {
		inno = &fakeTool{}
	}
	return &Extractor{sevenZip: sevenZip, inno: inno, log: zerolog.Nop()}
}

type tarEntry struct {
	name    string
	content string
	dir     bool
}

func writeTarTo(t *testing.T, w io.Writer, entries []tarEntry) {
	t.Helper()
	tw := tar.NewWriter(w)
	for _, e := range entries {
		if e.dir {
			if err := tw.WriteHeader(&tar.Header{
				Name:     e.name,
				Typeflag: tar.TypeDir,
				Mode:     0755,
			}); err != nil {
				t.Fatalf("write dir header: %v", err)
			}
			continue
		}
		if err := tw.WriteHeader(&tar.Header{
			Name:     e.name,
			Typeflag: tar.TypeReg,
			Mode:     0644,
			Size:     int64(len(e.content)),
		}); err != nil {
			t.Fatalf("write file header: %v", err)
		}
		if _, err := tw.Write([]byte(e.content)); err != nil {
			t.Fatalf("write file body: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
}

func writeTarFile(t *testing.T, path string, entries []tarEntry) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer f.Close()
	writeTarTo(t, f, entries)
}

func writeTarGzFile(t *testing.T, path string, entries []tarEntry) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer f.Close()
	gz := gzip.NewWriter(f)
	writeTarTo(t, gz, entries)
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// assertNoStaging verifies the merge consumed every staging directory.
func assertNoStaging(t *testing.T, dest string) {
	t.Helper()
	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), stagingPrefix) {
			t.Errorf("staging directory %s left behind in destination", e.Name())
		}
	}
}

func TestExtractTarRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "files.tar")
	writeTarFile(t, archive, []tarEntry{
		{name: "a.txt", content: "alpha"},
		{name: "b/", dir: true},
		{name: "b/c.txt", content: "gamma"},
	})

	dest := filepath.Join(tmp, "out")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}

	x := newTestExtractor(nil, nil)
	result, err := x.Extract(domain.ExtractionRequest{Source: archive, Destination: dest})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.Source != archive || result.Destination != dest {
		t.Errorf("result = %+v, want echo of source and destination", result)
	}

	if got := readFile(t, filepath.Join(dest, "a.txt")); got != "alpha" {
		t.Errorf("a.txt = %q, want %q", got, "alpha")
	}
	if got := readFile(t, filepath.Join(dest, "b", "c.txt")); got != "gamma" {
		t.Errorf("b/c.txt = %q, want %q", got, "gamma")
	}
	assertNoStaging(t, dest)
}

func TestExtractSingleRootFlattening(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "game.tar.gz")
	writeTarGzFile(t, archive, []tarEntry{
		{name: "game-1.0/", dir: true},
		{name: "game-1.0/run.sh", content: "#!/bin/sh"},
		{name: "game-1.0/data.pak", content: "pak"},
	})

	dest := filepath.Join(tmp, "out")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}

	x := newTestExtractor(nil, nil)
	req := domain.NewRequest(archive, dest)
	if _, err := x.Extract(req); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if got := readFile(t, filepath.Join(dest, "run.sh")); got != "#!/bin/sh" {
		t.Errorf("run.sh = %q, want flattened file content", got)
	}
	if _, err := os.Stat(filepath.Join(dest, "game-1.0")); !os.IsNotExist(err) {
		t.Errorf("wrapping directory game-1.0 should have been flattened away")
	}
	assertNoStaging(t, dest)
}

func TestExtractKeepsNestingWithoutMergeSingle(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "game.tar.gz")
	writeTarGzFile(t, archive, []tarEntry{
		{name: "game-1.0/", dir: true},
		{name: "game-1.0/run.sh", content: "#!/bin/sh"},
	})

	dest := filepath.Join(tmp, "out")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}

	x := newTestExtractor(nil, nil)
	req := domain.ExtractionRequest{Source: archive, Destination: dest, MergeSingle: false}
	if _, err := x.Extract(req); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if got := readFile(t, filepath.Join(dest, "game-1.0", "run.sh")); got != "#!/bin/sh" {
		t.Errorf("game-1.0/run.sh = %q, want nesting preserved", got)
	}
	assertNoStaging(t, dest)
}

func TestExtractOverwritesExistingFile(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "docs.tar")
	writeTarFile(t, archive, []tarEntry{
		{name: "readme.txt", content: "from archive"},
		{name: "other.txt", content: "other"},
	})

	dest := filepath.Join(tmp, "out")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dest, "readme.txt"), []byte("pre-existing"), 0644); err != nil {
		t.Fatal(err)
	}

	x := newTestExtractor(nil, nil)
	if _, err := x.Extract(domain.NewRequest(archive, dest)); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if got := readFile(t, filepath.Join(dest, "readme.txt")); got != "from archive" {
		t.Errorf("readme.txt = %q, want archive version", got)
	}
	assertNoStaging(t, dest)
}

func TestExtractFileRenamesCollidingDirectory(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "tools.tar")
	writeTarFile(t, archive, []tarEntry{
		{name: "tools", content: "binary payload"},
	})

	dest := filepath.Join(tmp, "out")
	if err := os.MkdirAll(filepath.Join(dest, "tools"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dest, "tools", "keep.txt"), []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}

	x := newTestExtractor(nil, nil)
	if _, err := x.Extract(domain.NewRequest(archive, dest)); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	info, err := os.Stat(filepath.Join(dest, "tools"))
	if err != nil || info.IsDir() {
		t.Fatalf("tools should now be the extracted file, got err=%v isDir=%v", err, info != nil && info.IsDir())
	}
	if got := readFile(t, filepath.Join(dest, "tools")); got != "binary payload" {
		t.Errorf("tools = %q, want archive content", got)
	}

	// the old directory must survive under a renamed path
	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatal(err)
	}
	var renamed string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), "tools") {
			renamed = e.Name()
		}
	}
	if renamed == "" {
		t.Fatalf("existing tools directory was not renamed aside")
	}
	if got := readFile(t, filepath.Join(dest, renamed, "keep.txt")); got != "keep" {
		t.Errorf("renamed directory lost its content: %q", got)
	}
	assertNoStaging(t, dest)
}

func TestExtractGzipFile(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "notes.txt.gz")

	f, err := os.Create(archive)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte("plain text")); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	dest := filepath.Join(tmp, "out")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}

	x := newTestExtractor(nil, nil)
	if _, err := x.Extract(domain.NewRequest(archive, dest)); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if got := readFile(t, filepath.Join(dest, "notes.txt")); got != "plain text" {
		t.Errorf("notes.txt = %q, want decompressed content", got)
	}
	assertNoStaging(t, dest)
}

func TestExtractAppImagePassThrough(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "Game.AppImage")
	if err := os.WriteFile(src, []byte("opaque image"), 0755); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(tmp, "out")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}

	x := newTestExtractor(nil, nil)
	if _, err := x.Extract(domain.NewRequest(src, dest)); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	target := filepath.Join(dest, "Game.AppImage")
	if got := readFile(t, target); got != "opaque image" {
		t.Errorf("AppImage content = %q, want verbatim copy", got)
	}
	info, err := os.Stat(target)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&0111 == 0 {
		t.Errorf("AppImage lost its executable bit: %v", info.Mode())
	}
	assertNoStaging(t, dest)
}

func TestExtractMissingSource(t *testing.T) {
	tmp := t.TempDir()

	x := newTestExtractor(nil, nil)
	_, err := x.Extract(domain.NewRequest(filepath.Join(tmp, "nope.tar"), tmp))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	var extractErr *ExtractError
	if !errors.As(err, &extractErr) {
		t.Fatalf("error = %T, want *ExtractError", err)
	}
}

func TestExtractUnknownSuffixFallsBackToSevenZip(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "game.zip")
	if err := os.WriteFile(archive, []byte("zip bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(tmp, "out")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}

	sevenZip := &fakeTool{
		onExtract: func(path, extractDest, format string) error {
			return os.WriteFile(filepath.Join(extractDest, "unpacked.txt"), []byte("data"), 0644)
		},
	}

	x := newTestExtractor(sevenZip, nil)
	if _, err := x.Extract(domain.NewRequest(archive, dest)); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if len(sevenZip.calls) != 1 {
		t.Fatalf("7z invoked %d times, want 1", len(sevenZip.calls))
	}
	if sevenZip.calls[0].format != "" {
		t.Errorf("format hint = %q, want empty for auto-detection", sevenZip.calls[0].format)
	}
	if got := readFile(t, filepath.Join(dest, "unpacked.txt")); got != "data" {
		t.Errorf("unpacked.txt = %q, want merged backend output", got)
	}
	assertNoStaging(t, dest)
}

func TestExtractOverridePassesSubFormatTag(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "disc.img")
	if err := os.WriteFile(archive, []byte("iso bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(tmp, "out")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}

	sevenZip := &fakeTool{
		onExtract: func(path, extractDest, format string) error {
			return os.WriteFile(filepath.Join(extractDest, "track.bin"), []byte("bin"), 0644)
		},
	}

	x := newTestExtractor(sevenZip, nil)
	req := domain.NewRequest(archive, dest)
	req.Format = "iso"
	if _, err := x.Extract(req); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if len(sevenZip.calls) != 1 || sevenZip.calls[0].format != "iso" {
		t.Fatalf("calls = %+v, want one call with iso tag", sevenZip.calls)
	}
}

func TestExtractExeNeitherInstallerNorArchive(t *testing.T) {
	tmp := t.TempDir()
	exe := filepath.Join(tmp, "setup.exe")
	if err := os.WriteFile(exe, []byte("MZ"), 0644); err != nil {
		t.Fatal(err)
	}

	sevenZip := &fakeTool{testErr: errors.New("exit status 2")}
	inno := &fakeTool{testErr: errors.New("exit status 1")}

	x := newTestExtractor(sevenZip, inno)
	_, err := x.Extract(domain.NewRequest(exe, tmp))
	if err == nil {
		t.Fatal("expected format error")
	}
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("error = %T (%v), want *FormatError", err, err)
	}
	if !strings.Contains(err.Error(), "not an archive or GOG setup file") {
		t.Errorf("error = %q, want mismatch description", err)
	}
}

func TestExtractExeValidArchiveWithInnoextractMissing(t *testing.T) {
	tmp := t.TempDir()
	exe := filepath.Join(tmp, "archive.exe")
	if err := os.WriteFile(exe, []byte("MZ"), 0644); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(tmp, "out")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}

	// missing innoextract only means the installer probe cannot confirm
	inno := &fakeTool{testErr: fmt.Errorf("innoextract: %w", domain.ErrMissingExecutable)}
	sevenZip := &fakeTool{
		onExtract: func(path, extractDest, format string) error {
			return os.WriteFile(filepath.Join(extractDest, "payload.txt"), []byte("ok"), 0644)
		},
	}

	x := newTestExtractor(sevenZip, inno)
	if _, err := x.Extract(domain.NewRequest(exe, dest)); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if got := readFile(t, filepath.Join(dest, "payload.txt")); got != "ok" {
		t.Errorf("payload.txt = %q, want generic-archive extraction output", got)
	}
}

func TestExtractExeDelegatesToInstaller(t *testing.T) {
	tmp := t.TempDir()
	exe := filepath.Join(tmp, "setup_game.exe")
	if err := os.WriteFile(exe, []byte("MZ"), 0644); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(tmp, "out")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}

	inno := &fakeTool{
		onExtract: func(path, extractDest, format string) error {
			return os.WriteFile(filepath.Join(extractDest, "game.bin"), []byte("bin"), 0644)
		},
	}
	sevenZip := &fakeTool{testErr: errors.New("should not be consulted")}

	x := newTestExtractor(sevenZip, inno)
	if _, err := x.Extract(domain.NewRequest(exe, dest)); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if len(inno.calls) != 1 {
		t.Fatalf("installer tool invoked %d times, want 1", len(inno.calls))
	}
	if len(sevenZip.calls) != 0 {
		t.Fatalf("7z should not run when the installer tool handles the file")
	}
	if got := readFile(t, filepath.Join(dest, "game.bin")); got != "bin" {
		t.Errorf("game.bin = %q, want installer output", got)
	}
}

func TestExtractGogRejectsNonInstaller(t *testing.T) {
	tmp := t.TempDir()
	exe := filepath.Join(tmp, "random.bin")
	if err := os.WriteFile(exe, []byte("junk"), 0644); err != nil {
		t.Fatal(err)
	}

	inno := &fakeTool{testErr: errors.New("exit status 1")}

	x := newTestExtractor(nil, inno)
	req := domain.NewRequest(exe, tmp)
	req.Format = "gog"
	_, err := x.Extract(req)
	if err == nil {
		t.Fatal("expected format error")
	}
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("error = %T (%v), want *FormatError", err, err)
	}
	if !strings.Contains(err.Error(), "not a GOG setup file") {
		t.Errorf("error = %q, want GOG mismatch description", err)
	}
}

func TestListInstallerEntries(t *testing.T) {
	inno := &fakeTool{entries: []string{"app/game.exe", "app/data.pak"}}

	x := newTestExtractor(nil, inno)
	entries, err := x.ListInstallerEntries("setup.exe")
	if err != nil {
		t.Fatalf("ListInstallerEntries: %v", err)
	}
	if len(entries) != 2 || entries[0] != "app/game.exe" {
		t.Errorf("entries = %v", entries)
	}
}
