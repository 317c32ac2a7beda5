package extract

import (
	"path/filepath"
	"strings"
)

// Kind identifies which extraction backend handles an archive.
type Kind string

const (
	KindTar      Kind = "tar"
	KindTarGz    Kind = "tgz"
	KindTarXz    Kind = "txz"
	KindTarBz2   Kind = "tbz2"
	KindTarZst   Kind = "tzst"
	KindGzip     Kind = "gzip"
	KindSevenZip Kind = "7zip"
	KindExe      Kind = "exe"
	KindDeb      Kind = "deb"
	KindGog      Kind = "gog"
	KindAppImage Kind = "AppImage"
	KindUnknown  Kind = ""
)

// sevenZipFormats lists the container and filesystem formats the
// general-purpose archive tool can be asked to decode, plus "auto" for its
// own detection.
var sevenZipFormats = map[string]bool{
	"7z":       true,
	"xz":       true,
	"bzip2":    true,
	"gzip":     true,
	"tar":      true,
	"zip":      true,
	"ar":       true,
	"arj":      true,
	"cab":      true,
	"chm":      true,
	"cpio":     true,
	"cramfs":   true,
	"dmg":      true,
	"ext":      true,
	"fat":      true,
	"gpt":      true,
	"hfs":      true,
	"ihex":     true,
	"iso":      true,
	"lzh":      true,
	"lzma":     true,
	"mbr":      true,
	"msi":      true,
	"nsis":     true,
	"ntfs":     true,
	"qcow2":    true,
	"rar":      true,
	"rpm":      true,
	"squashfs": true,
	"udf":      true,
	"uefi":     true,
	"vdi":      true,
	"vhd":      true,
	"vmdk":     true,
	"wim":      true,
	"xar":      true,
	"z":        true,
	"auto":     true,
}

// GuessKind maps a file name to an extractor kind, most specific suffix
// first. Unrecognized names return KindUnknown and the caller falls back to
// the generic multi-format backend.
func GuessKind(path string) Kind {
	switch {
	case strings.HasSuffix(path, ".tar"):
		return KindTar
	case hasSuffix(path, ".tar.gz", ".tgz"):
		return KindTarGz
	case hasSuffix(path, ".tar.xz", ".txz", ".tar.lzma"):
		return KindTarXz
	case hasSuffix(path, ".tar.bz2", ".tbz2", ".tbz"):
		return KindTarBz2
	case hasSuffix(path, ".tar.zst", ".tzst"):
		return KindTarZst
	case strings.HasSuffix(path, ".gz"):
		return KindGzip
	case strings.HasSuffix(path, ".exe"):
		return KindExe
	case strings.HasSuffix(path, ".deb"):
		return KindDeb
	case strings.HasSuffix(path, ".AppImage"):
		return KindAppImage
	}
	return KindUnknown
}

// IsSevenZipSupported reports whether a sub-format tag, or the extension of
// nameOrExt when no hint is given, is among the formats the generic archive
// tool supports. Used to validate explicit overrides before dispatch.
func IsSevenZipSupported(nameOrExt, hint string) bool {
	if hint != "" {
		return sevenZipFormats[strings.ToLower(hint)]
	}
	ext := strings.TrimPrefix(filepath.Ext(nameOrExt), ".")
	if ext == "" {
		return false
	}
	return sevenZipFormats[strings.ToLower(ext)]
}

// kindFromOverride maps an explicit extractor name to a kind. The override
// is trusted to be unambiguous; anything that is not a named kind is handed
// to the 7z backend as a sub-format tag.
func kindFromOverride(name string) (Kind, string) {
	switch name {
	case "tar":
		return KindTar, ""
	case "tgz":
		return KindTarGz, ""
	case "txz":
		return KindTarXz, ""
	// some installer scripts say bz2 when they mean a .tar.bz2
	case "tbz2", "bz2":
		return KindTarBz2, ""
	case "tzst":
		return KindTarZst, ""
	case "gzip":
		return KindGzip, ""
	case "exe":
		return KindExe, ""
	case "deb":
		return KindDeb, ""
	case "gog":
		return KindGog, ""
	case "AppImage":
		return KindAppImage, ""
	default:
		return KindSevenZip, name
	}
}

// SevenZipFormats returns the supported sub-format tags, for display.
func SevenZipFormats() []string {
	formats := make([]string, 0, len(sevenZipFormats))
	for f := range sevenZipFormats {
		formats = append(formats, f)
	}
	return formats
}

func hasSuffix(path string, suffixes ...string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}
