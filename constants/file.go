package constants

import "strings"

// AllowedExtensions holds the file extensions picked up by directory ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// DefaultInputDir and DefaultOutputFile are used when the entry point gets no arguments.
const (
	DefaultInputDir   = "./pdfs"
	DefaultOutputFile = "Ket_qua_hoa_don_final.xlsx"
)

// FallbackSuffix is inserted before the extension when the output file is locked.
const FallbackSuffix = "_v2"
