package utils

import (
	"path/filepath"
	"strings"
)

var imageExts = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// FileExt returns the lowercase extension of a filename without the dot.
func FileExt(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// IsImageExt reports whether the extension is an accepted image type.
func IsImageExt(ext string) bool {
	return imageExts[ext]
}

// IsPDFExt reports whether the extension is a PDF. Resumes are PDF only.
func IsPDFExt(ext string) bool {
	return ext == "pdf"
}
