// Package files validates uploaded files and describes their content for
// prompt composition. Binary formats get size-only descriptors; no OCR or PDF
// text extraction happens here.
package files

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxFileSize caps uploads at 50MB.
const MaxFileSize = 50 * 1024 * 1024

// ErrTooLarge marks an upload over MaxFileSize; it maps to 413 rather than a
// generic validation failure.
var ErrTooLarge = fmt.Errorf("file too large, maximum size: %dMB", MaxFileSize/(1024*1024))

// SupportedExtensions maps allowed upload extensions to their MIME types.
var SupportedExtensions = map[string]string{
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"webp": "image/webp",
	"txt":  "text/plain",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true, "webp": true,
}

// Info describes a validated upload; it is echoed back in API responses.
type Info struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	MimeType  string `json:"mime_type"`
	SizeBytes int    `json:"size_bytes"`
}

// Validate checks the filename and extension before any bytes are read.
func Validate(filename string) (Info, error) {
	if filename == "" {
		return Info{}, errors.New("missing filename")
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	mime, ok := SupportedExtensions[ext]
	if !ok {
		return Info{}, fmt.Errorf("unsupported file type: %s. Supported types: %s",
			ext, strings.Join(sortedExtensions(), ", "))
	}

	return Info{
		Name:      filename,
		Extension: ext,
		MimeType:  mime,
	}, nil
}

// Describe hashes the content and renders a textual description for the
// prompt: full text for decodable plain text, size-only descriptors for
// binary formats. The info's size is filled in as a side effect.
func Describe(content []byte, info *Info) (desc string, hash string, err error) {
	info.SizeBytes = len(content)

	if len(content) > MaxFileSize {
		return "", "", ErrTooLarge
	}

	sum := sha256.Sum256(content)
	hash = hex.EncodeToString(sum[:])

	switch {
	case info.Extension == "txt":
		if utf8.Valid(content) {
			return string(content), hash, nil
		}
		return fmt.Sprintf("[Undecodable text file: %s]", info.Name), hash, nil
	case info.Extension == "pdf":
		return fmt.Sprintf("[PDF document: %s - %d bytes]", info.Name, len(content)), hash, nil
	case imageExtensions[info.Extension]:
		return fmt.Sprintf("[Image: %s - %d bytes]", info.Name, len(content)), hash, nil
	default:
		return fmt.Sprintf("[File: %s - type: %s]", info.Name, info.Extension), hash, nil
	}
}

// Category groups an extension for the supported-files listing.
func Category(ext string) string {
	switch ext {
	case "pdf", "doc", "docx", "txt":
		return "document"
	default:
		return "image"
	}
}

func sortedExtensions() []string {
	exts := make([]string, 0, len(SupportedExtensions))
	for ext := range SupportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
