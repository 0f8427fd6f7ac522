package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/framevault/framevault-api/internal/pkg/token"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrInvalidMimeType = errors.New("file type not allowed")
	ErrEmptyFile       = errors.New("file is empty")
)

// AllowedImageTypes is the MIME allow-list for gallery photo uploads.
var AllowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// ValidateImage reads a file, enforces the size ceiling and sniffs the
// MIME type from content. Declared content types are not trusted; a
// binary renamed to .jpg fails here. Returns the buffered bytes and the
// detected MIME type.
func ValidateImage(reader io.Reader, maxSize int64) ([]byte, string, error) {
	// maxSize+1 so oversized files are detectable without buffering more
	limited := io.LimitReader(reader, maxSize+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}

	if len(data) == 0 {
		return nil, "", ErrEmptyFile
	}
	if int64(len(data)) > maxSize {
		return nil, "", ErrFileTooLarge
	}

	mimeType := sniffMimeType(data)
	if !AllowedImageTypes[mimeType] {
		return nil, "", ErrInvalidMimeType
	}

	return data, mimeType, nil
}

// sniffMimeType detects the content type from magic bytes. SVG has no
// magic number, so XML/plain-text payloads containing an <svg root are
// classified as image/svg+xml.
func sniffMimeType(data []byte) string {
	mimeType := http.DetectContentType(data)
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	if mimeType == "text/xml" || mimeType == "text/plain" {
		head := data
		if len(head) > 1024 {
			head = head[:1024]
		}
		if bytes.Contains(head, []byte("<svg")) {
			return "image/svg+xml"
		}
	}

	return mimeType
}

// RandomFilename builds a collision-resistant filename preserving the
// original file's extension.
func RandomFilename(originalName string) (string, error) {
	name, err := token.New(16)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if len(ext) > 10 {
		ext = ""
	}
	return name + ext, nil
}
