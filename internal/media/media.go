package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Kind selects the media host resource type of an asset
type Kind string

const (
	KindFile  Kind = "raw"
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

var (
	// ErrUnsupportedFormat is returned for extensions outside the allowed set of a kind
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrFileTooLarge is returned when the upload exceeds the configured maximum
	ErrFileTooLarge = errors.New("file too large")

	// ErrEmptyFile is returned for zero byte uploads
	ErrEmptyFile = errors.New("file is empty")

	// ErrMediaHost wraps every failure reported by the remote media host
	ErrMediaHost = errors.New("media host error")
)

var allowedExtensions = map[Kind][]string{
	KindFile:  {"pdf", "docx", "doc", "xls", "xlsx", "ppt", "pptx", "zip", "rar", "7zip"},
	KindVideo: {"mp4", "mkv", "wmv", "3gp", "f4v", "avi", "mp3"},
}

// AllowedExtensions returns the accepted extensions for a kind, without dots
func AllowedExtensions(kind Kind) []string {
	return append([]string(nil), allowedExtensions[kind]...)
}

// Extension returns the lower-cased extension of name without the dot
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// ValidateFile checks the extension against the kind's allowed set and the size against maxBytes.
// A maxBytes of zero disables the size check.
func ValidateFile(name string, size int64, kind Kind, maxBytes int64) error {
	ext := Extension(name)
	allowed := false
	for _, candidate := range allowedExtensions[kind] {
		if ext == candidate {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %q, allowed: %s", ErrUnsupportedFormat, ext, strings.Join(allowedExtensions[kind], ", "))
	}

	if size <= 0 {
		return ErrEmptyFile
	}
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, size, maxBytes)
	}

	return nil
}

// DetectContentType sniffs the MIME type and rewinds the reader
func DetectContentType(r io.ReadSeeker) (string, error) {
	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}
	return mtype.String(), nil
}

// IsImage reports whether the detected MIME type is an image
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// UploadParams describes where an asset goes on the media host.
// An empty PublicID lets the host pick one.
type UploadParams struct {
	Folder   string
	PublicID string
	Kind     Kind
}

// Asset is what the media host reports after an upload
type Asset struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Bytes     int64  `json:"bytes"`
	Format    string `json:"format"`
	Kind      Kind   `json:"resource_type"`
}

// Store pushes bytes to and removes assets from the media host
type Store interface {
	Upload(ctx context.Context, r io.Reader, params UploadParams) (*Asset, error)
	Delete(ctx context.Context, publicID string, kind Kind) error
}

// CourseFolder is the folder holding a course's materials
func CourseFolder(root, courseSlug string) string {
	root = strings.Trim(root, "/")
	if root == "" {
		return courseSlug
	}
	return root + "/" + courseSlug
}
