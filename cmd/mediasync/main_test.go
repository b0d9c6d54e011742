package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edigitalnetwork/course-service/internal/media"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type recordingStore struct {
	params []media.UploadParams
	failOn int
}

func (s *recordingStore) Upload(ctx context.Context, r io.Reader, params media.UploadParams) (*media.Asset, error) {
	s.params = append(s.params, params)
	if len(s.params) == s.failOn {
		return nil, errors.New("quota exceeded")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		return nil, errors.New("reader was not rewound")
	}
	return &media.Asset{SecureURL: "https://media.example/" + params.Folder, Bytes: int64(len(data))}, nil
}

func (s *recordingStore) Delete(ctx context.Context, publicID string, kind media.Kind) error {
	return nil
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSyncDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.png"), pngHeader)
	writeFile(t, filepath.Join(dir, "b.png"), pngHeader)
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("plain text, not an image"))
	writeFile(t, filepath.Join(dir, "icons", "c.png"), pngHeader)

	// a.png, b.png, icons/c.png in walk order; the second upload fails
	store := &recordingStore{failOn: 2}
	var out bytes.Buffer

	stats, err := syncDir(context.Background(), store, dir, "course_files/static", &out)
	if err != nil {
		t.Fatalf("syncDir() error = %v", err)
	}

	if stats.uploaded != 2 || stats.skipped != 1 || stats.failed != 1 {
		t.Errorf("stats = %+v, want 2 uploaded, 1 skipped, 1 failed", stats)
	}
	for _, p := range store.params {
		if p.Folder != "course_files/static" || p.Kind != media.KindImage {
			t.Errorf("upload params = %+v", p)
		}
	}

	log := out.String()
	for _, want := range []string{
		"Uploaded file a.png: https://media.example/course_files/static",
		"Failed to upload file b.png: quota exceeded",
		"Skipping file notes.txt due to invalid image format",
		"Uploaded file c.png",
	} {
		if !strings.Contains(log, want) {
			t.Errorf("output missing %q:\n%s", want, log)
		}
	}
}

func TestSyncDir_MissingDir(t *testing.T) {
	_, err := syncDir(context.Background(), &recordingStore{}, filepath.Join(t.TempDir(), "nope"), "x", io.Discard)
	if err == nil {
		t.Fatal("syncDir() on a missing directory should fail")
	}
}

func TestSyncDir_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.png"), pngHeader)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &recordingStore{}
	_, err := syncDir(ctx, store, dir, "x", io.Discard)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("syncDir() error = %v, want context.Canceled", err)
	}
	if len(store.params) != 0 {
		t.Errorf("uploads after cancel = %d", len(store.params))
	}
}
