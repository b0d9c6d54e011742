// Command mediasync uploads the images of a local directory to the media host.
//
//	mediasync -dir static -folder course_files/static
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/edigitalnetwork/course-service/internal/config"
	"github.com/edigitalnetwork/course-service/internal/media"
)

func main() {
	dir := flag.String("dir", "static", "directory to upload")
	folder := flag.String("folder", "", "media host folder (defaults to MEDIA_FOLDER)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.LoadMediaConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *folder == "" {
		*folder = cfg.Folder
	}

	store, err := media.NewCloudinaryStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize media store: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := syncDir(ctx, store, *dir, *folder, os.Stdout)
	if err != nil {
		log.Fatalf("Sync failed: %v", err)
	}

	logger.Info("Sync finished", "uploaded", stats.uploaded, "skipped", stats.skipped, "failed", stats.failed)
	if stats.failed > 0 {
		os.Exit(1)
	}
}

type syncStats struct {
	uploaded int
	skipped  int
	failed   int
}

// syncDir uploads every image under dir. Non-images are skipped and single upload
// failures are reported without stopping the walk.
func syncDir(ctx context.Context, store media.Store, dir, folder string, out io.Writer) (syncStats, error) {
	var stats syncStats

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		asset, ok, err := uploadImage(ctx, store, path, folder)
		switch {
		case err != nil:
			stats.failed++
			fmt.Fprintf(out, "Failed to upload file %s: %v\n", d.Name(), err)
		case !ok:
			stats.skipped++
			fmt.Fprintf(out, "Skipping file %s due to invalid image format\n", d.Name())
		default:
			stats.uploaded++
			fmt.Fprintf(out, "Uploaded file %s: %s\n", d.Name(), asset.SecureURL)
		}
		return nil
	})

	return stats, err
}

func uploadImage(ctx context.Context, store media.Store, path, folder string) (*media.Asset, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	contentType, err := media.DetectContentType(f)
	if err != nil {
		return nil, false, err
	}
	if !media.IsImage(contentType) {
		return nil, false, nil
	}

	asset, err := store.Upload(ctx, f, media.UploadParams{
		Folder: folder,
		Kind:   media.KindImage,
	})
	if err != nil {
		return nil, false, err
	}
	return asset, true, nil
}
