package media

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/edigitalnetwork/course-service/internal/config"
)

// CloudinaryStore stores assets on Cloudinary
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a store from CLOUDINARY_URL or the cloud name/key/secret triple
func NewCloudinaryStore(cfg config.MediaConfig) (*CloudinaryStore, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("cloudinary credentials are not configured")
	}

	var cld *cloudinary.Cloudinary
	var err error
	if cfg.CloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	cld.Config.URL.Secure = true

	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, r io.Reader, params UploadParams) (*Asset, error) {
	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       params.Folder,
		PublicID:     params.PublicID,
		ResourceType: string(params.Kind),
		Overwrite:    api.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaHost, err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("%w: %s", ErrMediaHost, resp.Error.Message)
	}

	return &Asset{
		PublicID:  resp.PublicID,
		SecureURL: resp.SecureURL,
		Bytes:     int64(resp.Bytes),
		Format:    resp.Format,
		Kind:      Kind(resp.ResourceType),
	}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string, kind Kind) error {
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: string(kind),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMediaHost, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("%w: %s", ErrMediaHost, resp.Error.Message)
	}
	// "not found" means the asset is already gone
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("%w: destroy %s returned %q", ErrMediaHost, publicID, resp.Result)
	}
	return nil
}

// UnavailableStore is used when no media host credentials are configured
type UnavailableStore struct{}

func (UnavailableStore) Upload(ctx context.Context, r io.Reader, params UploadParams) (*Asset, error) {
	return nil, fmt.Errorf("%w: media host is not configured", ErrMediaHost)
}

func (UnavailableStore) Delete(ctx context.Context, publicID string, kind Kind) error {
	return fmt.Errorf("%w: media host is not configured", ErrMediaHost)
}
