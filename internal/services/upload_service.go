package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gamestore/internal/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var (
	// ErrUploadsDisabled is returned when no upload backend is configured.
	ErrUploadsDisabled = errors.New("Image uploads are not configured")
	// ErrTooManyImages is returned when a game already holds the maximum
	// number of gallery images.
	ErrTooManyImages = errors.New("Maximum 10 images allowed")
)

// ImageUploader pushes an image to external object storage and returns its
// public URL.
type ImageUploader interface {
	Upload(ctx context.Context, file io.Reader) (url string, err error)
}

// CloudinaryUploader is the Cloudinary-backed ImageUploader.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryUploader creates an uploader from a CLOUDINARY_URL-style
// connection string.
func NewCloudinaryUploader(cloudURL string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

// Upload sends the file to Cloudinary and returns its secure URL.
func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader) (string, error) {
	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return result.SecureURL, nil
}

// UploadService attaches uploaded images to games.
type UploadService struct {
	uploader    ImageUploader // nil when uploads are not configured
	gameService *GameService
}

// NewUploadService creates a new UploadService. A nil uploader disables the
// feature; AddGameImage then fails with ErrUploadsDisabled.
func NewUploadService(up ImageUploader, gameService *GameService) *UploadService {
	return &UploadService{
		uploader:    up,
		gameService: gameService,
	}
}

// Enabled reports whether an upload backend is configured.
func (s *UploadService) Enabled() bool {
	return s.uploader != nil
}

// AddGameImage uploads the image and records it on the game, either as the
// header image or appended to the gallery (capped at 10).
func (s *UploadService) AddGameImage(ctx context.Context, gameID string, file io.Reader, asHeader bool) (*models.Game, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	game, err := s.gameService.GetGameByID(gameID)
	if err != nil {
		return nil, err
	}
	if !asHeader && len(game.Images) >= 10 {
		return nil, ErrTooManyImages
	}

	url, err := s.uploader.Upload(ctx, file)
	if err != nil {
		return nil, err
	}

	if asHeader {
		game.HeaderImage = url
	} else {
		game.Images = append(game.Images, url)
	}
	if err := s.gameService.UpdateGame(game); err != nil {
		return nil, err
	}
	return game, nil
}
