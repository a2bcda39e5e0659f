package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/Kinotsolarpower/Wash-GoPRO/utils"
)

// PhotoService stores and serves vehicle photos (analysis shots and
// after-service photos).
type PhotoService interface {
	// UploadPhoto validates and stores a vehicle photo, returning the
	// storage key. kind groups photos in the bucket ("before", "after").
	UploadPhoto(fileHeader *multipart.FileHeader, kind string) (string, error)

	// PhotoURL generates an access URL for a stored photo
	PhotoURL(key string) (string, error)

	// DeletePhoto removes a photo from storage
	DeletePhoto(key string) error
}

// S3PhotoService implements PhotoService on top of object storage
type S3PhotoService struct {
	s3Service S3Interface
}

var photoServiceInstance PhotoService

// InitPhotoService initializes the photo service with an S3 backend
func InitPhotoService(s3Service S3Interface) PhotoService {
	photoServiceInstance = &S3PhotoService{s3Service: s3Service}
	return photoServiceInstance
}

// GetPhotoService returns the initialized photo service instance
func GetPhotoService() PhotoService {
	return photoServiceInstance
}

// SetPhotoService sets the photo service instance (primarily for testing)
func SetPhotoService(service PhotoService) {
	photoServiceInstance = service
}

// contentTypeForFilename maps a photo extension to its MIME type
func contentTypeForFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// UploadPhoto validates and stores a vehicle photo
func (s *S3PhotoService) UploadPhoto(fileHeader *multipart.FileHeader, kind string) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("photos/%s/%d_%s", kind, time.Now().Unix(), filepath.Base(fileHeader.Filename))
	if err := s.s3Service.Upload(key, content, contentTypeForFilename(fileHeader.Filename)); err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return key, nil
}

// PhotoURL generates a presigned URL for a stored photo
func (s *S3PhotoService) PhotoURL(key string) (string, error) {
	if key == "" {
		return "", nil
	}
	url, err := s.s3Service.GetPresignedURL(key)
	if err != nil {
		return "", fmt.Errorf("failed to generate photo URL: %w", err)
	}
	return url, nil
}

// DeletePhoto removes a photo from storage
func (s *S3PhotoService) DeletePhoto(key string) error {
	if key == "" {
		return nil
	}
	if err := s.s3Service.Delete(key); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}
