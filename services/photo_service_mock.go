package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"

	"github.com/Kinotsolarpower/Wash-GoPRO/utils"
)

// MockPhotoService is a mock implementation of PhotoService for testing
type MockPhotoService struct {
	uploaded map[string][]byte
	mu       sync.RWMutex
}

// NewMockPhotoService creates a new mock photo service
func NewMockPhotoService() *MockPhotoService {
	return &MockPhotoService{uploaded: make(map[string][]byte)}
}

// SetAsMockForTesting sets this mock as the global photo service instance
func (m *MockPhotoService) SetAsMockForTesting() {
	SetPhotoService(m)
}

// UploadPhoto simulates storing a photo
func (m *MockPhotoService) UploadPhoto(fileHeader *multipart.FileHeader, kind string) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("photos/%s/mock_%s", kind, fileHeader.Filename)
	m.mu.Lock()
	m.uploaded[key] = content
	m.mu.Unlock()

	return key, nil
}

// PhotoURL simulates generating an access URL
func (m *MockPhotoService) PhotoURL(key string) (string, error) {
	if key == "" {
		return "", nil
	}
	m.mu.RLock()
	_, exists := m.uploaded[key]
	m.mu.RUnlock()
	if !exists {
		return "", fmt.Errorf("photo not found in mock storage: %s", key)
	}
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", key), nil
}

// DeletePhoto simulates removing a photo
func (m *MockPhotoService) DeletePhoto(key string) error {
	m.mu.Lock()
	delete(m.uploaded, key)
	m.mu.Unlock()
	return nil
}

// PhotoExists checks whether a photo was stored (for testing assertions)
func (m *MockPhotoService) PhotoExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploaded[key]
	return exists
}
