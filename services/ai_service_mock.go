package services

import (
	"sync"

	"github.com/Kinotsolarpower/Wash-GoPRO/models"
)

// MockAIService is a mock implementation of AIService for testing
type MockAIService struct {
	mu sync.Mutex

	Report         *models.DamageReport
	PackageDetails *models.ServiceDetails
	Translations   map[string]models.ServiceDetails // keyed by target locale
	Answer         string
	Err            error

	AnalyzeCalls   int
	GenerateCalls  int
	TranslateCalls int
	AnswerCalls    int
}

// NewMockAIService creates a new mock AI gateway
func NewMockAIService() *MockAIService {
	return &MockAIService{
		Translations: make(map[string]models.ServiceDetails),
	}
}

// SetAsMockForTesting sets this mock as the global AI gateway instance
func (m *MockAIService) SetAsMockForTesting() {
	SetAIService(m)
}

// AnalyzeVehicle returns the preset report or error
func (m *MockAIService) AnalyzeVehicle(exteriorJPEGBase64, interiorJPEGBase64, licensePlate string, packages []models.ServicePackage, locale string) (*models.DamageReport, error) {
	m.mu.Lock()
	m.AnalyzeCalls++
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Report, nil
}

// GeneratePackage returns the preset details or error
func (m *MockAIService) GeneratePackage(prompt string) (*models.ServiceDetails, error) {
	m.mu.Lock()
	m.GenerateCalls++
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.PackageDetails, nil
}

// TranslateDetails returns the preset translation per locale; identity for
// English and for locales without a preset.
func (m *MockAIService) TranslateDetails(details models.ServiceDetails, targetLocale string) (*models.ServiceDetails, error) {
	m.mu.Lock()
	m.TranslateCalls++
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if translated, ok := m.Translations[targetLocale]; ok {
		translated.Price = details.Price
		return &translated, nil
	}
	result := details
	return &result, nil
}

// AnswerQuery returns the preset answer or error
func (m *MockAIService) AnswerQuery(question string) (string, error) {
	m.mu.Lock()
	m.AnswerCalls++
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.Answer, nil
}
