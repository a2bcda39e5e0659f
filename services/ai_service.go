package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Kinotsolarpower/Wash-GoPRO/config"
	"github.com/Kinotsolarpower/Wash-GoPRO/models"
)

// ErrSafetyRejected is returned when the generative provider refuses a
// request on content-safety grounds. Handlers surface it with a dedicated
// error code so the client can show its dedicated message.
var ErrSafetyRejected = errors.New("request rejected by content safety filters")

// AIService is the gateway to the external generative-content provider.
// All four operations are synchronous request/response and independently
// failable; there is no retry or timeout policy beyond the HTTP client's.
type AIService interface {
	// AnalyzeVehicle inspects the two vehicle photos and returns a damage
	// report with a package suggestion drawn from allowedKeys.
	AnalyzeVehicle(exteriorJPEGBase64, interiorJPEGBase64, licensePlate string, packages []models.ServicePackage, locale string) (*models.DamageReport, error)

	// GeneratePackage builds service package details from a free-text prompt
	GeneratePackage(prompt string) (*models.ServiceDetails, error)

	// TranslateDetails localizes a package name and feature list. The source
	// locale (English) is returned unchanged.
	TranslateDetails(details models.ServiceDetails, targetLocale string) (*models.ServiceDetails, error)

	// AnswerQuery produces a short, unformatted customer-ready reply
	AnswerQuery(question string) (string, error)
}

var aiServiceInstance AIService

// InitAIService initializes the AI gateway against the configured endpoint
func InitAIService(cfg *config.Config) AIService {
	aiServiceInstance = &GeminiService{
		endpoint: cfg.AIEndpoint,
		apiKey:   cfg.AIAPIKey,
		model:    cfg.AIModel,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	return aiServiceInstance
}

// GetAIService returns the initialized AI gateway instance
func GetAIService() AIService {
	return aiServiceInstance
}

// SetAIService sets the AI gateway instance (primarily for testing)
func SetAIService(service AIService) {
	aiServiceInstance = service
}

// GeminiService implements AIService against a Gemini-style REST endpoint
type GeminiService struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

// Wire types for the generateContent call

type generatePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *generateInline `json:"inline_data,omitempty"`
}

type generateInline struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents          []generateContent `json:"contents"`
	SystemInstruction *generateContent  `json:"system_instruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string `json:"response_mime_type,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      generateContent `json:"content"`
		FinishReason string          `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// generate performs one generateContent round trip and returns the raw text
func (s *GeminiService) generate(req generateRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", strings.TrimSuffix(s.endpoint, "/"), s.model, s.apiKey)
	httpReq, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call generative endpoint: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if strings.Contains(strings.ToUpper(string(respBody)), "SAFETY") {
			return "", ErrSafetyRejected
		}
		return "", fmt.Errorf("generative endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode generative response: %w", err)
	}

	if parsed.PromptFeedback.BlockReason != "" {
		return "", ErrSafetyRejected
	}
	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("generative response contained no candidates")
	}
	if parsed.Candidates[0].FinishReason == "SAFETY" {
		return "", ErrSafetyRejected
	}

	var text strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}

// fenceRegex strips an optional markdown code fence wrapping a JSON payload
var fenceRegex = regexp.MustCompile("(?s)^```(\\w*)?\\s*\n?(.*?)\n?\\s*```$")

// unwrapFences removes a surrounding markdown code block, if present
func unwrapFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if match := fenceRegex.FindStringSubmatch(trimmed); match != nil {
		return strings.TrimSpace(match[2])
	}
	return trimmed
}

// localeToLanguageName maps a locale code to the language name used in prompts
func localeToLanguageName(locale string) string {
	switch locale {
	case models.LocaleNL:
		return "Dutch"
	case models.LocaleFR:
		return "French"
	default:
		return "English"
	}
}

// AnalyzeVehicle inspects the two vehicle photos and returns a damage report
func (s *GeminiService) AnalyzeVehicle(exteriorJPEGBase64, interiorJPEGBase64, licensePlate string, packages []models.ServicePackage, locale string) (*models.DamageReport, error) {
	allowedKeys := make([]string, 0, len(packages))
	for _, p := range packages {
		allowedKeys = append(allowedKeys, p.Key)
	}
	keysJSON, _ := json.Marshal(allowedKeys)
	languageName := localeToLanguageName(locale)

	exampleName := "recommended"
	if len(packages) > 0 {
		if details, ok := packages[0].Details[models.LocaleEN]; ok {
			exampleName = details.Name
		}
	}

	prompt := fmt.Sprintf(`
    You are an expert car detailer and sales assistant. Analyze the two provided images of a vehicle with license plate %s. Image 1 is the EXTERIOR, Image 2 is the INTERIOR.
    Your task is to provide a detailed analysis in JSON format. The JSON object MUST strictly follow this structure:
    {
      "make": "string",
      "model": "string",
      "color": "string",
      "persuasiveSummary": "string (A friendly, expert summary for the customer, linking the observations to the benefits of the recommended service. Max 2-3 sentences.)",
      "exteriorIssues": [
        {
          "area": "string (e.g., 'Driver side door', 'Front bumper')",
          "observation": "string (e.g., 'Noticeable road tar and bug splatter')",
          "recommendation": "string (e.g., 'Requires chemical decontamination')"
        }
      ],
      "interiorIssues": [
        {
          "area": "string (e.g., 'Driver's seat', 'Center console')",
          "observation": "string (e.g., 'Light dust and fingerprints')",
          "recommendation": "string (e.g., 'Suggests interior wipe-down and protection')"
        }
      ],
      "bestSuggestionKey": "string (use ONE of the allowed Suggestion Keys)",
      "riskScore": "number (a score from 1-100)"
    }

    ALLOWED SUGGESTION KEYS: %s

    IMPORTANT: The entire response, including all strings within the JSON object (make, model, color, summary, all fields in issues), must be in %s.

    YOUR TASKS:
    1.  From the EXTERIOR image, identify the vehicle's make, model, and primary color.
    2.  Carefully inspect both images. For each specific issue you find, create an issue object and add it to the appropriate 'exteriorIssues' or 'interiorIssues' array. Be specific about the area. If an area is clean, do not add an issue for it.
    3.  Based on the overall condition, determine the single most appropriate service package and provide its key in 'bestSuggestionKey'.
    4.  Write the 'persuasiveSummary'. This is crucial. It should be customer-facing. For example: "The analysis of your vehicle shows some typical buildup on the exterior and minor signs of use inside. Our '%s' package is perfectly suited to address these points, restoring the deep shine of the paintwork and refreshing the cabin for a like-new feel." (This example is in English, you must translate it and the full response to %s).
    5.  Calculate a 'riskScore' from 1 (low risk, clean, low-value car) to 100 (high risk, expensive car, severe damage). Consider the vehicle's perceived value (e.g., a Porsche is higher risk than a Toyota) and the severity/type of existing damages. A luxury car with deep scratches should have a very high score (e.g., 85-95). A clean economy car should have a very low score (e.g., 5-15).

    Return ONLY the raw JSON object, without any markdown formatting, comments, or explanations.
  `, licensePlate, string(keysJSON), languageName, exampleName, languageName)

	text, err := s.generate(generateRequest{
		Contents: []generateContent{{
			Parts: []generatePart{
				{Text: prompt},
				{InlineData: &generateInline{MimeType: "image/jpeg", Data: exteriorJPEGBase64}},
				{InlineData: &generateInline{MimeType: "image/jpeg", Data: interiorJPEGBase64}},
			},
		}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, err
	}

	return ParseDamageReport(text, allowedKeys)
}

// rawDamageReport mirrors DamageReport with loosely-typed fields so that a
// missing or mistyped value can be detected instead of silently zeroed.
type rawDamageReport struct {
	Make              string          `json:"make"`
	Model             string          `json:"model"`
	Color             string          `json:"color"`
	PersuasiveSummary string          `json:"persuasiveSummary"`
	ExteriorIssues    *[]models.Issue `json:"exteriorIssues"`
	InteriorIssues    *[]models.Issue `json:"interiorIssues"`
	BestSuggestionKey string          `json:"bestSuggestionKey"`
	RiskScore         *float64        `json:"riskScore"`
}

// ParseDamageReport validates and decodes an analysis response. A suggestion
// key outside the allowed set is replaced by the first allowed key.
func ParseDamageReport(text string, allowedKeys []string) (*models.DamageReport, error) {
	var raw rawDamageReport
	if err := json.Unmarshal([]byte(unwrapFences(text)), &raw); err != nil {
		return nil, fmt.Errorf("analysis response is not valid JSON: %w", err)
	}

	if raw.Make == "" || raw.Model == "" || raw.PersuasiveSummary == "" || raw.BestSuggestionKey == "" ||
		raw.ExteriorIssues == nil || raw.InteriorIssues == nil || raw.RiskScore == nil {
		return nil, fmt.Errorf("analysis response is missing required fields or has an invalid structure")
	}

	suggestion := raw.BestSuggestionKey
	allowed := false
	for _, key := range allowedKeys {
		if key == suggestion {
			allowed = true
			break
		}
	}
	if !allowed {
		suggestion = ""
		if len(allowedKeys) > 0 {
			suggestion = allowedKeys[0]
		}
	}

	return &models.DamageReport{
		Make:              raw.Make,
		Model:             raw.Model,
		Color:             raw.Color,
		PersuasiveSummary: raw.PersuasiveSummary,
		ExteriorIssues:    *raw.ExteriorIssues,
		InteriorIssues:    *raw.InteriorIssues,
		BestSuggestionKey: suggestion,
		RiskScore:         int(*raw.RiskScore),
	}, nil
}

// GeneratePackage builds service package details from a free-text prompt
func (s *GeminiService) GeneratePackage(prompt string) (*models.ServiceDetails, error) {
	generationPrompt := fmt.Sprintf(`
      You are a service package creator for a car detailing web app. Based on the user's prompt, create a JSON object for a single service package. The JSON MUST strictly follow this structure:
      {
        "name": "string (the package name in English)",
        "price": "number (the price in euros, as a number, not a string)",
        "features": ["string", "string", ...] (a list of key features in English)
      }
      User Prompt: "%s"

      IMPORTANT: Extract the name, price, and features from the prompt. Provide ONLY the raw JSON object. Do not add any markdown, comments, or explanations. If the prompt is unclear, create a sensible default package based on the words you can understand.
    `, prompt)

	text, err := s.generate(generateRequest{
		Contents:         []generateContent{{Parts: []generatePart{{Text: generationPrompt}}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, err
	}

	var raw struct {
		Name     string    `json:"name"`
		Price    *float64  `json:"price"`
		Features *[]string `json:"features"`
	}
	if err := json.Unmarshal([]byte(unwrapFences(text)), &raw); err != nil {
		return nil, fmt.Errorf("package generation response is not valid JSON: %w", err)
	}
	if raw.Name == "" || raw.Price == nil || raw.Features == nil {
		return nil, fmt.Errorf("package generation response is missing required fields or has an invalid structure")
	}

	return &models.ServiceDetails{
		Name:     raw.Name,
		Price:    *raw.Price,
		Features: *raw.Features,
	}, nil
}

// TranslateDetails localizes a package name and feature list
func (s *GeminiService) TranslateDetails(details models.ServiceDetails, targetLocale string) (*models.ServiceDetails, error) {
	if targetLocale == models.LocaleEN {
		result := details
		return &result, nil
	}

	source, _ := json.Marshal(map[string]interface{}{
		"name":     details.Name,
		"features": details.Features,
	})

	translationPrompt := fmt.Sprintf(`
      You are a translation assistant for a car detailing app. Translate the 'name' and each item in the 'features' array of the following JSON object into %s.
      Source JSON (English):
      %s

      Provide the translated data in a JSON object with the exact same structure as the source. Return ONLY the raw JSON object, without any markdown formatting.
    `, localeToLanguageName(targetLocale), string(source))

	text, err := s.generate(generateRequest{
		Contents:         []generateContent{{Parts: []generatePart{{Text: translationPrompt}}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, err
	}

	var raw struct {
		Name     string    `json:"name"`
		Features *[]string `json:"features"`
	}
	if err := json.Unmarshal([]byte(unwrapFences(text)), &raw); err != nil {
		return nil, fmt.Errorf("translation response for %s is not valid JSON: %w", targetLocale, err)
	}
	if raw.Name == "" || raw.Features == nil {
		return nil, fmt.Errorf("translation response for %s is invalid", targetLocale)
	}

	return &models.ServiceDetails{
		Name:     raw.Name,
		Price:    details.Price,
		Features: *raw.Features,
	}, nil
}

// assistantPreamble steers the model toward short, unformatted, customer-ready
// replies that fit a single spreadsheet cell. Carried over from the legacy
// support workflow, hence the Dutch wording.
const assistantPreamble = `JOUW ROL:
Jij bent een behulpzame, efficiënte en tekst-gebaseerde assistent voor onze app Wash&go PRO. Je taak is om vragen en verzoeken van klanten te verwerken en te beantwoorden op basis van de reeds ingegeven kennis.

INVOER:
Je ontvangt altijd platte tekst. Deze tekst is een vraag of een verzoek van een klant, direct afkomstig uit een cel van een spreadsheet. Er worden GEEN bestanden, codeblokken, of speciale formaten gestuurd, alleen pure, onopgemaakte tekst.

TAAK:
1. Lees de klantvraag zorgvuldig.
2. Beantwoord de vraag of voer het verzoek uit op een duidelijke en beknopte manier.
3. Als de vraag om specifieke informatie vraagt (bijv. een prijs, een procedure, een datum), geef deze dan direct.
4. Als je meer informatie nodig hebt om een accuraat antwoord te geven, stel dan een specifieke vervolgvraag.

UITVOERFORMAAT:
Jouw antwoord moet ALTIJD platte tekst zijn.
**Geef GEEN omkadering zoals "--- START OF FILE ---", "--- END OF FILE ---", of andere markers.**
**Geef GEEN codeblokken, JSON, XML, Markdown-tabellen of andere gestructureerde formaten, tenzij de vraag hier expliciet om vraagt.**
Concentreer je alleen op het pure, directe antwoord dat past in één cel van een spreadsheet.
Het antwoord moet direct en klaar zijn voor de klant.

---

VOORBEELDEN:

**Voorbeeld 1:**
Gebruikersvraag: Ik wil een kleine beurt voor mijn auto. Wat zijn de kosten?
Antwoord: Een kleine beurt kost gemiddeld €120. Dit omvat olie verversen, filters controleren en vloeistoffen bijvullen.

**Voorbeeld 2:**
Gebruikersvraag: Wat is de snelste manier om een auto te laten reinigen?
Antwoord: De snelste manier is onze express buitenreiniging, die ongeveer 30 minuten duurt.

**Voorbeeld 3:**
Gebruikersvraag: Wat zijn de openingstijden op zaterdag?
Antwoord: Op zaterdag zijn we geopend van 09:00 tot 17:00 uur.`

// AnswerQuery produces a short, unformatted customer-ready reply
func (s *GeminiService) AnswerQuery(question string) (string, error) {
	text, err := s.generate(generateRequest{
		Contents:          []generateContent{{Parts: []generatePart{{Text: question}}}},
		SystemInstruction: &generateContent{Parts: []generatePart{{Text: assistantPreamble}}},
	})
	if err != nil {
		return "", err
	}
	return text, nil
}
