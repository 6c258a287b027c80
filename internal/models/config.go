package models

// Config represents the service configuration
type Config struct {
	// Server config
	Port int    `yaml:"port"`
	Host string `yaml:"host"`

	// OCR collaborator config
	OCR OCRConfig `yaml:"ocr"`
}

// OCRConfig selects and configures the text-recognition provider
type OCRConfig struct {
	// Default provider: "gemini" or "openai"
	DefaultProvider string `yaml:"default_provider"`

	// Transcription language hint (default: "por")
	Language string `yaml:"language"`

	Gemini GeminiConfig `yaml:"gemini"`
	OpenAI OpenAIConfig `yaml:"openai"`
}

// GeminiConfig for Google Gemini vision transcription
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "gemini-1.5-flash"
}

// OpenAIConfig for OpenAI-compatible vision transcription
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"` // For custom endpoints
	Model   string `yaml:"model"`              // Default: "gpt-4o"
}
