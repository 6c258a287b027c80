package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/carteiraIA/card-ocr-service/api"
	"github.com/carteiraIA/card-ocr-service/internal/auth"
	"github.com/carteiraIA/card-ocr-service/internal/db"
	"github.com/carteiraIA/card-ocr-service/internal/models"
	"github.com/carteiraIA/card-ocr-service/internal/storage"
	"gopkg.in/yaml.v3"
)

func main() {
	// Initialize JWT
	if err := auth.Init(); err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}
	log.Println("JWT authentication initialized")

	// Initialize database connection pool
	if err := db.Init(); err != nil {
		log.Printf("Warning: Database not available: %v", err)
		log.Println("Running in extraction-only mode (no persistence, bootstrap operator table only)")
	} else {
		defer db.Close()
		log.Println("Database connection pool initialized")
	}

	// Initialize MinIO storage
	if err := storage.Init(); err != nil {
		log.Printf("Warning: MinIO storage not available: %v", err)
		log.Println("Document images will not be stored")
	} else {
		log.Println("MinIO storage initialized")
	}

	// Load configuration
	config, err := loadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Create API handler
	handler := api.NewHandler(config)
	router := handler.SetupRoutes()

	// Add login endpoint
	router.HandleFunc("/api/login", auth.LoginHandler).Methods("POST")

	// Wrap router with JWT middleware (skips /health and /api/login)
	protectedRouter := auth.JWTMiddleware(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	log.Printf("Starting Card OCR Service v%s on %s", api.Version, addr)
	log.Printf("Default OCR Provider: %s", config.OCR.DefaultProvider)
	log.Printf("Database: %v", db.Pool != nil)
	log.Printf("Storage: %v", storage.Client != nil)
	log.Printf("Endpoints:")
	log.Printf("  POST http://%s/api/login                  - Authenticate", addr)
	log.Printf("  POST http://%s/api/process-card           - Process insurance card photo (requires JWT)", addr)
	log.Printf("  POST http://%s/api/process-card/text      - Process insurance card text (requires JWT)", addr)
	log.Printf("  POST http://%s/api/process-identity       - Process identity document photo (requires JWT)", addr)
	log.Printf("  POST http://%s/api/process-identity/text  - Process identity document text (requires JWT)", addr)
	log.Printf("  GET  http://%s/api/scans                  - Get recent scans (requires JWT)", addr)
	log.Printf("  GET  http://%s/api/scan/{id}              - Get single scan (requires JWT)", addr)
	log.Printf("  DELETE http://%s/api/scan/{id}            - Delete scan (requires JWT)", addr)
	log.Printf("  GET  http://%s/api/stats                  - Get monthly stats (requires JWT)", addr)
	log.Printf("  GET  http://%s/health                     - Health check", addr)

	if err := http.ListenAndServe(addr, protectedRouter); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func loadConfig(path string) (*models.Config, error) {
	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var config models.Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables if present
	if port := os.Getenv("PORT"); port != "" {
		fmt.Sscanf(port, "%d", &config.Port)
	}
	if host := os.Getenv("HOST"); host != "" {
		config.Host = host
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.OCR.OpenAI.APIKey = apiKey
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.OCR.Gemini.APIKey = apiKey
	}
	if provider := os.Getenv("OCR_PROVIDER"); provider != "" {
		config.OCR.DefaultProvider = provider
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.OCR.OpenAI.BaseURL = baseURL
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		config.OCR.OpenAI.Model = model
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.OCR.Gemini.Model = model
	}

	return &config, nil
}
