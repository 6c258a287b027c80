package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/carteiraIA/card-ocr-service/internal/auth"
	"github.com/carteiraIA/card-ocr-service/internal/db"
	"github.com/carteiraIA/card-ocr-service/internal/extract"
	"github.com/carteiraIA/card-ocr-service/internal/models"
	"github.com/carteiraIA/card-ocr-service/internal/ocr"
	"github.com/carteiraIA/card-ocr-service/internal/storage"
)

const (
	MaxUploadSize = 10 * 1024 * 1024 // 10MB
	Version       = "1.3.0"
)

// Handler handles HTTP requests for document processing
type Handler struct {
	config   *models.Config
	pipeline *extract.Pipeline
}

// NewHandler creates a new API handler
func NewHandler(config *models.Config) *Handler {
	return &Handler{
		config:   config,
		pipeline: extract.NewPipeline(db.NewOperatorRegistry()),
	}
}

// SetupRoutes configures the HTTP routes
func (h *Handler) SetupRoutes() *mux.Router {
	router := mux.NewRouter()

	// Document processing
	router.HandleFunc("/api/process-card", h.ProcessCard).Methods("POST")
	router.HandleFunc("/api/process-card/text", h.ProcessCardText).Methods("POST")
	router.HandleFunc("/api/process-identity", h.ProcessIdentity).Methods("POST")
	router.HandleFunc("/api/process-identity/text", h.ProcessIdentityText).Methods("POST")

	// Scan history
	router.HandleFunc("/api/scans", h.GetScans).Methods("GET")
	router.HandleFunc("/api/scan/{id}", h.GetScan).Methods("GET")
	router.HandleFunc("/api/scan/{id}", h.DeleteScan).Methods("DELETE")

	// Statistics
	router.HandleFunc("/api/stats", h.GetStats).Methods("GET")

	// Health check
	router.HandleFunc("/health", h.Health).Methods("GET")

	return router
}

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status      string            `json:"status"`
	Version     string            `json:"version"`
	Timestamp   string            `json:"timestamp"`
	Uptime      string            `json:"uptime"`
	Memory      MemoryStats       `json:"memory"`
	ImageMagick ServiceStatus     `json:"imageMagick"`
	Database    ServiceStatus     `json:"database"`
	Storage     ServiceStatus     `json:"storage"`
	OCR         map[string]string `json:"ocr"`
}

// MemoryStats represents memory usage statistics
type MemoryStats struct {
	Allocated string `json:"allocated"`
	Total     string `json:"total"`
	System    string `json:"system"`
}

// ServiceStatus represents the status of a service dependency
type ServiceStatus struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

var startTime = time.Now()

// Health endpoint - enhanced for monitoring
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	imageMagickStatus := h.checkImageMagick()
	databaseStatus := h.checkDatabase()
	storageStatus := h.checkStorage()

	response := HealthResponse{
		Status:    "healthy",
		Version:   Version,
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(startTime).String(),
		Memory: MemoryStats{
			Allocated: fmt.Sprintf("%.2f MB", float64(m.Alloc)/1024/1024),
			Total:     fmt.Sprintf("%.2f MB", float64(m.TotalAlloc)/1024/1024),
			System:    fmt.Sprintf("%.2f MB", float64(m.Sys)/1024/1024),
		},
		ImageMagick: imageMagickStatus,
		Database:    databaseStatus,
		Storage:     storageStatus,
		OCR: map[string]string{
			"defaultProvider": h.config.OCR.DefaultProvider,
			"language":        h.config.OCR.Language,
		},
	}

	// Extraction works on raw text without any of these, so a missing
	// dependency degrades the service instead of taking it down.
	if !imageMagickStatus.Available {
		response.Status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}

// checkImageMagick verifies ImageMagick is available
func (h *Handler) checkImageMagick() ServiceStatus {
	cmd := exec.Command("convert", "-version")
	output, err := cmd.CombinedOutput()

	if err != nil {
		return ServiceStatus{
			Available: false,
			Error:     "imagemagick not found or not executable",
		}
	}

	version := "unknown"
	lines := strings.Split(string(output), "\n")
	if len(lines) > 0 {
		version = strings.TrimSpace(lines[0])
	}

	return ServiceStatus{
		Available: true,
		Version:   version,
	}
}

// checkDatabase verifies PostgreSQL connection
func (h *Handler) checkDatabase() ServiceStatus {
	if db.Pool == nil {
		return ServiceStatus{
			Available: false,
			Error:     "database pool not initialized",
		}
	}

	return ServiceStatus{
		Available: true,
		Version:   "PostgreSQL via PgBouncer",
	}
}

// checkStorage verifies MinIO connection
func (h *Handler) checkStorage() ServiceStatus {
	if storage.Client == nil {
		return ServiceStatus{
			Available: false,
			Error:     "storage client not initialized",
		}
	}

	return ServiceStatus{
		Available: true,
		Version:   "MinIO S3",
	}
}

// ProcessCard handles insurance card processing from an uploaded photo
func (h *Handler) ProcessCard(w http.ResponseWriter, r *http.Request) {
	h.processDocument(w, r, true)
}

// ProcessIdentity handles identity document processing from an uploaded photo
func (h *Handler) ProcessIdentity(w http.ResponseWriter, r *http.Request) {
	h.processDocument(w, r, false)
}

// processDocument runs the shared photo flow: upload, transcribe, extract,
// persist. The two document families differ only in which pipeline entry
// point runs.
func (h *Handler) processDocument(w http.ResponseWriter, r *http.Request, insurance bool) {
	w.Header().Set("Content-Type", "application/json")

	ctx := r.Context()
	requestStart := time.Now()

	// Get claims from JWT
	claims, err := auth.GetClaimsFromContext(ctx)
	if err != nil {
		h.sendError(w, http.StatusUnauthorized, "unauthorized: "+err.Error())
		return
	}

	// Parse multipart form
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	err = r.ParseMultipartForm(MaxUploadSize)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "File too large or invalid form data")
		return
	}

	// Get file - accept both "file" and "image" field names
	file, header, err := r.FormFile("file")
	if err != nil {
		file, header, err = r.FormFile("image")
		if err != nil {
			h.sendError(w, http.StatusBadRequest, "No file provided (use 'file' or 'image' field)")
			return
		}
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	providerName := r.FormValue("ocrProvider")
	if providerName == "" {
		providerName = h.config.OCR.DefaultProvider
	}

	// Generate unique filename
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	filename := fmt.Sprintf("%s_%s%s",
		time.Now().Format("20060102_150405"),
		uuid.New().String()[:8],
		storage.GetFileExtension(contentType),
	)

	// Upload to MinIO (if configured)
	var imagenURL string
	if storage.Client != nil {
		imageReader := bytes.NewReader(imageData)
		imagenURL, err = storage.UploadDocumentImage(
			ctx,
			claims.EmpresaAlias,
			filename,
			imageReader,
			int64(len(imageData)),
			contentType,
		)
		if err != nil {
			// Log but don't fail - image storage is optional
			fmt.Printf("Warning: failed to upload image to MinIO: %v\n", err)
		}
	}

	// Optional preprocessing. Vision models read the original color image
	// best, so this is opt-in for glossy cards and washed-out photos.
	ocrInput := imageData
	switch r.FormValue("enhance") {
	case "glare":
		preprocessor := ocr.NewPreprocessor()
		if enhanced, err := preprocessor.PreprocessForGlare(imageData); err == nil {
			ocrInput = enhanced
		}
	case "true":
		preprocessor := ocr.NewPreprocessor()
		if enhanced, err := preprocessor.PreprocessImageFromBytes(imageData); err == nil {
			ocrInput = enhanced
		}
	}

	// Transcribe
	provider, err := h.createProvider(providerName, r.FormValue("model"))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	ocrStart := time.Now()
	rawText, err := provider.RecognizeText(ctx, ocrInput)
	ocrDuration := time.Since(ocrStart).Seconds()
	if err != nil {
		// An unreadable image still produces a structured failure, the
		// same shape the pipeline returns for empty text.
		fmt.Printf("Warning: transcription failed (%s): %v\n", provider.Name(), err)
		rawText = ""
	}

	h.respondWithResult(w, r, claims, insurance, rawText, imagenURL, ocrDuration, requestStart)
}

// TextRequest is the body of the text-only processing endpoints.
type TextRequest struct {
	Text string `json:"text"`
}

// ProcessCardText runs the insurance pipeline over pre-extracted text
func (h *Handler) ProcessCardText(w http.ResponseWriter, r *http.Request) {
	h.processText(w, r, true)
}

// ProcessIdentityText runs the identity pipeline over pre-extracted text
func (h *Handler) ProcessIdentityText(w http.ResponseWriter, r *http.Request) {
	h.processText(w, r, false)
}

func (h *Handler) processText(w http.ResponseWriter, r *http.Request, insurance bool) {
	w.Header().Set("Content-Type", "application/json")

	ctx := r.Context()
	requestStart := time.Now()

	claims, err := auth.GetClaimsFromContext(ctx)
	if err != nil {
		h.sendError(w, http.StatusUnauthorized, "unauthorized: "+err.Error())
		return
	}

	var req TextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.respondWithResult(w, r, claims, insurance, req.Text, "", 0, requestStart)
}

// respondWithResult runs the extraction pipeline, persists the scan and
// writes the JSON response shared by all four processing endpoints.
func (h *Handler) respondWithResult(
	w http.ResponseWriter,
	r *http.Request,
	claims *auth.Claims,
	insurance bool,
	rawText string,
	imagenURL string,
	ocrDuration float64,
	requestStart time.Time,
) {
	ctx := r.Context()

	scan := &db.Scan{
		ImagenURL: imagenURL,
		OCRRaw:    rawText,
	}
	var payload interface{}

	if insurance {
		result := h.pipeline.ProcessInsuranceCard(ctx, rawText)
		payload = result
		scan.Success = result.Success
		scan.Confidence = result.Confidence.Overall
		scan.DocumentType = string(models.DocumentTypeInsuranceCard)
		if result.Data != nil {
			scan.HolderName = result.Data.HolderName
			scan.Operator = result.Data.Operator
			scan.CardNumber = result.Data.CardNumber
		}
	} else {
		result := h.pipeline.ProcessIdentityDocument(ctx, rawText)
		payload = result
		scan.Success = result.Success
		scan.Confidence = result.Confidence.Overall
		scan.DocumentType = string(models.DocumentTypeIdentity)
		if result.Data != nil {
			scan.Subtype = result.Data.Subtype
			scan.HolderName = result.Data.FullName
			scan.DocumentNumber = result.Data.DocumentNumber
		}
	}

	// Persist the scan (if configured)
	savedToDB := false
	if db.Pool != nil {
		if resultJSON, err := json.Marshal(payload); err == nil {
			scan.ResultJSON = string(resultJSON)
		}
		if userID, err := uuid.Parse(claims.UserID); err == nil {
			scan.UsuarioID = userID
		}
		if err := db.SaveScan(ctx, claims.EmpresaAlias, scan); err != nil {
			fmt.Printf("Warning: failed to save scan to DB: %v\n", err)
		} else {
			savedToDB = true
		}
	}

	responseData := map[string]interface{}{
		"result":        payload,
		"ocrDuration":   ocrDuration,
		"totalDuration": time.Since(requestStart).Seconds(),
		"saved_to_db":   savedToDB,
		"empresa_alias": claims.EmpresaAlias,
	}
	if savedToDB {
		responseData["scan_id"] = scan.ID
	}
	if imagenURL != "" {
		responseData["imagen_url"] = imagenURL
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(responseData)
}

// GetScans returns recent scans for the authenticated user's tenant
func (h *Handler) GetScans(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx := r.Context()

	claims, err := auth.GetClaimsFromContext(ctx)
	if err != nil {
		h.sendError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if db.Pool == nil {
		h.sendError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	scans, err := db.GetScans(ctx, claims.EmpresaAlias, 100)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, fmt.Sprintf("failed to get scans: %v", err))
		return
	}

	// Generate presigned URLs for images
	for i := range scans {
		if scans[i].ImagenURL != "" && storage.Client != nil {
			if presignedURL, err := storage.GetPresignedURL(ctx, scans[i].ImagenURL); err == nil {
				scans[i].ImagenURL = presignedURL
			}
		}
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":       true,
		"scans":         scans,
		"count":         len(scans),
		"empresa_alias": claims.EmpresaAlias,
	})
}

// GetScan returns a single scan
func (h *Handler) GetScan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx := r.Context()
	claims, err := auth.GetClaimsFromContext(ctx)
	if err != nil {
		h.sendError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if db.Pool == nil {
		h.sendError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	vars := mux.Vars(r)
	scanID := vars["id"]

	scan, err := db.GetScanByID(ctx, claims.EmpresaAlias, scanID)
	if err != nil {
		fmt.Printf("GetScanByID error: %v (empresa=%s, id=%s)\n", err, claims.EmpresaAlias, scanID)
		h.sendError(w, http.StatusNotFound, fmt.Sprintf("scan not found: %v", err))
		return
	}

	if scan.ImagenURL != "" && storage.Client != nil {
		if presignedURL, err := storage.GetPresignedURL(ctx, scan.ImagenURL); err == nil {
			scan.ImagenURL = presignedURL
		}
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":       true,
		"scan":          scan,
		"empresa_alias": claims.EmpresaAlias,
	})
}

// DeleteScan removes a scan and its stored image
func (h *Handler) DeleteScan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx := r.Context()
	claims, err := auth.GetClaimsFromContext(ctx)
	if err != nil {
		h.sendError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if db.Pool == nil {
		h.sendError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	vars := mux.Vars(r)
	scanID := vars["id"]

	// Optionally: delete image from MinIO
	if storage.Client != nil {
		scan, err := db.GetScanByID(ctx, claims.EmpresaAlias, scanID)
		if err == nil && scan.ImagenURL != "" {
			// Delete image (ignore errors)
			_ = storage.DeleteImage(ctx, scan.ImagenURL)
		}
	}

	if err := db.DeleteScan(ctx, claims.EmpresaAlias, scanID); err != nil {
		h.sendError(w, http.StatusInternalServerError, "failed to delete scan")
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "scan deleted",
	})
}

// GetStats returns monthly statistics
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx := r.Context()
	claims, err := auth.GetClaimsFromContext(ctx)
	if err != nil {
		h.sendError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if db.Pool == nil {
		h.sendError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	stats, err := db.GetMonthlyStats(ctx, claims.EmpresaAlias)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":       true,
		"stats":         stats,
		"empresa_alias": claims.EmpresaAlias,
	})
}

// createProvider creates the appropriate OCR provider
func (h *Handler) createProvider(providerName, modelName string) (ocr.Provider, error) {
	switch providerName {
	case "openai":
		model := modelName
		if model == "" {
			model = h.config.OCR.OpenAI.Model
		}
		return ocr.NewOpenAIProvider(
			h.config.OCR.OpenAI.APIKey,
			h.config.OCR.OpenAI.BaseURL,
			model,
		), nil

	case "gemini":
		model := modelName
		if model == "" {
			model = h.config.OCR.Gemini.Model
		}
		return ocr.NewGeminiProvider(
			h.config.OCR.Gemini.APIKey,
			model,
		), nil

	default:
		return nil, fmt.Errorf("unsupported OCR provider: %s", providerName)
	}
}

// sendError sends an error response
func (h *Handler) sendError(w http.ResponseWriter, statusCode int, message string) {
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
