package ocr

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Preprocessor enhances document photos before transcription. Plastic
// insurance cards and laminated identity documents suffer from glare and low
// text contrast; the ImageMagick pipeline mitigates both.
type Preprocessor struct{}

// NewPreprocessor creates a new image preprocessor
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

// PreprocessImage reads and enhances an image file
func (p *Preprocessor) PreprocessImage(imagePath string) ([]byte, error) {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, err
	}
	return p.PreprocessImageFromBytes(imageData)
}

// PreprocessImageFromBytes applies image enhancement filters
// Uses ImageMagick for: grayscale, contrast, denoise, sharpen
func (p *Preprocessor) PreprocessImageFromBytes(imageData []byte) ([]byte, error) {
	tmpDir := os.TempDir()
	inputFile := filepath.Join(tmpDir, fmt.Sprintf("card_in_%d.jpg", os.Getpid()))
	outputFile := filepath.Join(tmpDir, fmt.Sprintf("card_out_%d.jpg", os.Getpid()))

	if err := os.WriteFile(inputFile, imageData, 0644); err != nil {
		return imageData, nil // Fallback to original
	}
	defer os.Remove(inputFile)
	defer os.Remove(outputFile)

	// Pipeline: resize (if too large) -> grayscale -> contrast -> denoise -> sharpen
	args := []string{
		inputFile,
		// Resize if larger than 2000px (keeps aspect ratio)
		"-resize", "2000x2000>",
		// Convert to grayscale for better text contrast
		"-colorspace", "Gray",
		// Normalize histogram (auto-contrast)
		"-normalize",
		// Increase contrast
		"-contrast-stretch", "2%x1%",
		// Light denoise
		"-despeckle",
		// Sharpen text edges
		"-sharpen", "0x1",
		"-unsharp", "0x0.5+0.5+0",
		"-quality", "95",
		outputFile,
	}

	// Try 'magick' first (ImageMagick 7), fallback to 'convert' (ImageMagick 6)
	var cmd *exec.Cmd
	if _, err := exec.LookPath("magick"); err == nil {
		cmd = exec.Command("magick", args...)
	} else {
		cmd = exec.Command("convert", args...)
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// If ImageMagick fails, return original image
		fmt.Printf("[Preprocessor] ImageMagick failed: %v - %s\n", err, stderr.String())
		return imageData, nil
	}

	processed, err := os.ReadFile(outputFile)
	if err != nil {
		return imageData, nil // Fallback to original
	}

	fmt.Printf("[Preprocessor] Image enhanced: %d bytes -> %d bytes\n", len(imageData), len(processed))
	return processed, nil
}

// PreprocessForGlare applies harder processing for glossy plastic cards shot
// under direct light. Adaptive threshold handles the uneven highlight bands.
func (p *Preprocessor) PreprocessForGlare(imageData []byte) ([]byte, error) {
	tmpDir := os.TempDir()
	inputFile := filepath.Join(tmpDir, fmt.Sprintf("glare_in_%d.jpg", os.Getpid()))
	outputFile := filepath.Join(tmpDir, fmt.Sprintf("glare_out_%d.jpg", os.Getpid()))

	if err := os.WriteFile(inputFile, imageData, 0644); err != nil {
		return imageData, nil
	}
	defer os.Remove(inputFile)
	defer os.Remove(outputFile)

	args := []string{
		inputFile,
		"-resize", "2500x2500>",
		"-colorspace", "Gray",
		// Adaptive threshold (better for uneven lighting)
		"-lat", "50x50+10%",
		"-contrast-stretch", "5%x2%",
		"-despeckle",
		"-despeckle",
		"-sharpen", "0x2",
		"-quality", "95",
		outputFile,
	}

	var cmd *exec.Cmd
	if _, err := exec.LookPath("magick"); err == nil {
		cmd = exec.Command("magick", args...)
	} else {
		cmd = exec.Command("convert", args...)
	}

	if err := cmd.Run(); err != nil {
		// Fallback to standard preprocessing
		return p.PreprocessImageFromBytes(imageData)
	}

	processed, err := os.ReadFile(outputFile)
	if err != nil {
		return p.PreprocessImageFromBytes(imageData)
	}

	fmt.Printf("[Preprocessor] Glare-corrected: %d bytes -> %d bytes\n", len(imageData), len(processed))
	return processed, nil
}
