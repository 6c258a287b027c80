package ocr

import "context"

// Provider turns a document photo into raw text. Implementations must return
// the transcription only; all field extraction happens downstream in the
// deterministic pipeline.
type Provider interface {
	// RecognizeText transcribes every printed character in the image.
	RecognizeText(ctx context.Context, imageData []byte) (string, error)
	// Name identifies the provider in logs and health checks.
	Name() string
}

// transcriptionPrompt instructs vision models to act as a plain OCR engine.
// Field interpretation is explicitly forbidden so the same text always
// produces the same structured result.
const transcriptionPrompt = `Voce e um motor de OCR. Transcreva TODO o texto visivel na imagem deste documento brasileiro, exatamente como impresso, linha por linha.

REGRAS:
- Preserve a ordem das linhas e as quebras de linha.
- Preserve numeros, pontos, tracos e barras exatamente como aparecem.
- NAO interprete, NAO resuma, NAO traduza, NAO extraia campos.
- NAO adicione comentarios, marcadores ou formatacao markdown.
- Responda apenas com o texto transcrito.`
