package embedding

import (
	"context"
	"strings"
)

// Provider defines the interface for embedding generation
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	// Dimensions reports the length of the vectors this provider emits.
	Dimensions() int
	// Name identifies the provider in logs.
	Name() string
	Close() error
}

// maxTitleChars caps the text sent to embedding APIs. Issue titles are
// normally short; the cap guards against pathological ones.
const maxTitleChars = 2000

// PrepareTitle normalizes an issue title for embedding
func PrepareTitle(title string) string {
	return TruncateText(CleanText(title), maxTitleChars)
}

// TruncateText truncates text to maxLen characters
func TruncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "..."
}

// CleanText removes excessive whitespace from text
func CleanText(text string) string {
	text = strings.TrimSpace(text)
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
