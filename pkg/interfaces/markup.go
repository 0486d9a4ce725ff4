package interfaces

import "context"

// MarkupRenderer converts lesson theory source into display markup. The
// course engine implements the fixed rule pipeline (fenced code, bold,
// italic, inline code, line breaks); the goldmark engine renders full
// Markdown for hosts that opt in.
type MarkupRenderer interface {
	Render(ctx context.Context, source string) (string, error)
}

// ParseOptions customises the goldmark engine. The course engine ignores
// them.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}
