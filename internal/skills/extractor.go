package skills

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Source is the external text-understanding capability. It returns candidate
// skill labels for a block of free text. Labels may arrive with inconsistent
// casing, stray whitespace or blank entries; the Extractor cleans them up.
type Source interface {
	ExtractSkills(ctx context.Context, text string) ([]string, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, text string) ([]string, error)

func (f SourceFunc) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	return f(ctx, text)
}

// Extractor turns raw text into a normalized, deduplicated skill Set.
type Extractor struct {
	source Source
	logger *zap.Logger
}

func NewExtractor(source Source, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{source: source, logger: logger}
}

// Extract validates the input, invokes the capability and normalizes its
// output. An empty capability result yields an empty Set, not an error; a
// capability failure is surfaced as ErrExtractionFailed.
func (e *Extractor) Extract(ctx context.Context, text string) (*Set, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text must not be empty", ErrInvalidInput)
	}

	labels, err := e.source.ExtractSkills(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	set := NewSet(labels...)

	if dropped := len(labels) - set.Len(); dropped > 0 {
		e.logger.Debug("dropped blank or duplicate skill labels",
			zap.Int("received", len(labels)),
			zap.Int("kept", set.Len()),
		)
	}

	return set, nil
}
