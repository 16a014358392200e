package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/jobfit/jobfit/internal/ai"
	"github.com/jobfit/jobfit/internal/utils"
)

//go:embed prompts/parse_resume.md
var parseResumePrompt string

//go:embed prompts/parse_job.md
var parseJobPrompt string

const defaultMaxLogLength = 200

// jsonGenerator is the part of the Generator the extractor and writer rely on.
type jsonGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Extractor parses resumes and job descriptions into structured profiles via
// Gemini. It implements ai.Parser.
type Extractor struct {
	generator jsonGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewExtractor(generator jsonGenerator, maxLogLength int, logger *zap.Logger) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (e *Extractor) ParseResume(ctx context.Context, text string) (*ai.ResumeProfile, error) {
	prompt := strings.ReplaceAll(parseResumePrompt, "{{RESUME_TEXT}}", text)

	raw, err := e.parse(ctx, "resume", prompt)
	if err != nil {
		return nil, err
	}

	profile := &ai.ResumeProfile{}
	if err := decodeJSON(raw, profile); err != nil {
		return nil, fmt.Errorf("resume profile: %w", err)
	}

	return profile, nil
}

func (e *Extractor) ParseJob(ctx context.Context, text string) (*ai.JobProfile, error) {
	prompt := strings.ReplaceAll(parseJobPrompt, "{{JOB_DESCRIPTION}}", text)

	raw, err := e.parse(ctx, "job description", prompt)
	if err != nil {
		return nil, err
	}

	profile := &ai.JobProfile{}
	if err := decodeJSON(raw, profile); err != nil {
		return nil, fmt.Errorf("job profile: %w", err)
	}

	return profile, nil
}

func (e *Extractor) parse(ctx context.Context, kind, prompt string) (string, error) {
	e.logger.Debug("gemini parse request",
		zap.String("kind", kind),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateJSON(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", kind, err)
	}

	e.logger.Debug("gemini parse response",
		zap.String("kind", kind),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	return raw, nil
}
