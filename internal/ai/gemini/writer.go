package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/jobfit/jobfit/internal/ai"
)

//go:embed prompts/rewrite_bullets.md
var rewriteBulletsPrompt string

//go:embed prompts/ats_keywords.md
var atsKeywordsPrompt string

//go:embed prompts/summary.md
var summaryPrompt string

//go:embed prompts/pitch.md
var pitchPrompt string

const (
	summaryPoints = 4
	// Pitch inputs are trimmed to keep the prompt inside a sane token budget.
	maxPitchInputRunes = 2000
)

var pitchLengthHints = map[string]string{
	ai.PitchLengthShort:    "3-5 concise sentences",
	ai.PitchLengthExtended: "structured, up to one page",
}

var pitchToneHints = map[string]string{
	ai.PitchToneFormal: "professional, direct",
	ai.PitchToneCasual: "conversational, but respectful",
}

// Writer produces the generative report sections via Gemini. It implements
// ai.Writer.
type Writer struct {
	generator jsonGenerator
	logger    *zap.Logger
}

func NewWriter(generator jsonGenerator, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{generator: generator, logger: logger}
}

// ImproveBullets rewrites resume experience bullets for the target job. When
// the model answers with a JSON array it is used as-is; otherwise the answer
// is split into lines.
func (w *Writer) ImproveBullets(ctx context.Context, bullets []string, jobDescription string) ([]string, error) {
	if len(bullets) == 0 {
		return []string{}, nil
	}

	prompt := strings.ReplaceAll(rewriteBulletsPrompt, "{{BULLETS}}", bulletList(bullets))
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", jobDescription)

	raw, err := w.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("rewrite bullets: %w", err)
	}

	var improved []string
	if err := json.Unmarshal([]byte(extractJSON(raw)), &improved); err != nil {
		improved = splitLines(raw, 0)
	}

	return improved, nil
}

// SuggestKeywords reports which ATS keywords the resume already covers and
// which it lacks.
func (w *Writer) SuggestKeywords(ctx context.Context, resumeText, jobDescription string) (*ai.KeywordSuggestions, error) {
	prompt := strings.ReplaceAll(atsKeywordsPrompt, "{{JOB_DESCRIPTION}}", jobDescription)
	prompt = strings.ReplaceAll(prompt, "{{RESUME_TEXT}}", resumeText)

	raw, err := w.generator.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("suggest keywords: %w", err)
	}

	suggestions := &ai.KeywordSuggestions{}
	if err := decodeJSON(raw, suggestions); err != nil {
		return nil, fmt.Errorf("keyword suggestions: %w", err)
	}

	if suggestions.Present == nil {
		suggestions.Present = []string{}
	}
	if suggestions.Missing == nil {
		suggestions.Missing = []string{}
	}

	return suggestions, nil
}

// Summarize produces up to four summary points for the fit report.
func (w *Writer) Summarize(ctx context.Context, resumeText, jobDescription string) ([]string, error) {
	prompt := strings.ReplaceAll(summaryPrompt, "{{RESUME_TEXT}}", resumeText)
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", jobDescription)

	raw, err := w.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	return splitLines(raw, summaryPoints), nil
}

// Pitch writes a personalized outreach pitch. An extended pitch is always
// formal regardless of the requested tone.
func (w *Writer) Pitch(ctx context.Context, spec ai.PitchSpec) (string, error) {
	length := strings.ToLower(strings.TrimSpace(spec.Length))
	tone := strings.ToLower(strings.TrimSpace(spec.Tone))
	if length == ai.PitchLengthExtended {
		tone = ai.PitchToneFormal
	}

	lengthHint, ok := pitchLengthHints[length]
	if !ok {
		lengthHint = length
	}
	toneHint, ok := pitchToneHints[tone]
	if !ok {
		toneHint = tone
	}

	role := spec.JobRole
	if strings.TrimSpace(role) == "" {
		role = "the target role"
	}
	company := spec.CompanyName
	if strings.TrimSpace(company) == "" {
		company = "the target company"
	}

	replacements := [][2]string{
		{"{{LENGTH}}", lengthHint},
		{"{{TONE}}", toneHint},
		{"{{JOB_ROLE}}", role},
		{"{{COMPANY_NAME}}", company},
		{"{{SKILL_OVERLAP}}", strings.Join(spec.SkillOverlap, ", ")},
		{"{{MATCH_SCORE}}", strconv.Itoa(spec.MatchScore)},
		{"{{RESUME_HIGHLIGHTS}}", truncateRunes(spec.ResumeText, maxPitchInputRunes)},
		{"{{JOB_DESCRIPTION}}", truncateRunes(spec.JobDescription, maxPitchInputRunes)},
	}

	prompt := pitchPrompt
	for _, replacement := range replacements {
		prompt = strings.ReplaceAll(prompt, replacement[0], replacement[1])
	}

	w.logger.Debug("generating pitch",
		zap.String("length", length),
		zap.String("tone", tone),
	)

	pitch, err := w.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate pitch: %w", err)
	}

	return strings.TrimSpace(pitch), nil
}

func bulletList(bullets []string) string {
	lines := make([]string, 0, len(bullets))
	for _, bullet := range bullets {
		lines = append(lines, "- "+bullet)
	}
	return strings.Join(lines, "\n")
}

// splitLines splits a plain-text answer into trimmed bullet lines, keeping at
// most limit entries when limit is positive.
func splitLines(raw string, limit int) []string {
	lines := []string{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-* "))
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if limit > 0 && len(lines) == limit {
			break
		}
	}
	return lines
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
