package analyzer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobfit/jobfit/internal/ai"
	"github.com/jobfit/jobfit/internal/match"
	"github.com/jobfit/jobfit/internal/skills"
)

const defaultMaxTextLength = 20000

// Scorer is the deterministic matching stage of the pipeline.
type Scorer interface {
	Score(ctx context.Context, resume, job *skills.Set) (*match.Result, error)
}

// Report is the full fit analysis for a resume against a job description.
// The score, overlap and missing lists come from the deterministic scorer;
// everything else is generated prose.
type Report struct {
	MatchScore      int                    `json:"match_score"`
	SkillOverlap    []string               `json:"skill_overlap"`
	MissingSkills   []string               `json:"missing_skills"`
	ImprovedBullets []string               `json:"improved_bullets"`
	ATSKeywords     *ai.KeywordSuggestions `json:"ats_keywords"`
	Summary         []string               `json:"summary"`
	CandidateName   string                 `json:"candidate_name,omitempty"`
	CompanyName     string                 `json:"company_name,omitempty"`
	JobRole         string                 `json:"job_role,omitempty"`
}

// PitchRequest describes a standalone outreach pitch. Score and overlap come
// from a prior analysis; the analyzer does not recompute them.
type PitchRequest struct {
	ResumeText     string   `json:"resume_text"`
	JobDescription string   `json:"job_description"`
	MatchScore     int      `json:"match_score"`
	SkillOverlap   []string `json:"skill_overlap"`
	Length         string   `json:"length"`
	Tone           string   `json:"tone"`
	JobRole        string   `json:"job_role"`
	CompanyName    string   `json:"company_name"`
}

// Analyzer orchestrates the analysis pipeline: parse both documents, score the
// skill sets, then generate the prose sections.
type Analyzer struct {
	parser     ai.Parser
	writer     ai.Writer
	scorer     Scorer
	maxTextLen int
	logger     *zap.Logger
}

func New(parser ai.Parser, writer ai.Writer, scorer Scorer, maxTextLength int, logger *zap.Logger) *Analyzer {
	if maxTextLength <= 0 {
		maxTextLength = defaultMaxTextLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		parser:     parser,
		writer:     writer,
		scorer:     scorer,
		maxTextLen: maxTextLength,
		logger:     logger,
	}
}

// resumeSource parses the resume once and keeps the profile around so both
// skill extraction and the report header use a single model call.
type resumeSource struct {
	parser  ai.Parser
	profile *ai.ResumeProfile
}

func (s *resumeSource) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	profile, err := s.parser.ParseResume(ctx, text)
	if err != nil {
		return nil, err
	}
	s.profile = profile
	return profile.Skills, nil
}

type jobSource struct {
	parser  ai.Parser
	profile *ai.JobProfile
}

func (s *jobSource) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	profile, err := s.parser.ParseJob(ctx, text)
	if err != nil {
		return nil, err
	}
	s.profile = profile
	return profile.AllSkills(), nil
}

// Analyze runs the full pipeline. Both documents are parsed concurrently, the
// deterministic score is computed, then the generative sections run
// concurrently on top of it.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jobText string) (*Report, error) {
	resumeText, err := a.checkInput("resume", resumeText)
	if err != nil {
		return nil, err
	}
	jobText, err = a.checkInput("job description", jobText)
	if err != nil {
		return nil, err
	}

	resume := &resumeSource{parser: a.parser}
	job := &jobSource{parser: a.parser}

	var resumeSet, jobSet *skills.Set

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var extractErr error
		resumeSet, extractErr = skills.NewExtractor(resume, a.logger).Extract(gctx, resumeText)
		return extractErr
	})
	g.Go(func() error {
		var extractErr error
		jobSet, extractErr = skills.NewExtractor(job, a.logger).Extract(gctx, jobText)
		return extractErr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result, err := a.scorer.Score(ctx, resumeSet, jobSet)
	if err != nil {
		return nil, err
	}

	a.logger.Info("scored resume against job",
		zap.Int("match_score", result.Score),
		zap.Int("overlap", len(result.Overlap)),
		zap.Int("missing", len(result.Missing)),
	)

	report := &Report{
		MatchScore:    result.Score,
		SkillOverlap:  result.Overlap,
		MissingSkills: result.Missing,
	}
	if resume.profile != nil {
		report.CandidateName = resume.profile.CandidateName
	}
	if job.profile != nil {
		report.CompanyName = job.profile.CompanyName
		report.JobRole = job.profile.JobRole
	}

	var bullets []string
	if resume.profile != nil {
		bullets = resume.profile.Experience
	}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		improved, genErr := a.writer.ImproveBullets(gctx, bullets, jobText)
		if genErr != nil {
			return fmt.Errorf("%w: %v", ErrGenerationFailed, genErr)
		}
		report.ImprovedBullets = improved
		return nil
	})
	g.Go(func() error {
		keywords, genErr := a.writer.SuggestKeywords(gctx, resumeText, jobText)
		if genErr != nil {
			return fmt.Errorf("%w: %v", ErrGenerationFailed, genErr)
		}
		report.ATSKeywords = keywords
		return nil
	})
	g.Go(func() error {
		summary, genErr := a.writer.Summarize(gctx, resumeText, jobText)
		if genErr != nil {
			return fmt.Errorf("%w: %v", ErrGenerationFailed, genErr)
		}
		report.Summary = summary
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return report, nil
}

// Pitch generates a standalone outreach pitch from an earlier analysis.
func (a *Analyzer) Pitch(ctx context.Context, req PitchRequest) (string, error) {
	resumeText, err := a.checkInput("resume", req.ResumeText)
	if err != nil {
		return "", err
	}
	jobText, err := a.checkInput("job description", req.JobDescription)
	if err != nil {
		return "", err
	}

	length := strings.ToLower(strings.TrimSpace(req.Length))
	if length == "" {
		length = ai.PitchLengthShort
	}
	if !ai.ValidPitchLength(length) {
		return "", fmt.Errorf("%w: unsupported pitch length %q", skills.ErrInvalidInput, req.Length)
	}

	tone := strings.ToLower(strings.TrimSpace(req.Tone))
	if tone == "" {
		tone = ai.PitchToneFormal
	}
	if !ai.ValidPitchTone(tone) {
		return "", fmt.Errorf("%w: unsupported pitch tone %q", skills.ErrInvalidInput, req.Tone)
	}

	pitch, err := a.writer.Pitch(ctx, ai.PitchSpec{
		ResumeText:     resumeText,
		JobDescription: jobText,
		MatchScore:     req.MatchScore,
		SkillOverlap:   req.SkillOverlap,
		Length:         length,
		Tone:           tone,
		JobRole:        req.JobRole,
		CompanyName:    req.CompanyName,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return pitch, nil
}

func (a *Analyzer) checkInput(name, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %s text must not be empty", skills.ErrInvalidInput, name)
	}
	if length := utf8.RuneCountInString(text); length > a.maxTextLen {
		return "", fmt.Errorf("%w: %s text has %d characters, limit is %d", skills.ErrInvalidInput, name, length, a.maxTextLen)
	}
	return text, nil
}
