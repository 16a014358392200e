package ai

import (
	"context"
	"strings"
)

// Pitch length and tone options accepted by Writer.Pitch.
const (
	PitchLengthShort    = "short"
	PitchLengthExtended = "extended"

	PitchToneFormal = "formal"
	PitchToneCasual = "casual"
)

// ResumeProfile is the structured understanding of a resume document.
type ResumeProfile struct {
	CandidateName string   `mapstructure:"candidate_name"`
	Skills        []string `mapstructure:"skills"`
	Experience    []string `mapstructure:"experience"`
	Education     []string `mapstructure:"education"`
}

// JobProfile is the structured understanding of a job description.
type JobProfile struct {
	CompanyName      string   `mapstructure:"company_name"`
	JobRole          string   `mapstructure:"job_role"`
	RequiredSkills   []string `mapstructure:"required_skills"`
	PreferredSkills  []string `mapstructure:"preferred_skills"`
	Responsibilities []string `mapstructure:"responsibilities"`
}

// AllSkills returns the required skills followed by the preferred ones. The
// scorer treats them as a single requirement set; deduplication happens in
// the skills package.
func (p *JobProfile) AllSkills() []string {
	if p == nil {
		return nil
	}
	all := make([]string, 0, len(p.RequiredSkills)+len(p.PreferredSkills))
	all = append(all, p.RequiredSkills...)
	all = append(all, p.PreferredSkills...)
	return all
}

// KeywordSuggestions groups ATS keywords by whether the resume already
// contains them.
type KeywordSuggestions struct {
	Present []string `json:"present" mapstructure:"present"`
	Missing []string `json:"missing" mapstructure:"missing"`
}

// PitchSpec describes a personalized outreach pitch request.
type PitchSpec struct {
	ResumeText     string
	JobDescription string
	MatchScore     int
	SkillOverlap   []string
	Length         string
	Tone           string
	JobRole        string
	CompanyName    string
}

// Parser is the text-understanding capability: it turns free text into
// structured profiles. Implemented by the Gemini adapter.
type Parser interface {
	ParseResume(ctx context.Context, text string) (*ResumeProfile, error)
	ParseJob(ctx context.Context, text string) (*JobProfile, error)
}

// Writer is the free-text generative capability producing the report sections
// that are not mechanically verifiable. Its output never influences the match
// score.
type Writer interface {
	ImproveBullets(ctx context.Context, bullets []string, jobDescription string) ([]string, error)
	SuggestKeywords(ctx context.Context, resumeText, jobDescription string) (*KeywordSuggestions, error)
	Summarize(ctx context.Context, resumeText, jobDescription string) ([]string, error)
	Pitch(ctx context.Context, spec PitchSpec) (string, error)
}

// ValidPitchLength reports whether the value is a supported pitch length.
func ValidPitchLength(length string) bool {
	switch strings.ToLower(strings.TrimSpace(length)) {
	case PitchLengthShort, PitchLengthExtended:
		return true
	}
	return false
}

// ValidPitchTone reports whether the value is a supported pitch tone.
func ValidPitchTone(tone string) bool {
	switch strings.ToLower(strings.TrimSpace(tone)) {
	case PitchToneFormal, PitchToneCasual:
		return true
	}
	return false
}
