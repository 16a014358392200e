package gemini

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return s.GenerateContent(ctx, prompt)
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func TestParseResume(t *testing.T) {
	stub := &stubGenerator{response: `{
		"candidate_name": "Jordan Smith",
		"skills": ["Python", "SQL"],
		"experience": ["Built data pipelines"],
		"education": ["BSc Computer Science"]
	}`}
	extractor := NewExtractor(stub, 0, zap.NewNop())

	profile, err := extractor.ParseResume(context.Background(), "resume text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.CandidateName != "Jordan Smith" {
		t.Fatalf("unexpected candidate name: %q", profile.CandidateName)
	}
	if !reflect.DeepEqual(profile.Skills, []string{"Python", "SQL"}) {
		t.Fatalf("unexpected skills: %v", profile.Skills)
	}
	if !strings.Contains(stub.lastPrompt, "resume text") {
		t.Fatalf("expected resume text in prompt")
	}
}

func TestParseResumeHandlesCodeFences(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"skills\": [\"Go\"]}\n```"}
	extractor := NewExtractor(stub, 0, zap.NewNop())

	profile, err := extractor.ParseResume(context.Background(), "resume text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(profile.Skills, []string{"Go"}) {
		t.Fatalf("unexpected skills: %v", profile.Skills)
	}
}

func TestParseResumeFlattensObjectEntries(t *testing.T) {
	// Models occasionally return objects inside string lists; they are
	// flattened instead of failing the whole analysis.
	stub := &stubGenerator{response: `{
		"skills": ["Go", {"name": "Kubernetes", "level": "expert"}],
		"experience": [{"company": "Acme", "role": "Engineer"}]
	}`}
	extractor := NewExtractor(stub, 0, zap.NewNop())

	profile, err := extractor.ParseResume(context.Background(), "resume text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(profile.Skills) != 2 {
		t.Fatalf("expected 2 skills, got %v", profile.Skills)
	}
	if profile.Skills[0] != "Go" {
		t.Fatalf("unexpected first skill: %q", profile.Skills[0])
	}
	if !strings.Contains(profile.Skills[1], "Kubernetes") {
		t.Fatalf("expected flattened object to mention Kubernetes, got %q", profile.Skills[1])
	}
	if len(profile.Experience) != 1 || !strings.Contains(profile.Experience[0], "Acme") {
		t.Fatalf("expected flattened experience entry, got %v", profile.Experience)
	}
}

func TestParseJob(t *testing.T) {
	stub := &stubGenerator{response: `{
		"company_name": "Globex",
		"job_role": "Backend Engineer",
		"required_skills": ["Go", "PostgreSQL"],
		"preferred_skills": ["Kubernetes"],
		"responsibilities": ["Design services"]
	}`}
	extractor := NewExtractor(stub, 0, zap.NewNop())

	profile, err := extractor.ParseJob(context.Background(), "job text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.CompanyName != "Globex" || profile.JobRole != "Backend Engineer" {
		t.Fatalf("unexpected profile header: %+v", profile)
	}

	all := profile.AllSkills()
	expected := []string{"Go", "PostgreSQL", "Kubernetes"}
	if !reflect.DeepEqual(all, expected) {
		t.Fatalf("expected %v, got %v", expected, all)
	}
}

func TestParseJobSurfacesGeneratorFailure(t *testing.T) {
	stub := &stubGenerator{err: errors.New("upstream down")}
	extractor := NewExtractor(stub, 0, zap.NewNop())

	if _, err := extractor.ParseJob(context.Background(), "job text"); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseResumeRejectsMalformedJSON(t *testing.T) {
	stub := &stubGenerator{response: "not json at all"}
	extractor := NewExtractor(stub, 0, zap.NewNop())

	if _, err := extractor.ParseResume(context.Background(), "resume text"); err == nil {
		t.Fatal("expected error for malformed response")
	}
}
