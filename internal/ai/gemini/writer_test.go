package gemini

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/jobfit/jobfit/internal/ai"
)

func TestImproveBulletsParsesJSONArray(t *testing.T) {
	stub := &stubGenerator{response: `["Shipped X", "Led Y"]`}
	writer := NewWriter(stub, zap.NewNop())

	improved, err := writer.ImproveBullets(context.Background(), []string{"did x", "did y"}, "job")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(improved, []string{"Shipped X", "Led Y"}) {
		t.Fatalf("unexpected bullets: %v", improved)
	}

	if !strings.Contains(stub.lastPrompt, "- did x") {
		t.Fatalf("expected bullet list in prompt, got: %s", stub.lastPrompt)
	}
}

func TestImproveBulletsFallsBackToLines(t *testing.T) {
	stub := &stubGenerator{response: "- Shipped X\n- Led Y\n"}
	writer := NewWriter(stub, zap.NewNop())

	improved, err := writer.ImproveBullets(context.Background(), []string{"did x"}, "job")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(improved, []string{"Shipped X", "Led Y"}) {
		t.Fatalf("unexpected bullets: %v", improved)
	}
}

func TestImproveBulletsSkipsEmptyInput(t *testing.T) {
	stub := &stubGenerator{response: `["unused"]`}
	writer := NewWriter(stub, zap.NewNop())

	improved, err := writer.ImproveBullets(context.Background(), nil, "job")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(improved) != 0 {
		t.Fatalf("expected no bullets, got %v", improved)
	}
	if stub.lastPrompt != "" {
		t.Fatalf("generator must not be invoked for empty input")
	}
}

func TestSuggestKeywords(t *testing.T) {
	stub := &stubGenerator{response: `{"present": ["Go"], "missing": ["Kubernetes", "Terraform"]}`}
	writer := NewWriter(stub, zap.NewNop())

	suggestions, err := writer.SuggestKeywords(context.Background(), "resume", "job")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(suggestions.Present, []string{"Go"}) {
		t.Fatalf("unexpected present keywords: %v", suggestions.Present)
	}
	if !reflect.DeepEqual(suggestions.Missing, []string{"Kubernetes", "Terraform"}) {
		t.Fatalf("unexpected missing keywords: %v", suggestions.Missing)
	}
}

func TestSuggestKeywordsDefaultsToEmptySlices(t *testing.T) {
	stub := &stubGenerator{response: `{}`}
	writer := NewWriter(stub, zap.NewNop())

	suggestions, err := writer.SuggestKeywords(context.Background(), "resume", "job")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if suggestions.Present == nil || suggestions.Missing == nil {
		t.Fatalf("expected non-nil slices, got %+v", suggestions)
	}
}

func TestSummarizeCapsAtFourPoints(t *testing.T) {
	stub := &stubGenerator{response: "- one\n- two\n- three\n- four\n- five\n"}
	writer := NewWriter(stub, zap.NewNop())

	summary, err := writer.Summarize(context.Background(), "resume", "job")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(summary, []string{"one", "two", "three", "four"}) {
		t.Fatalf("unexpected summary: %v", summary)
	}
}

func TestPitchExtendedForcesFormalTone(t *testing.T) {
	stub := &stubGenerator{response: "Dear hiring team..."}
	writer := NewWriter(stub, zap.NewNop())

	_, err := writer.Pitch(context.Background(), ai.PitchSpec{
		ResumeText:     "resume",
		JobDescription: "job",
		Length:         ai.PitchLengthExtended,
		Tone:           ai.PitchToneCasual,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stub.lastPrompt, "professional, direct") {
		t.Fatalf("expected formal tone hint in prompt, got: %s", stub.lastPrompt)
	}
	if strings.Contains(stub.lastPrompt, "conversational") {
		t.Fatalf("casual tone must not survive an extended pitch")
	}
}

func TestPitchFillsPlaceholders(t *testing.T) {
	stub := &stubGenerator{response: "Hello!"}
	writer := NewWriter(stub, zap.NewNop())

	pitch, err := writer.Pitch(context.Background(), ai.PitchSpec{
		ResumeText:     "resume highlights",
		JobDescription: "job description",
		MatchScore:     67,
		SkillOverlap:   []string{"python", "sql"},
		Length:         ai.PitchLengthShort,
		Tone:           ai.PitchToneCasual,
		JobRole:        "Data Engineer",
		CompanyName:    "Globex",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pitch != "Hello!" {
		t.Fatalf("unexpected pitch: %q", pitch)
	}

	for _, expected := range []string{"Data Engineer", "Globex", "python, sql", "67/100", "3-5 concise sentences"} {
		if !strings.Contains(stub.lastPrompt, expected) {
			t.Fatalf("expected %q in prompt, got: %s", expected, stub.lastPrompt)
		}
	}
	if strings.Contains(stub.lastPrompt, "{{") {
		t.Fatalf("unresolved placeholder left in prompt: %s", stub.lastPrompt)
	}
}

func TestPitchTruncatesLongInputs(t *testing.T) {
	stub := &stubGenerator{response: "Hi"}
	writer := NewWriter(stub, zap.NewNop())

	long := strings.Repeat("a", maxPitchInputRunes+100)
	_, err := writer.Pitch(context.Background(), ai.PitchSpec{
		ResumeText:     long,
		JobDescription: "job",
		Length:         ai.PitchLengthShort,
		Tone:           ai.PitchToneFormal,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(stub.lastPrompt, long) {
		t.Fatalf("expected resume text to be truncated")
	}
	if !strings.Contains(stub.lastPrompt, strings.Repeat("a", maxPitchInputRunes)) {
		t.Fatalf("expected truncated resume text in prompt")
	}
}
