package match

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobfit/jobfit/internal/skills"
)

// Embedder is the external embedding capability. Implementations must return
// one vector per input text, in the same order; the scorer rejects responses
// that silently drop inputs.
type Embedder interface {
	EmbedStrings(ctx context.Context, texts []string) ([][]float64, error)
}

// Result is the scoring output for a resume/job skill pair.
type Result struct {
	Score   int      `json:"match_score"`
	Overlap []string `json:"skill_overlap"`
	Missing []string `json:"missing_skills"`
}

// Scorer classifies job skills against resume skills by embedding similarity.
// The acceptance threshold and the expected embedding dimensionality are
// injected configuration, not literals.
type Scorer struct {
	embedder   Embedder
	threshold  float64
	dimensions int
	logger     *zap.Logger
}

// NewScorer creates a Scorer. dimensions may be 0 to skip dimensionality
// validation of capability responses.
func NewScorer(embedder Embedder, threshold float64, dimensions int, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{
		embedder:   embedder,
		threshold:  threshold,
		dimensions: dimensions,
		logger:     logger,
	}
}

// Score embeds both skill sets and classifies every job skill as overlapping
// or missing. An empty job set yields the degenerate zero result. Output
// arrays follow the job set's first-seen order; overlap entries carry the
// display label of the best-matching resume skill.
func (s *Scorer) Score(ctx context.Context, resume, job *skills.Set) (*Result, error) {
	result := &Result{Overlap: []string{}, Missing: []string{}}

	if job.Len() == 0 {
		s.logger.Debug("no job skills detected, returning degenerate result")
		return result, nil
	}

	resumeVectors, jobVectors, err := s.embedSets(ctx, resume, job)
	if err != nil {
		return nil, err
	}

	resumeLabels := resume.Labels()
	overlapping := 0
	seenOverlap := make(map[string]bool)

	for i, jobLabel := range job.Labels() {
		best := -1
		bestScore := math.Inf(-1)
		for j := range resumeVectors {
			if sim := Cosine(jobVectors[i], resumeVectors[j]); sim > bestScore {
				bestScore = sim
				best = j
			}
		}

		if best >= 0 && bestScore >= s.threshold {
			overlapping++
			label := resumeLabels[best]
			if key, _ := skills.Normalize(label); !seenOverlap[key] {
				seenOverlap[key] = true
				result.Overlap = append(result.Overlap, label)
			}
			continue
		}

		result.Missing = append(result.Missing, jobLabel)
	}

	result.Score = clampScore(math.Round(100 * float64(overlapping) / float64(job.Len())))

	s.logger.Debug("scored skill sets",
		zap.Int("job_skills", job.Len()),
		zap.Int("resume_skills", resume.Len()),
		zap.Int("overlapping", overlapping),
		zap.Int("match_score", result.Score),
		zap.Float64("threshold", s.threshold),
	)

	return result, nil
}

// embedSets batches both skill sets through the embedding capability. The two
// calls are independent and run concurrently; both must succeed before
// scoring proceeds.
func (s *Scorer) embedSets(ctx context.Context, resume, job *skills.Set) (resumeVectors, jobVectors [][]float64, err error) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var embedErr error
		resumeVectors, embedErr = s.embed(ctx, resume)
		return embedErr
	})
	g.Go(func() error {
		var embedErr error
		jobVectors, embedErr = s.embed(ctx, job)
		return embedErr
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return resumeVectors, jobVectors, nil
}

func (s *Scorer) embed(ctx context.Context, set *skills.Set) ([][]float64, error) {
	if set.Len() == 0 {
		return nil, nil
	}

	texts := set.Labels()
	vectors, err := s.embedder.EmbedStrings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrEmbeddingFailed, len(vectors), len(texts))
	}

	if s.dimensions > 0 {
		for i, vector := range vectors {
			if len(vector) != s.dimensions {
				return nil, fmt.Errorf("%w: vector %d has %d dimensions, expected %d", ErrEmbeddingFailed, i, len(vector), s.dimensions)
			}
		}
	}

	return vectors, nil
}

func clampScore(score float64) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}
