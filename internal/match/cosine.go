package match

import "math"

// Cosine returns the cosine similarity of two vectors. It is defined as 0
// when either vector has zero magnitude, which guards against a pathological
// embedding response, and when the vectors differ in length.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
