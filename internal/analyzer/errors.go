package analyzer

import "errors"

// ErrGenerationFailed marks failures of the free-text report sections
// (bullets, keywords, summary, pitch). The deterministic score is never
// produced under this error.
var ErrGenerationFailed = errors.New("generation failed")
