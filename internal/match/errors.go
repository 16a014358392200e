package match

import "errors"

// ErrEmbeddingFailed marks a failure of the embedding capability: an upstream
// error, a timed-out call or a response that does not line up with the
// request. The scorer never returns a partial result on top of it.
var ErrEmbeddingFailed = errors.New("embedding failed")
