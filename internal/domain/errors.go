package domain

import "errors"

// Error kinds reported by the pipeline. Components wrap these with
// fmt.Errorf("...: %w", ...); surfaces match with errors.Is.
var (
	// ErrCredentialMissing means the provider API key environment variable is
	// empty. Raised at provider construction, before any data is read.
	ErrCredentialMissing = errors.New("credential missing")

	// ErrDataNotFound means the dataset file does not exist.
	ErrDataNotFound = errors.New("dataset not found")

	// ErrDataMalformed means the dataset exists but cannot be parsed, or is
	// missing required structure.
	ErrDataMalformed = errors.New("dataset malformed")

	// ErrIndexBuildFailed means embedding or storing vectors failed and no
	// usable index exists.
	ErrIndexBuildFailed = errors.New("index build failed")

	// ErrIndexNotReady means a question arrived before a successful build.
	ErrIndexNotReady = errors.New("index not ready")

	// ErrQueryFailed means retrieval or generation failed for one question.
	// The index stays usable; the question can simply be resubmitted.
	ErrQueryFailed = errors.New("query failed")
)
