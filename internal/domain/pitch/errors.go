package pitch

import "errors"

var (
	// ErrMissingPitchID indicates the input carried no identifier.
	ErrMissingPitchID = errors.New("pitch_id is required")

	// ErrNoSource indicates neither inline content nor a document
	// reference was provided.
	ErrNoSource = errors.New("no pitch content or document reference provided")

	// ErrNotFound indicates a document reference does not resolve to a
	// stored object.
	ErrNotFound = errors.New("document not found")

	// ErrUnsupportedFormat indicates the stored document type is outside
	// the supported set.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrQuotaExceeded indicates the AI provider returned a quota/limit
	// error (HTTP 429 or similar).
	ErrQuotaExceeded = errors.New("ai quota exceeded")
)
