package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyFile indicates an upload with no bytes.
	ErrEmptyFile = errors.New("file is empty")

	// ErrFileTooLarge indicates an upload above the configured size limit.
	ErrFileTooLarge = errors.New("file exceeds maximum size")

	// ErrEmptyQuery indicates a blank or whitespace-only search query.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrUnsupportedType indicates a media type with no extraction strategy.
	ErrUnsupportedType = errors.New("unsupported media type")

	// ErrLLMUnavailable indicates the language model service is not
	// configured. Features requiring it degrade to their fallbacks.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrOCRUnavailable indicates the OCR capability is not configured.
	ErrOCRUnavailable = errors.New("OCR service unavailable")

	// ErrStorage indicates a blob store I/O failure. Fatal for the
	// current operation and never masked by a fallback.
	ErrStorage = errors.New("storage failure")
)
