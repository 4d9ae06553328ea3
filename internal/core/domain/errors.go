package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrMalformedMRZ indicates the machine-readable zone could not be parsed
	ErrMalformedMRZ = errors.New("malformed mrz")

	// ErrMissingDocument indicates a required document is absent from the set
	ErrMissingDocument = errors.New("missing document")

	// ErrUnknownDocumentType indicates the document could not be classified
	ErrUnknownDocumentType = errors.New("unknown document type")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")
)
