package triage

import "errors"

var (
	ErrEmptySymptoms  = errors.New("symptoms are required")
	ErrNotConfigured  = errors.New("triage service not configured")
	ErrNoDocumentText = errors.New("document contains no readable text")
)
