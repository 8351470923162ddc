// Package domain holds shared constants and sentinel errors.
package domain

import "errors"

// KeyPrefix namespaces every key written to the store.
const KeyPrefix = "gigdex:"

// Sentinel errors shared across use cases.
var (
	// ErrMissingTenant is returned when an operation lacks the mandatory entreprise id.
	ErrMissingTenant = errors.New("entreprise id is required")
	// ErrUnknownCollection is returned for a collection name absent from the schema registry.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrNotFound is returned when a persisted entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDocumentNotFound is returned when a document is missing from its collection.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidInput is returned for validation failures on caller-supplied data.
	ErrInvalidInput = errors.New("invalid input")
)
