package models

import "errors"

var (
	// * Data errors.
	ErrOrderNotFound      = errors.New("order not found")
	ErrCatalogUnavailable = errors.New("no restaurant data available")
	ErrInvalidTransition  = errors.New("order status can only move forward one step")

	// * Inference errors. Never surfaced to API callers.
	ErrInferenceNotConfigured = errors.New("remote inference is not configured")
	ErrEmptyReply             = errors.New("empty reply from inference provider")
	ErrUnparsableReply        = errors.New("no recommendation list found in reply")

	// * Authority errors.
	ErrUnauthorized = errors.New("authorization token is missing or invalid")
)
