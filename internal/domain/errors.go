package domain

import "errors"

// Sentinel errors used throughout the application.
// Handlers translate these to HTTP status codes via a single mapError function.
var (
	ErrMissingField       = errors.New("missing required field")
	ErrNoRecipients       = errors.New("no recipients found for class")
	ErrStoreUnavailable   = errors.New("roster store unavailable")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrAttachmentTooLarge = errors.New("attachment exceeds size ceiling")
	ErrSendTimeout        = errors.New("mail send timed out")
)
