package ports

import "context"

// AttachmentSigner exchanges an attachment id for a short-lived signed URL.
// One upstream call per invocation; the signer never batches.
type AttachmentSigner interface {
	SignedURL(ctx context.Context, attachmentID string) (string, error)
}

// ViewableURL is the result of resolving an attachment for viewing.
type ViewableURL struct {
	URL string
	// Shared is true when this resolution rode on another in-flight or
	// just-completed request for the same attachment.
	Shared bool
}

// AttachmentService resolves attachment ids to viewable URLs on user
// interaction, deduplicating rapid repeat requests for the same id.
type AttachmentService interface {
	ResolveViewableURL(ctx context.Context, attachmentID string) (*ViewableURL, error)
}
