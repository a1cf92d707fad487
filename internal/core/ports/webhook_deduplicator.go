package ports

import "context"

// WebhookDeduplicator remembers recently processed gateway notifications.
type WebhookDeduplicator interface {
	// MarkProcessed returns false when key was already marked within the
	// retention window.
	MarkProcessed(ctx context.Context, key string) (bool, error)

	// Forget drops a key so a failed processing attempt can be retried.
	Forget(ctx context.Context, key string) error
}
