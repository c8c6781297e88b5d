package ports

import "context"

// Notifier delivers transactional email. From the core's perspective it is
// fire-and-forget: delivery failures after the primary mutation succeeded are
// logged, not propagated.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
