package ports

import "context"

// EventPublisher notifies other product instances about auth activity.
type EventPublisher interface {
	PublishLogin(ctx context.Context, address, userID string) error
	PublishLogout(ctx context.Context, address, tokenID string) error
	PublishAuthorization(ctx context.Context, address, digest string) error
}
