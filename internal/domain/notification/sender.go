package notification

import "context"

// Sender delivers a notification over some channel (log, SMS, push).
// Implementations live in the infrastructure layer.
type Sender interface {
	Send(ctx context.Context, n *Notification) error
}
