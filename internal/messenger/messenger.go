package messenger

import "context"

// SendResult reports the channel's verdict on one delivery attempt.
type SendResult struct {
	Success bool
	Message string
}

// Channel is the outbound message capability. Implementations may fail;
// callers decide whether a failed send is retried later.
type Channel interface {
	Name() string
	Send(ctx context.Context, address, body string) (SendResult, error)
}
