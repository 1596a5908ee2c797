package repositories

import "context"

// SMSSender abstracts the outbound text-message channel used by the lead
// outreach flow.
type SMSSender interface {
	Send(ctx context.Context, to string, body string) error
}
