// Package email delivers club notifications through an external provider.
package email

import (
	"context"
	"time"
)

// Message is one outgoing email.
type Message struct {
	To      []string
	From    string // optional; the sender's default is used when empty
	Subject string
	HTML    string
}

// Receipt is the provider's acknowledgement of a message.
type Receipt struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers messages. SendBatch returns receipts in message order.
type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
	SendBatch(ctx context.Context, msgs []Message) ([]Receipt, error)
}
