package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// resendBatchLimit is the most messages Resend accepts per batch call.
const resendBatchLimit = 100

// ResendSender delivers messages via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender with the given API key and default from address.
// PRE: apiKey is a valid Resend API key
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

func (s *ResendSender) request(msg Message) *resend.SendEmailRequest {
	from := msg.From
	if from == "" {
		from = s.from
	}
	return &resend.SendEmailRequest{From: from, To: msg.To, Subject: msg.Subject, Html: msg.HTML}
}

// Send delivers one message.
// POST: returns the provider message id
func (s *ResendSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, s.request(msg))
	if err != nil {
		slog.Error("email_event", "event", "resend_failed", "to", msg.To, "error", err)
		return Receipt{}, fmt.Errorf("resend send: %w", err)
	}
	slog.Info("email_event", "event", "resend_sent", "message_id", sent.Id, "to", msg.To)
	return Receipt{MessageID: sent.Id, SentAt: time.Now()}, nil
}

// SendBatch delivers msgs in chunks of resendBatchLimit.
// POST: on error, receipts for the chunks already sent are returned
func (s *ResendSender) SendBatch(ctx context.Context, msgs []Message) ([]Receipt, error) {
	var receipts []Receipt
	for start := 0; start < len(msgs); start += resendBatchLimit {
		end := min(start+resendBatchLimit, len(msgs))

		params := make([]*resend.SendEmailRequest, 0, end-start)
		for _, m := range msgs[start:end] {
			params = append(params, s.request(m))
		}

		resp, err := s.client.Batch.SendWithContext(ctx, params)
		if err != nil {
			slog.Error("email_event", "event", "resend_batch_failed", "size", len(params), "error", err)
			return receipts, fmt.Errorf("resend batch send: %w", err)
		}
		for _, item := range resp.Data {
			receipts = append(receipts, Receipt{MessageID: item.Id, SentAt: time.Now()})
		}
	}
	return receipts, nil
}
