package usecase

import (
	"context"
	"log/slog"
)

// SendResult counts the outcome of a batch of messages.
type SendResult struct {
	Successful int
	Failed     int
}

// MessageUsecase sends free-form messages through the sink, e.g. for
// readiness checks.
type MessageUsecase struct {
	sink MessageSink
}

// NewMessageUsecase creates a MessageUsecase.
func NewMessageUsecase(sink MessageSink) *MessageUsecase {
	return &MessageUsecase{sink: sink}
}

// SendAll sends every message and counts successes and failures. A failure
// never stops the remaining messages.
func (u *MessageUsecase) SendAll(ctx context.Context, messages []string) SendResult {
	var res SendResult
	for _, m := range messages {
		if err := u.sink.Send(ctx, m); err != nil {
			slog.Warn("failed to send message", "error", err)
			res.Failed++
			continue
		}
		res.Successful++
	}
	return res
}
