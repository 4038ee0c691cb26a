package consumer

import (
	"context"
	"encoding/json"

	"go-hrms/internal/events"
	"go-hrms/internal/notify"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeEmailRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	mailer notify.Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.email")
	log.Info("email consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("email consumer stopped")
				return
			}
			log.Error("fetch email message failed", zap.Error(err))
			continue
		}

		var event events.EmailRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode email_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if len(event.To) == 0 {
			log.Warn("email_requested event has no recipients, skipping",
				zap.String("event_type", event.EventType),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := mailer.Send(ctx, notify.Mail{
			To:      event.To,
			Cc:      event.Cc,
			Subject: event.Subject,
			Body:    event.Body,
		}); err != nil {
			// Delivery is best effort; commit anyway so one bad address
			// cannot block the partition.
			log.Error("send email failed",
				zap.String("event_type", event.EventType),
				zap.Strings("to", event.To),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit email message failed", zap.Error(err))
			continue
		}

		log.Info("email delivered",
			zap.String("event_type", event.EventType),
			zap.Strings("to", event.To),
		)
	}
}
