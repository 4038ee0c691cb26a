package notify

import (
	"context"
	"encoding/json"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier hands fully composed emails to the delivery pipeline. Enqueue is
// called after the owning transaction has committed and must never surface an
// error back to the caller.
type Notifier interface {
	Enqueue(ctx context.Context, event events.EmailRequestedEvent)
}

type outboxNotifier struct {
	outboxRepo kafka.OutboxRepository
	logger     *zap.Logger
}

func NewOutboxNotifier(outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Notifier {
	l := zap.L().Named("notify.outbox")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notify.outbox")
	}
	return &outboxNotifier{outboxRepo: outboxRepo, logger: l}
}

func (n *outboxNotifier) Enqueue(ctx context.Context, event events.EmailRequestedEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("marshal email_requested event failed",
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
		return
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "notification",
		AggregateID:   event.CompanyID,
		EventType:     event.EventType,
		Topic:         events.EmailRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}

	if err := n.outboxRepo.Create(ctx, outboxEvent); err != nil {
		n.logger.Error("enqueue notification failed",
			zap.String("event_type", event.EventType),
			zap.String("company_id", event.CompanyID),
			zap.Error(err),
		)
		return
	}

	n.logger.Info("notification enqueued",
		zap.String("event_type", event.EventType),
		zap.String("outbox_id", outboxEvent.ID),
	)
}

type noopNotifier struct{}

// NewNoopNotifier is for tests and for deployments without a broker.
func NewNoopNotifier() Notifier { return noopNotifier{} }

func (noopNotifier) Enqueue(context.Context, events.EmailRequestedEvent) {}
