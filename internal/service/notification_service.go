package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/elbship/internal/events"
	"github.com/phrazzld/elbship/internal/platform/s3"
	"github.com/phrazzld/elbship/internal/platform/sns"
)

// SubscriptionConfirmer completes an SNS subscription handshake.
type SubscriptionConfirmer interface {
	Confirm(ctx context.Context, subscribeURL string) error
}

// DeliveryOutcome summarizes how a delivery was handled.
type DeliveryOutcome struct {
	// MessageType is the effective delivery type.
	MessageType string
	// Queued is the number of objects emitted for shipping.
	Queued int
}

// NotificationService turns SNS deliveries into shipping work.
type NotificationService struct {
	emitter   events.EventEmitter
	confirmer SubscriptionConfirmer
	scheme    string
	logger    *slog.Logger
}

// NewNotificationService creates a service building object URLs with scheme.
func NewNotificationService(
	emitter events.EventEmitter,
	confirmer SubscriptionConfirmer,
	scheme string,
	logger *slog.Logger,
) *NotificationService {
	return &NotificationService{
		emitter:   emitter,
		confirmer: confirmer,
		scheme:    scheme,
		logger:    logger.With("component", "notification_service"),
	}
}

// HandleDelivery processes one SNS delivery received at receivedAt.
// messageType comes from the delivery header; when it is empty the
// envelope's own Type is used. Unknown types are ignored.
func (s *NotificationService) HandleDelivery(
	ctx context.Context,
	messageType string,
	body []byte,
	receivedAt time.Time,
) (DeliveryOutcome, error) {
	env, err := sns.ParseEnvelope(body)
	if err != nil {
		return DeliveryOutcome{MessageType: messageType}, fmt.Errorf("%w: %w", ErrMalformedDelivery, err)
	}
	if messageType == "" {
		messageType = env.Type
	}
	outcome := DeliveryOutcome{MessageType: messageType}

	switch messageType {
	case sns.TypeSubscriptionConfirmation:
		if err := s.confirmer.Confirm(ctx, env.SubscribeURL); err != nil {
			return outcome, fmt.Errorf("%w: topic %s: %w", ErrConfirmation, env.TopicArn, err)
		}
		s.logger.Info("subscribed to topic", "topic_arn", env.TopicArn)
		return outcome, nil

	case sns.TypeUnsubscribeConfirmation:
		s.logger.Info("unsubscribed from topic", "topic_arn", env.TopicArn)
		return outcome, nil

	case sns.TypeNotification:
		objects, err := sns.ParseS3Event(env.Message)
		if err != nil {
			return outcome, fmt.Errorf("%w: message %s: %w", ErrMalformedDelivery, env.MessageID, err)
		}

		var errs []error
		for _, obj := range objects {
			url := s3.ObjectURL(s.scheme, obj.Bucket, obj.Key)
			event, err := events.NewLogObjectEvent(url, receivedAt)
			if err == nil {
				err = s.emitter.EmitEvent(ctx, event)
			}
			if err != nil {
				errs = append(errs, err)
				continue
			}
			outcome.Queued++
		}
		if len(errs) > 0 {
			return outcome, fmt.Errorf("%w: %d of %d objects: %w",
				ErrNotAccepted, len(errs), len(objects), errors.Join(errs...))
		}

		s.logger.Info("notification received",
			"message_id", env.MessageID,
			"objects", len(objects))
		return outcome, nil

	default:
		s.logger.Warn("ignoring sns delivery of unknown type",
			"message_type", messageType,
			"message_id", env.MessageID)
		return outcome, nil
	}
}
