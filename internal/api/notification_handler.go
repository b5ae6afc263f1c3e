package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.chromium.org/luci/common/clock"

	"github.com/phrazzld/elbship/internal/api/shared"
	"github.com/phrazzld/elbship/internal/platform/sns"
	"github.com/phrazzld/elbship/internal/service"
)

// MaxDeliveryBytes bounds an SNS delivery body. SNS messages are at most
// 256 KiB; the envelope adds a little.
const MaxDeliveryBytes = 512 << 10

// DeliveryService handles decoded SNS deliveries.
type DeliveryService interface {
	HandleDelivery(ctx context.Context, messageType string, body []byte, receivedAt time.Time) (service.DeliveryOutcome, error)
}

// NotificationHandler serves the SNS webhook.
type NotificationHandler struct {
	service DeliveryService
	logger  *slog.Logger
}

// NewNotificationHandler creates a handler backed by svc.
func NewNotificationHandler(svc DeliveryService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: svc,
		logger:  logger.With("component", "notification_handler"),
	}
}

// HandleDelivery accepts GET and POST deliveries. The dispatch key is the
// x-amz-sns-message-type header. A handled delivery gets an empty 200.
func (h *NotificationHandler) HandleDelivery(w http.ResponseWriter, r *http.Request) {
	receivedAt := clock.Now(r.Context())
	messageType := r.Header.Get(sns.MessageTypeHeader)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxDeliveryBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			shared.RespondWithErrorAndLog(w, r, h.logger, http.StatusRequestEntityTooLarge, "Delivery too large", err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, h.logger, http.StatusBadRequest, "Could not read delivery", err)
		return
	}

	h.logger.Info("received sns delivery",
		"message_type", messageType,
		"content_type", r.Header.Get("Content-Type"),
		"trace_id", shared.GetTraceID(r.Context()))

	outcome, err := h.service.HandleDelivery(r.Context(), messageType, body, receivedAt)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, h.logger, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if outcome.Queued > 0 {
		h.logger.Debug("objects queued", "count", outcome.Queued)
	}
	shared.RespondEmpty(w, http.StatusOK)
}
