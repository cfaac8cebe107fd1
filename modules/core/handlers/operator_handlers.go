package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/inmovista/inmovista/modules/core/services"
	"github.com/inmovista/inmovista/pkg/application"
)

// OperatorEventsHandler writes the audit trail for operator management.
// Password hashes never reach the log: only identity fields are recorded.
type OperatorEventsHandler struct {
	logger *logrus.Logger
}

func RegisterOperatorEventHandlers(app application.Application) {
	handler := &OperatorEventsHandler{logger: app.Logger()}
	bus := app.EventPublisher()
	bus.Subscribe(handler.onOperatorCreated)
	bus.Subscribe(handler.onOperatorUpdated)
	bus.Subscribe(handler.onOperatorDeleted)
}

func (h *OperatorEventsHandler) onOperatorCreated(event services.OperatorCreatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"operator_id": event.Result.ID(),
		"handle":      event.Result.Handle(),
		"role":        string(event.Result.Role()),
	}).Info("audit: operator created")
}

func (h *OperatorEventsHandler) onOperatorUpdated(event services.OperatorUpdatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"operator_id": event.Result.ID(),
		"handle":      event.Result.Handle(),
		"active":      event.Result.Active(),
	}).Info("audit: operator updated")
}

func (h *OperatorEventsHandler) onOperatorDeleted(event services.OperatorDeletedEvent) {
	h.logger.WithField("operator_id", event.ID).Info("audit: operator deleted")
}
