package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/inmovista/inmovista/modules/crm/services"
	"github.com/inmovista/inmovista/pkg/application"
)

// LeadEventsHandler writes the audit trail for lead lifecycle events.
type LeadEventsHandler struct {
	logger *logrus.Logger
}

func RegisterLeadEventHandlers(app application.Application) {
	handler := &LeadEventsHandler{logger: app.Logger()}
	app.EventPublisher().Subscribe(handler.onLeadCreated)
	app.EventPublisher().Subscribe(handler.onLeadUpdated)
}

func (h *LeadEventsHandler) onLeadCreated(event services.LeadCreatedEvent) {
	entry := h.logger.WithFields(logrus.Fields{
		"lead_id":    event.Result.ID(),
		"listing_id": event.Result.ListingID(),
		"channel":    event.Result.Channel(),
	})
	if assigned := event.Result.AssignedOperatorID(); assigned != nil {
		entry = entry.WithField("assigned_operator_id", *assigned)
	}
	entry.Info("audit: lead received")
}

func (h *LeadEventsHandler) onLeadUpdated(event services.LeadUpdatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"lead_id": event.Result.ID(),
		"state":   string(event.Result.State()),
	}).Info("audit: lead updated")
}
