package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/inmovista/inmovista/modules/catalog/services"
	"github.com/inmovista/inmovista/pkg/application"
)

// CatalogEventsHandler writes the audit trail for listing and photo changes.
type CatalogEventsHandler struct {
	logger *logrus.Logger
}

func RegisterCatalogEventHandlers(app application.Application) {
	handler := &CatalogEventsHandler{logger: app.Logger()}
	bus := app.EventPublisher()
	bus.Subscribe(handler.onListingCreated)
	bus.Subscribe(handler.onListingUpdated)
	bus.Subscribe(handler.onListingDeleted)
	bus.Subscribe(handler.onPhotosUploaded)
	bus.Subscribe(handler.onPhotoDeleted)
}

func (h *CatalogEventsHandler) onListingCreated(event services.ListingCreatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"listing_id": event.Result.ID(),
		"state":      string(event.Result.State()),
	}).Info("audit: listing created")
}

func (h *CatalogEventsHandler) onListingUpdated(event services.ListingUpdatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"listing_id": event.Result.ID(),
		"state":      string(event.Result.State()),
		"visible":    event.Result.Visible(),
	}).Info("audit: listing updated")
}

func (h *CatalogEventsHandler) onListingDeleted(event services.ListingDeletedEvent) {
	h.logger.WithField("listing_id", event.ID).Info("audit: listing deleted")
}

func (h *CatalogEventsHandler) onPhotosUploaded(event services.PhotoUploadedEvent) {
	h.logger.WithFields(logrus.Fields{
		"listing_id": event.ListingID,
		"count":      len(event.URLs),
	}).Info("audit: photos uploaded")
}

func (h *CatalogEventsHandler) onPhotoDeleted(event services.PhotoDeletedEvent) {
	h.logger.WithFields(logrus.Fields{
		"listing_id": event.ListingID,
		"photo_id":   event.PhotoID,
	}).Info("audit: photo deleted")
}
