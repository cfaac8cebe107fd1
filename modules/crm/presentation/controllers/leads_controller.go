package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inmovista/inmovista/modules/crm/presentation/controllers/dtos"
	"github.com/inmovista/inmovista/modules/crm/services"
	"github.com/inmovista/inmovista/pkg/application"
	"github.com/inmovista/inmovista/pkg/httpapi"
)

// LeadsController exposes the public intake endpoint. No authentication:
// anyone browsing the catalog may submit.
type LeadsController struct {
	app      application.Application
	leads    *services.LeadService
	basePath string
}

func NewLeadsController(app application.Application) application.Controller {
	return &LeadsController{
		app:      app,
		leads:    app.Service(services.LeadService{}).(*services.LeadService),
		basePath: "/api/leads",
	}
}

func (c *LeadsController) Key() string {
	return c.basePath
}

func (c *LeadsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.Submit).Methods(http.MethodPost)
}

func (c *LeadsController) Submit(w http.ResponseWriter, r *http.Request) {
	var dto dtos.SubmitLeadDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "LEAD_INVALID_JSON", "invalid json", nil)
		return
	}
	if fields, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "LEAD_VALIDATION_FAILED", "validation failed", fields)
		return
	}

	_, err := c.leads.Submit(r.Context(), &services.SubmitLeadParams{
		ListingID: dto.ListingID,
		Name:      dto.Name,
		Phone:     dto.Phone,
		Email:     dto.Email,
		Message:   dto.Message,
		Channel:   dto.Channel,
		Honeypot:  dto.Website,
	})
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}

	// Honeypot hits land here too. The body carries no id so the trapped
	// response is indistinguishable from an accepted one.
	_ = httpapi.WriteJSON(w, http.StatusCreated, map[string]any{
		"received": true,
	})
}
