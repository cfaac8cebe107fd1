package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inmovista/inmovista/modules/crm/domain/aggregates/lead"
	"github.com/inmovista/inmovista/modules/crm/presentation/controllers/dtos"
	"github.com/inmovista/inmovista/modules/crm/services"
	"github.com/inmovista/inmovista/pkg/application"
	"github.com/inmovista/inmovista/pkg/configuration"
	"github.com/inmovista/inmovista/pkg/httpapi"
	"github.com/inmovista/inmovista/pkg/middleware"
)

type LeadsAdminController struct {
	app      application.Application
	leads    *services.LeadService
	basePath string
}

func NewLeadsAdminController(app application.Application) application.Controller {
	return &LeadsAdminController{
		app:      app,
		leads:    app.Service(services.LeadService{}).(*services.LeadService),
		basePath: "/admin/api/leads",
	}
}

func (c *LeadsAdminController) Key() string {
	return c.basePath
}

func (c *LeadsAdminController) Register(r *mux.Router) {
	conf := configuration.Use()
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireOperator(conf.JWTSecret))

	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.Update).Methods(http.MethodPut)
}

func (c *LeadsAdminController) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := httpapi.Pagination(r)
	params := &lead.FindParams{
		Limit:  limit,
		Offset: offset,
		State:  lead.State(r.URL.Query().Get("state")),
	}
	if raw := r.URL.Query().Get("listingId"); raw != "" {
		listingID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "LEAD_INVALID_LISTING_FILTER", "listingId must be an integer", nil)
			return
		}
		params.ListingID = listingID
	}
	if params.State != "" && !params.State.Valid() {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "LEAD_INVALID_STATE", "unknown lead state", nil)
		return
	}

	items, total, err := c.leads.GetPaginated(r.Context(), params)
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"items": leadsToMaps(items),
		"total": total,
	})
}

func (c *LeadsAdminController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "LEAD_INVALID_ID", "invalid lead id", nil)
		return
	}
	l, err := c.leads.GetByID(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, leadToMap(l))
}

func (c *LeadsAdminController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "LEAD_INVALID_ID", "invalid lead id", nil)
		return
	}

	var dto dtos.UpdateLeadDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "LEAD_INVALID_JSON", "invalid json", nil)
		return
	}
	if fields, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "LEAD_VALIDATION_FAILED", "validation failed", fields)
		return
	}

	updated, err := c.leads.Update(r.Context(), id, &services.UpdateLeadParams{
		State:              lead.State(dto.State),
		Notes:              dto.Notes,
		AssignedOperatorID: dto.AssignedOperatorID,
		ClearAssignment:    dto.ClearAssignment,
	})
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, leadToMap(updated))
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
