package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/inmovista/inmovista/modules/core/domain/aggregates/operator"
	"github.com/inmovista/inmovista/modules/core/presentation/controllers/dtos"
	"github.com/inmovista/inmovista/modules/core/services"
	"github.com/inmovista/inmovista/pkg/application"
	"github.com/inmovista/inmovista/pkg/configuration"
	"github.com/inmovista/inmovista/pkg/httpapi"
	"github.com/inmovista/inmovista/pkg/middleware"
)

type OperatorsController struct {
	app       application.Application
	operators *services.OperatorService
	basePath  string
}

func NewOperatorsController(app application.Application) application.Controller {
	return &OperatorsController{
		app:       app,
		operators: app.Service(services.OperatorService{}).(*services.OperatorService),
		basePath:  "/admin/api/operators",
	}
}

func (c *OperatorsController) Key() string {
	return c.basePath
}

func (c *OperatorsController) Register(r *mux.Router) {
	conf := configuration.Use()
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(
		middleware.RequireOperator(conf.JWTSecret),
		middleware.RequireRole(string(operator.RoleAdmin)),
	)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)
}

func operatorToMap(op operator.Operator) map[string]any {
	return map[string]any{
		"id":        op.ID(),
		"handle":    op.Handle(),
		"role":      string(op.Role()),
		"active":    op.Active(),
		"contactId": op.ContactID(),
		"createdAt": op.CreatedAt(),
	}
}

func (c *OperatorsController) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := httpapi.Pagination(r)
	params := &operator.FindParams{
		Limit:  limit,
		Offset: offset,
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
	}
	ops, total, err := c.operators.GetPaginated(r.Context(), params)
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	items := make([]map[string]any, 0, len(ops))
	for _, op := range ops {
		items = append(items, operatorToMap(op))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	})
}

func (c *OperatorsController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	op, err := c.operators.GetByID(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, operatorToMap(op))
}

func (c *OperatorsController) Create(w http.ResponseWriter, r *http.Request) {
	var dto dtos.CreateOperatorDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "OPERATOR_INVALID_JSON", "invalid json", nil)
		return
	}
	if fields, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "OPERATOR_VALIDATION_FAILED", "validation failed", fields)
		return
	}

	op, err := c.operators.Create(r.Context(), services.CreateOperatorParams{
		Handle:   dto.Handle,
		Password: dto.Password,
		Role:     operator.Role(dto.Role),
		Name:     dto.Name,
		Surname:  dto.Surname,
		Email:    dto.Email,
		Phone:    dto.Phone,
	})
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, operatorToMap(op))
}

func (c *OperatorsController) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	var dto dtos.UpdateOperatorDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "OPERATOR_INVALID_JSON", "invalid json", nil)
		return
	}
	if fields, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "OPERATOR_VALIDATION_FAILED", "validation failed", fields)
		return
	}

	op, err := c.operators.Update(r.Context(), id, services.UpdateOperatorParams{
		Handle:   dto.Handle,
		Password: dto.Password,
		Role:     operator.Role(dto.Role),
		Active:   dto.Active,
		Name:     dto.Name,
		Surname:  dto.Surname,
		Email:    dto.Email,
		Phone:    dto.Phone,
	})
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, operatorToMap(op))
}

func (c *OperatorsController) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err := c.operators.Delete(r.Context(), id); err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}
