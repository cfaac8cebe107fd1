package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/inmovista/inmovista/modules/core/presentation/controllers/dtos"
	"github.com/inmovista/inmovista/modules/core/services"
	"github.com/inmovista/inmovista/pkg/application"
	"github.com/inmovista/inmovista/pkg/httpapi"
)

type AuthController struct {
	app      application.Application
	auth     *services.AuthService
	basePath string
}

func NewAuthController(app application.Application) application.Controller {
	return &AuthController{
		app:      app,
		auth:     app.Service(services.AuthService{}).(*services.AuthService),
		basePath: "/api/auth",
	}
}

func (c *AuthController) Key() string {
	return c.basePath
}

func (c *AuthController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/login", c.Login).Methods(http.MethodPost)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var dto dtos.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "AUTH_INVALID_JSON", "invalid json", nil)
		return
	}
	if fields, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "AUTH_VALIDATION_FAILED", "validation failed", fields)
		return
	}

	session, err := c.auth.Login(r.Context(), dto.Handle, dto.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "AUTH_INVALID_CREDENTIALS", "invalid handle or password", nil)
		return
	}
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"token":     session.Token,
		"expiresAt": session.ExpiresAt.Format(time.RFC3339),
		"operator": map[string]any{
			"id":        session.Operator.ID(),
			"handle":    session.Operator.Handle(),
			"role":      string(session.Operator.Role()),
			"contactId": session.ContactID,
		},
	})
}
