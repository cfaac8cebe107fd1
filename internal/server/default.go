package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/inmovista/inmovista/pkg/application"
	"github.com/inmovista/inmovista/pkg/configuration"
	"github.com/inmovista/inmovista/pkg/httpapi"
	"github.com/inmovista/inmovista/pkg/middleware"
	"github.com/inmovista/inmovista/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	conf := options.Configuration

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger),
		middleware.WithPool(options.Pool),
	}

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   conf.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", conf.RequestIDHeader},
		AllowCredentials: true,
	})

	controllers := append(
		options.Application.Controllers(),
		newStaticController(conf.UploadsBaseURL, conf.UploadsPath),
	)

	return &server.HTTPServer{
		Controllers:             controllers,
		Middlewares:             middlewares,
		Wrappers:                []func(http.Handler) http.Handler{corsWrapper.Handler},
		NotFoundHandler:         notFound(),
		MethodNotAllowedHandler: methodNotAllowed(),
	}, nil
}

func notFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found", nil)
	})
}

func methodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})
}

// staticController serves uploaded photo files from disk under the same
// prefix the disk storage embeds in photo urls.
type staticController struct {
	prefix string
	dir    string
}

func newStaticController(prefix, dir string) application.Controller {
	return &staticController{prefix: prefix, dir: dir}
}

func (c *staticController) Key() string {
	return c.prefix
}

func (c *staticController) Register(r *mux.Router) {
	fileServer := http.StripPrefix(c.prefix, http.FileServer(http.Dir(c.dir)))
	r.PathPrefix(c.prefix + "/").Handler(fileServer).Methods(http.MethodGet)
}
