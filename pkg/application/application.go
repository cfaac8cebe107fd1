package application

import (
	"embed"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/inmovista/inmovista/pkg/capabilities"
	"github.com/inmovista/inmovista/pkg/eventbus"
	"github.com/inmovista/inmovista/pkg/ratelimit"
)

// Controller registers a route subtree on the root router.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires a feature area (services, controllers, schema) into the app.
type Module interface {
	Name() string
	Register(app Application) error
}

type Application interface {
	Pool() *pgxpool.Pool
	Logger() *logrus.Logger
	EventPublisher() eventbus.EventBus
	Capabilities() *capabilities.Registry
	LeadLimiter() ratelimit.Store

	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
	RegisterControllers(controllers ...Controller)
	Controllers() []Controller
	Migrations() *MigrationRegistry
}

type ApplicationOptions struct {
	Pool         *pgxpool.Pool
	EventBus     eventbus.EventBus
	Logger       *logrus.Logger
	Capabilities *capabilities.Registry
	LeadLimiter  ratelimit.Store
}

func New(opts *ApplicationOptions) Application {
	return &application{
		pool:         opts.Pool,
		eventBus:     opts.EventBus,
		logger:       opts.Logger,
		capabilities: opts.Capabilities,
		leadLimiter:  opts.LeadLimiter,
		services:     make(map[reflect.Type]interface{}),
		migrations:   &MigrationRegistry{},
	}
}

type application struct {
	pool         *pgxpool.Pool
	eventBus     eventbus.EventBus
	logger       *logrus.Logger
	capabilities *capabilities.Registry
	leadLimiter  ratelimit.Store
	services     map[reflect.Type]interface{}
	controllers  []Controller
	migrations   *MigrationRegistry
}

func (a *application) Pool() *pgxpool.Pool                 { return a.pool }
func (a *application) Logger() *logrus.Logger              { return a.logger }
func (a *application) EventPublisher() eventbus.EventBus   { return a.eventBus }
func (a *application) Capabilities() *capabilities.Registry { return a.capabilities }
func (a *application) LeadLimiter() ratelimit.Store        { return a.leadLimiter }
func (a *application) Migrations() *MigrationRegistry      { return a.migrations }

func (a *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		a.services[serviceType] = service
	}
}

// Service looks a registered service up by example value, e.g.
// app.Service(services.LeadService{}).(*services.LeadService).
func (a *application) Service(service interface{}) interface{} {
	serviceType := reflect.TypeOf(service)
	svc, ok := a.services[serviceType]
	if !ok {
		panic("service not found: " + serviceType.String())
	}
	return svc
}

func (a *application) RegisterControllers(controllers ...Controller) {
	a.controllers = append(a.controllers, controllers...)
}

func (a *application) Controllers() []Controller {
	return a.controllers
}

// RegisterSchema is module sugar over Migrations().
func RegisterSchema(app Application, fs *embed.FS, dir string) {
	app.Migrations().RegisterSchema(fs, dir)
}
