package core

import (
	"embed"

	"github.com/inmovista/inmovista/modules/core/handlers"
	"github.com/inmovista/inmovista/modules/core/infrastructure/persistence"
	"github.com/inmovista/inmovista/modules/core/presentation/controllers"
	"github.com/inmovista/inmovista/modules/core/services"
	"github.com/inmovista/inmovista/pkg/application"
	"github.com/inmovista/inmovista/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles, "infrastructure/persistence/schema")

	conf := configuration.Use()
	operatorRepo := persistence.NewOperatorRepository(app.Capabilities())
	contactRepo := persistence.NewContactRepository()
	reconciliation := services.NewReconciliationService(operatorRepo, contactRepo, app.Capabilities())

	app.RegisterServices(
		reconciliation,
		services.NewOperatorService(operatorRepo, contactRepo, reconciliation, app.EventPublisher()),
		services.NewAuthService(operatorRepo, reconciliation, conf.JWTSecret, conf.SessionDuration),
	)

	app.RegisterControllers(
		controllers.NewAuthController(app),
		controllers.NewOperatorsController(app),
	)
	handlers.RegisterOperatorEventHandlers(app)

	return nil
}

func (m *Module) Name() string {
	return "core"
}
