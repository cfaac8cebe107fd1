package crm

import (
	"embed"

	catalogpersistence "github.com/inmovista/inmovista/modules/catalog/infrastructure/persistence"
	"github.com/inmovista/inmovista/modules/crm/handlers"
	"github.com/inmovista/inmovista/modules/crm/infrastructure/persistence"
	"github.com/inmovista/inmovista/modules/crm/presentation/controllers"
	"github.com/inmovista/inmovista/modules/crm/services"
	"github.com/inmovista/inmovista/pkg/application"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles, "infrastructure/persistence/schema")

	leadRepo := persistence.NewLeadRepository(app.Capabilities())
	listingRepo := catalogpersistence.NewListingRepository()

	app.RegisterServices(
		services.NewLeadService(
			leadRepo,
			listingRepo,
			app.LeadLimiter(),
			app.Capabilities(),
			app.EventPublisher(),
		),
	)

	app.RegisterControllers(
		controllers.NewLeadsController(app),
		controllers.NewLeadsAdminController(app),
	)
	handlers.RegisterLeadEventHandlers(app)

	return nil
}

func (m *Module) Name() string {
	return "crm"
}
