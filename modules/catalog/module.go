package catalog

import (
	"embed"

	"github.com/inmovista/inmovista/modules/catalog/handlers"
	"github.com/inmovista/inmovista/modules/catalog/infrastructure/persistence"
	"github.com/inmovista/inmovista/modules/catalog/infrastructure/storage"
	"github.com/inmovista/inmovista/modules/catalog/presentation/controllers"
	"github.com/inmovista/inmovista/modules/catalog/services"
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
	listingRepo := persistence.NewListingRepository()
	photoRepo := persistence.NewPhotoRepository()
	regionRepo := persistence.NewRegionRepository()
	blobs := storage.NewDiskStorage(conf.UploadsPath, conf.UploadsBaseURL)

	app.RegisterServices(
		services.NewListingService(listingRepo, photoRepo, app.EventPublisher()),
		services.NewPhotoService(photoRepo, listingRepo, blobs, app.EventPublisher()),
		services.NewRegionService(regionRepo),
	)

	app.RegisterControllers(
		controllers.NewCatalogController(app),
		controllers.NewListingsAdminController(app),
	)
	handlers.RegisterCatalogEventHandlers(app)

	return nil
}

func (m *Module) Name() string {
	return "catalog"
}
