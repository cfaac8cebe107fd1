package modules

import (
	"github.com/inmovista/inmovista/modules/catalog"
	"github.com/inmovista/inmovista/modules/core"
	"github.com/inmovista/inmovista/modules/crm"
	"github.com/inmovista/inmovista/pkg/application"
)

// BuiltInModules is the full set in registration order. Core goes first so
// its schema versions and services exist before the dependent modules wire.
var BuiltInModules = []application.Module{
	core.NewModule(),
	catalog.NewModule(),
	crm.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range append(BuiltInModules, externalModules...) {
		if err := module.Register(app); err != nil {
			return err
		}
		app.Logger().WithField("module", module.Name()).Info("module registered")
	}
	return nil
}
