package modules

import (
	"slices"

	"github.com/iota-uz/iota-periods/modules/periods"
	"github.com/iota-uz/iota-periods/pkg/application"
)

var (
	BuiltInModules = []application.Module{
		periods.NewModule(nil),
	}

	NavLinks = slices.Concat(
		periods.NavItems,
	)
)

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
