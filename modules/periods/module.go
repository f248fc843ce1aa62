package periods

import (
	"embed"

	"github.com/go-faster/errors"

	"github.com/iota-uz/iota-periods/modules/periods/domain/aggregates/period"
	"github.com/iota-uz/iota-periods/modules/periods/infrastructure/remote"
	"github.com/iota-uz/iota-periods/modules/periods/presentation/controllers"
	"github.com/iota-uz/iota-periods/modules/periods/services"
	"github.com/iota-uz/iota-periods/pkg/application"
	"github.com/iota-uz/iota-periods/pkg/configuration"
)

//go:embed presentation/locales/*.toml
var LocaleFiles embed.FS

type ModuleOptions struct {
	// Remote overrides the API settings read from the environment.
	Remote         *remote.Options
	FlashCookieKey string
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	remoteOpts := m.options.Remote
	flashKey := m.options.FlashCookieKey
	if remoteOpts == nil {
		conf := configuration.Use()
		opts := remote.OptionsFromConfig(conf)
		remoteOpts = &opts
		if flashKey == "" {
			flashKey = conf.FlashCookieKey
		}
	}
	client, err := remote.NewClient(*remoteOpts)
	if err != nil {
		return errors.Wrap(err, "periods api client")
	}

	bus := app.EventPublisher()
	app.RegisterLocaleFiles(&LocaleFiles)
	app.RegisterServices(
		services.NewPeriodService(remote.NewPeriodRepository(client), bus),
		services.NewPositionService(remote.NewPositionRepository(client), bus),
		services.NewPositionsStore(bus),
	)
	app.RegisterControllers(
		controllers.NewPeriodController(app, flashKey, client.Location()),
	)

	logger := app.Logger()
	bus.Subscribe(func(e *period.CreatedEvent) {
		logger.WithField("title", e.Data.Title).Info("period created")
	})
	bus.Subscribe(func(e *period.UpdatedEvent) {
		logger.WithField("id", e.ID).WithField("title", e.Data.Title).Info("period updated")
	})
	return nil
}

func (m *Module) Name() string {
	return "periods"
}
