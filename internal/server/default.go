package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/iota-uz/iota-periods/pkg/application"
	"github.com/iota-uz/iota-periods/pkg/configuration"
	"github.com/iota-uz/iota-periods/pkg/constants"
	"github.com/iota-uz/iota-periods/pkg/httpapi"
	"github.com/iota-uz/iota-periods/pkg/middleware"
	"github.com/iota-uz/iota-periods/pkg/routing"
	"github.com/iota-uz/iota-periods/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
}

func loggerOptions(conf *configuration.Configuration) middleware.LoggerOptions {
	opts := middleware.DefaultLoggerOptions()
	opts.RequestIDHeader = conf.RequestIDHeader
	opts.RealIPHeader = conf.RealIPHeader
	return opts
}

func rateLimitStore(conf *configuration.Configuration, logger *logrus.Logger) limiter.Store {
	if conf.RateLimit.Storage == "redis" {
		store, err := middleware.NewRedisStore(conf.RateLimit.RedisURL)
		if err == nil {
			return store
		}
		logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
	}
	return middleware.NewMemoryStore()
}

// notFound answers JSON for api and ops paths and sends browsers back to the list.
func notFound(classifier *routing.Classifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") == "application/json" || classifier.ClassifyPath(r.URL.Path).IsJSON() {
			_ = httpapi.WriteError(w, r, http.StatusNotFound, "NOT_FOUND", http.StatusText(http.StatusNotFound))
			return
		}
		http.Redirect(w, r, "/periods", http.StatusFound)
	}
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_ = httpapi.WriteError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", http.StatusText(http.StatusMethodNotAllowed))
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration
	classifier := routing.NewClassifier(routing.RulesOrDefault(conf.OpsGuard.AllowlistPath, "server"))

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, loggerOptions(conf)), // creates the root span for each request
		middleware.Provide(constants.AppKey, app),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(conf.CorsOrigins...),

		middleware.OpsGuard(middleware.OpsGuardConfig{
			Options:      conf.OpsGuard,
			Production:   conf.GoAppEnvironment == configuration.Production,
			RealIPHeader: conf.RealIPHeader,
			Classifier:   classifier,
		}),
	}

	if conf.RateLimit.Enabled {
		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: conf.RateLimit.GlobalRPS,
				Store:             rateLimitStore(conf, options.Logger),
			}),
		)
	}

	app.RegisterMiddleware(middlewares...)

	return server.NewHTTPServer(
		app,
		notFound(classifier),
		http.HandlerFunc(methodNotAllowed),
	), nil
}
