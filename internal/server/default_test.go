package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-periods/pkg/application"
	"github.com/iota-uz/iota-periods/pkg/configuration"
	"github.com/iota-uz/iota-periods/pkg/metrics"
)

func newRouter(t *testing.T, env string) http.Handler {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	conf := &configuration.Configuration{
		GoAppEnvironment: env,
		CorsOrigins:      []string{"http://localhost:3200"},
		RequestIDHeader:  "X-Request-ID",
		RealIPHeader:     "X-Real-IP",
		OpsGuard:         configuration.OpsGuardOptions{Enabled: true, Token: "ops"},
	}
	app := application.New(&application.ApplicationOptions{Logger: logger})
	app.RegisterControllers(metrics.NewPrometheusController("/debug/prometheus"))

	srv, err := Default(&DefaultOptions{Logger: logger, Configuration: conf, Application: app})
	require.NoError(t, err)
	return srv.Router()
}

func TestDefault_NotFound(t *testing.T) {
	h := newRouter(t, "development")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/periods", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/periods/api/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body)
}

func TestDefault_OpsGuard(t *testing.T) {
	dev := newRouter(t, "development")
	w := httptest.NewRecorder()
	dev.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/prometheus", nil))
	require.Equal(t, http.StatusOK, w.Code)

	prod := newRouter(t, configuration.Production)
	w = httptest.NewRecorder()
	prod.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/prometheus", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/debug/prometheus", nil)
	req.Header.Set("X-Ops-Token", "ops")
	w = httptest.NewRecorder()
	prod.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
