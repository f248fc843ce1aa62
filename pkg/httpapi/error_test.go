package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-periods/pkg/composables"
)

func TestWriteError(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/periods/api/positions:options", nil)
	r = r.WithContext(composables.WithParams(r.Context(), &composables.Params{RequestID: "req-9"}))
	w := httptest.NewRecorder()

	require.NoError(t, WriteError(w, r, http.StatusBadGateway, "POSITIONS_UNAVAILABLE", "upstream down"))
	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "POSITIONS_UNAVAILABLE", body.Code)
	require.Equal(t, "upstream down", body.Message)
	require.Equal(t, "req-9", body.Meta["request_id"])
	require.Equal(t, "/periods/api/positions:options", body.Meta["path"])
}
