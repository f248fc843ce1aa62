package composables

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-periods/pkg/shared"
)

type filterDTO struct {
	Query string
	IDs   []string
}

func TestUseForm(t *testing.T) {
	body := url.Values{"Query": {"dosen"}, "IDs": {"p1", "p2"}}.Encode()
	r := httptest.NewRequest(http.MethodPost, "/periods", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	dto, err := UseForm(&filterDTO{}, r)
	require.NoError(t, err)
	require.Equal(t, "dosen", dto.Query)
	require.Equal(t, []string{"p1", "p2"}, dto.IDs)
}

func TestUseQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/periods/api/positions:options?Query=lek", nil)
	dto, err := UseQuery(&filterDTO{}, r)
	require.NoError(t, err)
	require.Equal(t, "lek", dto.Query)
}

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	shared.SetFlash(rec, "flash", []byte("Period has been created"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	r := httptest.NewRequest(http.MethodGet, "/periods", nil)
	r.AddCookie(cookies[0])
	w := httptest.NewRecorder()
	val, err := UseFlash(w, r, "flash")
	require.NoError(t, err)
	require.Equal(t, "Period has been created", string(val))

	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Equal(t, -1, cleared[0].MaxAge)
}

func TestUseFlash_NoCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/periods", nil)
	val, err := UseFlash(httptest.NewRecorder(), r, "flash")
	require.NoError(t, err)
	require.Nil(t, val)
}

func TestUseLogger_Fallback(t *testing.T) {
	require.NotNil(t, UseLogger(context.Background()))
}
