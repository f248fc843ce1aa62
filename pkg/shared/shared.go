package shared

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/form"

	"github.com/iota-uz/iota-periods/pkg/constants"
)

var Decoder = form.NewDecoder()

func IsHxRequest(r *http.Request) bool {
	return len(r.Header.Get(constants.HxRequest)) > 0
}

// Redirect sends htmx requests an HX-Redirect header and everyone else a 302.
func Redirect(w http.ResponseWriter, r *http.Request, path string) {
	if IsHxRequest(r) {
		w.Header().Add(constants.HxRedirect, path)
		return
	}
	http.Redirect(w, r, path, http.StatusFound)
}

func SetFlash(w http.ResponseWriter, name string, value []byte) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.URLEncoding.EncodeToString(value),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(time.Minute),
	})
}

func SetFlashMap[K comparable, V any](w http.ResponseWriter, name string, value map[K]V) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	SetFlash(w, name, raw)
}
