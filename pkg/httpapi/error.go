package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/iota-uz/iota-periods/pkg/composables"
)

// ErrorEnvelope is the JSON body of every API error response.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

// WriteError writes an ErrorEnvelope. The request id and path of r are added
// to meta when known.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) error {
	meta := map[string]string{}
	if r != nil {
		meta["path"] = r.URL.Path
		if id, ok := composables.UseRequestID(r.Context()); ok {
			meta["request_id"] = id
		}
	}
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}
