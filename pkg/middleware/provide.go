package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

// Provide puts value into every request context under key.
func Provide(key interface{}, value interface{}) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), key, value)))
		})
	}
}
