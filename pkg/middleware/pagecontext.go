package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/iota-periods/pkg/composables"
	"github.com/iota-uz/iota-periods/pkg/intl"
	"github.com/iota-uz/iota-periods/pkg/types"
)

// WithPageContext exposes the request localizer and URL to templates.
// It must run after ProvideLocalizer; a request without a localizer is a
// wiring mistake and is answered with 500.
func WithPageContext() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			localizer, hasLocalizer := intl.UseLocalizer(ctx)
			locale, hasLocale := intl.UseLocale(ctx)
			if !hasLocalizer || !hasLocale {
				composables.UseLogger(ctx).WithError(intl.ErrNoLocalizer).Error("page context requested before ProvideLocalizer")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			pageCtx := &types.PageContext{
				URL:       r.URL,
				Localizer: localizer,
				Locale:    locale,
			}
			next.ServeHTTP(w, r.WithContext(composables.WithPageCtx(ctx, pageCtx)))
		})
	}
}
