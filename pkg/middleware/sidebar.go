package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/iota-uz/iota-periods/pkg/composables"
	"github.com/iota-uz/iota-periods/pkg/intl"
	"github.com/iota-uz/iota-periods/pkg/types"
)

type NavProvider interface {
	NavItems(localizer *i18n.Localizer) []types.NavigationItem
}

// getEnabledNavItems keeps childless items as links and replaces a group with
// a single child by that child.
func getEnabledNavItems(items []types.NavigationItem) []types.NavigationItem {
	var out []types.NavigationItem
	for _, item := range items {
		if len(item.Children) == 0 {
			out = append(out, item)
			continue
		}
		children := getEnabledNavItems(item.Children)
		switch len(children) {
		case 0:
			continue
		case 1:
			out = append(out, children[0])
		default:
			item.Children = children
			out = append(out, item)
		}
	}
	return out
}

// NavItems puts the translated navigation of app into the request context.
// It must run after ProvideLocalizer.
func NavItems(app NavProvider) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				localizer, ok := intl.UseLocalizer(r.Context())
				if !ok {
					panic(intl.ErrNoLocalizer)
				}
				items := getEnabledNavItems(app.NavItems(localizer))
				next.ServeHTTP(w, r.WithContext(composables.WithNavItems(r.Context(), items)))
			},
		)
	}
}
