package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/iota-uz/iota-periods/pkg/intl"
)

const localeCookie = "lang"

// Application interface for accessing app config needed by localizer
type Application interface {
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string
}

func languageTagsFromCodes(codes []string) []language.Tag {
	supported := intl.GetSupportedLanguages(codes)
	tags := make([]language.Tag, len(supported))
	for i, lang := range supported {
		tags[i] = lang.Tag
	}
	return tags
}

func matchSupported(defaultLocale language.Tag, supported []language.Tag, candidates []language.Tag) language.Tag {
	if len(supported) == 0 {
		return defaultLocale
	}
	if len(candidates) == 0 {
		candidates = []language.Tag{defaultLocale}
	}
	matcher := language.NewMatcher(supported)
	_, idx, _ := matcher.Match(candidates...)
	return supported[idx]
}

// explicitLocale reads a locale chosen by the user: ?lang= first, then the cookie.
func explicitLocale(r *http.Request) (language.Tag, bool) {
	raw := r.URL.Query().Get(localeCookie)
	if raw == "" {
		if c, err := r.Cookie(localeCookie); err == nil {
			raw = c.Value
		}
	}
	if raw == "" {
		return language.Und, false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

func useLocale(r *http.Request, defaultLocale language.Tag, supported []language.Tag) language.Tag {
	if tag, ok := explicitLocale(r); ok {
		return matchSupported(defaultLocale, supported, []language.Tag{tag})
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return matchSupported(defaultLocale, supported, nil)
	}
	return matchSupported(defaultLocale, supported, tags)
}

func ProvideLocalizer(app Application) mux.MiddlewareFunc {
	bundle := app.Bundle()
	supportedLanguages := languageTagsFromCodes(app.GetSupportedLanguages())
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				locale := useLocale(r, language.English, supportedLanguages)
				if q := r.URL.Query().Get(localeCookie); q != "" {
					http.SetCookie(w, &http.Cookie{
						Name:    localeCookie,
						Value:   locale.String(),
						Path:    "/",
						Expires: time.Now().AddDate(1, 0, 0),
					})
				}
				ctx := intl.WithLocalizer(
					r.Context(),
					i18n.NewLocalizer(bundle, locale.String()),
				)
				ctx = intl.WithLocale(ctx, locale)
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}
