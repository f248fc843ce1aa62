package types

import (
	"net/url"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// PageContextProvider gives templates access to the request locale and URL.
type PageContextProvider interface {
	// T translates a message ID, prefixed by the current namespace. Unknown IDs
	// render as the ID itself.
	T(key string, args ...map[string]interface{}) string

	// TSafe is like T but returns an empty string for unknown IDs.
	TSafe(key string, args ...map[string]interface{}) string

	Namespace(prefix string) PageContextProvider
	ToJSLocale() string
	GetLocale() language.Tag
	GetURL() *url.URL
	GetLocalizer() *i18n.Localizer
}

type PageContext struct {
	Locale    language.Tag
	URL       *url.URL
	Localizer *i18n.Localizer
	prefix    string
}

var _ PageContextProvider = (*PageContext)(nil)

func (p *PageContext) messageID(k string) string {
	if p.prefix != "" {
		return p.prefix + "." + k
	}
	return k
}

func (p *PageContext) localize(k string, args []map[string]interface{}) (string, error) {
	if len(args) > 1 {
		panic("T(): too many arguments")
	}
	cfg := &i18n.LocalizeConfig{MessageID: p.messageID(k)}
	if len(args) == 1 {
		cfg.TemplateData = args[0]
	}
	return p.Localizer.Localize(cfg)
}

func (p *PageContext) T(k string, args ...map[string]interface{}) string {
	out, err := p.localize(k, args)
	if err != nil || out == "" {
		return p.messageID(k)
	}
	return out
}

func (p *PageContext) TSafe(k string, args ...map[string]interface{}) string {
	out, err := p.localize(k, args)
	if err != nil {
		return ""
	}
	return out
}

func (p *PageContext) Namespace(prefix string) PageContextProvider {
	return &PageContext{
		Locale:    p.Locale,
		URL:       p.URL,
		Localizer: p.Localizer,
		prefix:    prefix,
	}
}

// ToJSLocale converts the page locale to a locale string understood by
// Intl.DateTimeFormat. Unknown locales default to "en-US".
func (p *PageContext) ToJSLocale() string {
	switch p.Locale.String() {
	case "id", "id-ID":
		return "id-ID"
	case "en-GB":
		return "en-GB"
	default:
		return "en-US"
	}
}

func (p *PageContext) GetLocale() language.Tag {
	return p.Locale
}

func (p *PageContext) GetURL() *url.URL {
	return p.URL
}

func (p *PageContext) GetLocalizer() *i18n.Localizer {
	return p.Localizer
}
