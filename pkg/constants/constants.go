package constants

import (
	"github.com/go-playground/validator/v10"
)

type contextKey string

const (
	LoggerKey     contextKey = "logger"
	ParamsKey     contextKey = "params"
	PageContext   contextKey = "pageContext"
	AppKey        contextKey = "app"
	LocalizerKey  contextKey = "localizer"
	LocaleKey     contextKey = "locale"
	RequestStart  contextKey = "requestStart"
	HeadKey       contextKey = "head"
	NavItemsKey   contextKey = "navItems"
	FlashStateKey contextKey = "flashState"
)

const (
	DateFormat = "2006-01-02"
	HxRequest  = "Hx-Request"
	HxRedirect = "Hx-Redirect"
)

var Validate = validator.New(validator.WithRequiredStructEnabled())
