package intl

import (
	"context"
	"errors"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/iota-uz/iota-periods/pkg/constants"
)

var ErrNoLocalizer = errors.New("localizer not found in context")

func WithLocalizer(ctx context.Context, l *i18n.Localizer) context.Context {
	return context.WithValue(ctx, constants.LocalizerKey, l)
}

func UseLocalizer(ctx context.Context) (*i18n.Localizer, bool) {
	l, ok := ctx.Value(constants.LocalizerKey).(*i18n.Localizer)
	return l, ok && l != nil
}

func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, constants.LocaleKey, tag)
}

func UseLocale(ctx context.Context) (language.Tag, bool) {
	tag, ok := ctx.Value(constants.LocaleKey).(language.Tag)
	return tag, ok
}

// Localize renders msg with the localizer found in ctx. Without a localizer,
// or when the bundle has no translation, msg.Other is returned.
func Localize(ctx context.Context, msg *i18n.Message, data map[string]string) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		return msg.Other
	}
	out, err := l.Localize(&i18n.LocalizeConfig{
		DefaultMessage: msg,
		TemplateData:   data,
	})
	if err != nil && out == "" {
		return msg.Other
	}
	return out
}
