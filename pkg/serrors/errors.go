// Package serrors holds errors that carry a stable code and a locale key, so
// they can be both logged and shown to the user in their language.
package serrors

import (
	"fmt"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/iota-uz/iota-periods/pkg/constants"
)

type BaseError struct {
	Code         string
	Message      string
	LocaleKey    string
	TemplateData map[string]string
	// FieldLocaleKey names the message used for {{.Field}} when localizing.
	FieldLocaleKey string
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

func (e *BaseError) Error() string {
	return e.Message
}

func (e *BaseError) WithTemplateData(data map[string]string) *BaseError {
	cp := *e
	cp.TemplateData = make(map[string]string, len(data))
	for k, v := range data {
		cp.TemplateData[k] = v
	}
	return &cp
}

// Localize renders the error with l, falling back to Message when l is nil or
// the locale key is unknown.
func (e *BaseError) Localize(l *i18n.Localizer) string {
	if l == nil || e.LocaleKey == "" {
		return e.Message
	}
	data := make(map[string]string, len(e.TemplateData)+1)
	for k, v := range e.TemplateData {
		data[k] = v
	}
	if e.FieldLocaleKey != "" {
		if field, err := l.Localize(&i18n.LocalizeConfig{MessageID: e.FieldLocaleKey}); err == nil && field != "" {
			data["Field"] = field
		}
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    e.LocaleKey,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		return e.Message
	}
	return msg
}

// ValidationErrors maps a form field to its error.
type ValidationErrors map[string]*BaseError

func NewFieldRequiredError(field, fieldLocaleKey string) *BaseError {
	return &BaseError{
		Code:           "FIELD_REQUIRED",
		Message:        fmt.Sprintf("%s is a required field", field),
		LocaleKey:      "ValidationErrors.required",
		TemplateData:   map[string]string{"Field": field},
		FieldLocaleKey: fieldLocaleKey,
	}
}

var fallbackTranslator = func() ut.Translator {
	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(constants.Validate, trans); err != nil {
		panic(err)
	}
	return trans
}()

// ProcessValidatorErrors converts validator errors into ValidationErrors keyed
// by struct field name. getFieldLocaleKey may return "" when a field has no
// localized label.
func ProcessValidatorErrors(errs validator.ValidationErrors, getFieldLocaleKey func(field string) string) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		fieldKey := ""
		if getFieldLocaleKey != nil {
			fieldKey = getFieldLocaleKey(fe.Field())
		}
		out[fe.Field()] = &BaseError{
			Code:      "VALIDATION_" + fe.Tag(),
			Message:   fe.Translate(fallbackTranslator),
			LocaleKey: "ValidationErrors." + fe.Tag(),
			TemplateData: map[string]string{
				"Field": fe.Field(),
				"Param": fe.Param(),
			},
			FieldLocaleKey: fieldKey,
		}
	}
	return out
}

func LocalizeValidationErrors(errs ValidationErrors, l *i18n.Localizer) map[string]string {
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		out[field] = err.Localize(l)
	}
	return out
}
