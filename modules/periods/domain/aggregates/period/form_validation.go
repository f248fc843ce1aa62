package period

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iota-uz/iota-periods/pkg/constants"
	"github.com/iota-uz/iota-periods/pkg/intl"
	"github.com/iota-uz/iota-periods/pkg/serrors"
)

type formRules struct {
	Title     string     `validate:"required"`
	Type      string     `validate:"required"`
	DateRange *DateRange `validate:"required"`
}

var ruleFields = map[string]Field{
	"Title":     FieldTitle,
	"Type":      FieldType,
	"DateRange": FieldDateRange,
}

func fieldLocaleKey(structField string) string {
	if _, ok := ruleFields[structField]; ok {
		return "Periods.Fields." + structField
	}
	return ""
}

// Validate checks the fields required before the form may be sent. Messages
// are localized with the localizer in ctx when there is one.
func (f Form) Validate(ctx context.Context) FormErrors {
	err := constants.Validate.Struct(formRules{
		Title:     strings.TrimSpace(f.Title),
		Type:      strings.TrimSpace(f.Type),
		DateRange: f.DateRange,
	})
	if err == nil {
		return FormErrors{}
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return FormErrors{FieldTitle: err.Error()}
	}

	l, _ := intl.UseLocalizer(ctx)
	localized := serrors.LocalizeValidationErrors(
		serrors.ProcessValidatorErrors(validatorErrs, fieldLocaleKey),
		l,
	)
	out := make(FormErrors, len(localized))
	for structField, msg := range localized {
		if field, ok := ruleFields[structField]; ok {
			out[field] = msg
		}
	}
	return out
}
