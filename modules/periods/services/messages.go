package services

import (
	"context"

	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/iota-uz/iota-periods/modules/periods/infrastructure/remote"
	"github.com/iota-uz/iota-periods/pkg/intl"
)

// Notification texts. Other is the English fallback used when the bundle has
// no translation for the current locale.
var (
	MsgCreated = &i18n.Message{
		ID:    "Periods.Messages.Created",
		Other: "Period has been created",
	}
	MsgUpdated = &i18n.Message{
		ID:    "Periods.Messages.Updated",
		Other: "Period has been updated",
	}
	MsgLoadFailed = &i18n.Message{
		ID:    "Periods.Messages.LoadFailed",
		Other: "Failed to load data",
	}
	MsgGenericError = &i18n.Message{
		ID:    "Periods.Messages.GenericError",
		Other: "Something went wrong, please try again",
	}
	MsgSubmitInFlight = &i18n.Message{
		ID:    "Periods.Messages.SubmitInFlight",
		Other: "The period is already being saved",
	}
	MsgInvalidForm = &i18n.Message{
		ID:    "Periods.Messages.InvalidForm",
		Other: "Please fix the highlighted fields",
	}
)

// FailureMessage returns the text shown to the user for err: the message the
// API sent when there is one, the generic localized message otherwise.
func FailureMessage(ctx context.Context, err error) string {
	if msg, ok := remote.Message(err); ok {
		return msg
	}
	return intl.Localize(ctx, MsgGenericError, nil)
}
