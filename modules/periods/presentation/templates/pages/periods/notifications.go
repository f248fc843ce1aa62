package periods

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/iota-uz/iota-periods/modules/periods/presentation/templates/layouts"
	"github.com/iota-uz/iota-periods/modules/periods/presentation/viewmodels"
)

var notificationClasses = map[viewmodels.NotificationKind]string{
	viewmodels.NotificationSuccess: "border-green-300 bg-green-50 text-green-800",
	viewmodels.NotificationError:   "border-red-300 bg-red-50 text-red-800",
}

func Notifications(items []viewmodels.Notification) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := layouts.NewWriter(w)
		hw.Raw(`<div id="period-notifications" class="flex flex-col gap-2" aria-live="polite">`)
		for _, n := range items {
			hw.Raw(`<div role="alert" data-kind="`).Attr(string(n.Kind)).
				Raw(`" class="rounded border px-3 py-2 `).Raw(notificationClasses[n.Kind]).Raw(`">`).
				Text(n.Message).Raw(`</div>`)
		}
		return hw.Raw(`</div>`).Err()
	})
}
