package periods

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/iota-uz/iota-periods/modules/periods/presentation/templates/layouts"
	"github.com/iota-uz/iota-periods/modules/periods/presentation/viewmodels"
	"github.com/iota-uz/iota-periods/pkg/composables"
)

type IndexPageProps struct {
	Periods       []*viewmodels.Period
	NewURL        string
	Notifications []viewmodels.Notification
}

func PeriodsTable(props *IndexPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageCtx := composables.UsePageCtx(ctx)
		hw := layouts.NewWriter(w)
		hw.Raw(`<table id="periods-table" class="w-full text-left"><thead><tr>`)
		for _, key := range []string{"Periods.Fields.Title", "Periods.Fields.Type", "Periods.List.Start", "Periods.List.End", "Periods.List.Positions"} {
			hw.Raw(`<th class="px-2 py-1">`).Text(pageCtx.T(key)).Raw(`</th>`)
		}
		hw.Raw(`</tr></thead><tbody>`)
		if len(props.Periods) == 0 {
			hw.Raw(`<tr><td colspan="5" class="px-2 py-4 text-center text-gray-500">`).
				Text(pageCtx.T("Periods.List.Empty")).Raw(`</td></tr>`)
		}
		for _, p := range props.Periods {
			hw.Raw(`<tr data-id="`).Attr(p.ID).Raw(`">`)
			hw.Raw(`<td class="px-2 py-1"><a class="text-blue-600 hover:underline" href="`).Attr(p.EditURL).Raw(`">`).Text(p.Title).Raw(`</a></td>`)
			hw.Raw(`<td class="px-2 py-1">`).Text(p.DisplayType).Raw(`</td>`)
			hw.Raw(`<td class="px-2 py-1">`).Text(p.StartDate).Raw(`</td>`)
			hw.Raw(`<td class="px-2 py-1">`).Text(p.EndDate).Raw(`</td>`)
			hw.Raw(`<td class="px-2 py-1">`).Text(itoa(p.PositionsCount)).Raw(`</td>`)
			hw.Raw(`</tr>`)
		}
		return hw.Raw(`</tbody></table>`).Err()
	})
}

func Index(props *IndexPageProps) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageCtx := composables.UsePageCtx(ctx)
		hw := layouts.NewWriter(w)
		hw.Raw(`<div class="flex flex-col gap-4"><header class="flex items-center justify-between">`)
		hw.Raw(`<h1 class="text-xl font-semibold">`).Text(pageCtx.T("Periods.List.Title")).Raw(`</h1>`)
		hw.Raw(`<a id="period-new" class="`).Raw(buttonClass("")).Raw(`" href="`).Attr(props.NewURL).Raw(`">`).
			Text(pageCtx.T("Periods.List.New")).Raw(`</a></header>`)
		hw.Component(ctx, Notifications(props.Notifications))
		hw.Component(ctx, PeriodsTable(props))
		return hw.Raw(`</div>`).Err()
	})
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageCtx := composables.UsePageCtx(ctx)
		layout := layouts.Base(layouts.BaseProps{Title: pageCtx.T("Periods.List.Title")})
		return layout.Render(templ.WithChildren(ctx, content), w)
	})
}
