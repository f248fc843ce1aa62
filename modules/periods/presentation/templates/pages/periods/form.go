package periods

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/iota-uz/iota-periods/modules/periods/domain/aggregates/period"
	"github.com/iota-uz/iota-periods/modules/periods/presentation/templates/layouts"
	"github.com/iota-uz/iota-periods/modules/periods/presentation/viewmodels"
	"github.com/iota-uz/iota-periods/pkg/composables"
)

type FormPageProps struct {
	Form          *viewmodels.PeriodForm
	Errors        map[period.Field]string
	Notifications []viewmodels.Notification
	PostPath      string
	BackURL       string
	FieldsURL     string
	PositionsURL  string
	Presets       []string
	Submitting    bool
}

func pageTitle(ctx context.Context, props *FormPageProps) string {
	pageCtx := composables.UsePageCtx(ctx)
	if props.Form.IsEdit {
		return pageCtx.T("Periods.Edit.Title")
	}
	return pageCtx.T("Periods.New.Title")
}

func fieldError(hw *layouts.Writer, props *FormPageProps, field period.Field) {
	msg, ok := props.Errors[field]
	if !ok || msg == "" {
		return
	}
	hw.Raw(`<small class="text-sm text-red-600" data-field-error="`).Attr(string(field)).Raw(`">`).Text(msg).Raw(`</small>`)
}

func presetVals(value string) string {
	b, _ := json.Marshal(map[string]string{"Type": value})
	return string(b)
}

// Form renders the whole edit form. htmx swaps it in place after a submit or
// a quick-fill.
func Form(props *FormPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pageCtx := composables.UsePageCtx(ctx)
		f := props.Form
		hw := layouts.NewWriter(w)

		hw.Raw(`<form id="period-form" class="flex flex-col gap-4" method="post" action="`).Attr(props.PostPath).
			Raw(`" hx-post="`).Attr(props.PostPath).
			Raw(`" hx-target="this" hx-swap="outerHTML" hx-params="not q" hx-disabled-elt="#period-save">`)

		hw.Raw(`<header class="flex items-center gap-3">`)
		hw.Raw(`<a id="period-back" class="rounded p-1 hover:bg-gray-100" href="`).Attr(props.BackURL).
			Raw(`" aria-label="`).Attr(pageCtx.T("Periods.Back")).Raw(`">`)
		hw.Component(ctx, icons.ArrowLeft(icons.Props{Size: "20"}))
		hw.Raw(`</a><h1 class="flex-1 text-xl font-semibold">`).Text(pageTitle(ctx, props)).Raw(`</h1>`)
		hw.Raw(`<button id="period-save" type="submit" class="`).Raw(buttonClass("")).Raw(`"`)
		if props.Submitting {
			hw.Raw(` disabled`)
		}
		hw.Raw(`>`).Text(pageCtx.T("Periods.Save")).Raw(`</button></header>`)

		hw.Component(ctx, Notifications(props.Notifications))

		hw.Raw(`<input type="hidden" name="FormToken" value="`).Attr(f.Token).Raw(`">`)
		hw.Raw(`<input type="hidden" name="PositionsJSON" value="`).Attr(f.PositionsJSON).Raw(`">`)

		hw.Raw(`<label class="flex flex-col gap-1"><span>`).Text(pageCtx.T("Periods.Fields.Title")).Raw(`</span>`)
		hw.Raw(`<input class="rounded border px-2 py-1" type="text" name="Title" value="`).Attr(f.Title).Raw(`">`)
		fieldError(hw, props, period.FieldTitle)
		hw.Raw(`</label>`)

		hw.Raw(`<div class="flex flex-col gap-1"><label class="flex flex-col gap-1"><span>`).Text(pageCtx.T("Periods.Fields.Type")).Raw(`</span>`)
		hw.Raw(`<input class="rounded border px-2 py-1" type="text" name="Type" value="`).Attr(f.Type).Raw(`"></label>`)
		if f.DisplayType != "" {
			hw.Raw(`<span id="period-type-display" class="text-sm text-gray-600">`).Text(f.DisplayType).Raw(`</span>`)
		}
		hw.Raw(`<div class="flex items-center gap-2 text-sm"><span>`).Text(pageCtx.T("Periods.Presets")).Raw(`</span>`)
		for _, preset := range props.Presets {
			hw.Raw(`<button type="button" class="`).Raw(buttonClass(presetButtonClass)).
				Raw(`" data-preset="`).Attr(preset).
				Raw(`" hx-post="`).Attr(props.FieldsURL).
				Raw(`" hx-vals="`).Attr(presetVals(preset)).
				Raw(`" hx-target="#period-form" hx-swap="outerHTML">`).
				Text(period.DisplayType(preset)).Raw(`</button>`)
		}
		hw.Raw(`</div>`)
		fieldError(hw, props, period.FieldType)
		hw.Raw(`</div>`)

		hw.Raw(`<fieldset class="flex flex-col gap-1"><legend>`).Text(pageCtx.T("Periods.Fields.DateRange")).Raw(`</legend>`)
		hw.Raw(`<div class="flex items-center gap-2">`)
		hw.Raw(`<input class="rounded border px-2 py-1" type="date" name="StartDate" value="`).Attr(f.StartDate).Raw(`">`)
		hw.Raw(`<span>&ndash;</span>`)
		hw.Raw(`<input class="rounded border px-2 py-1" type="date" name="EndDate" value="`).Attr(f.EndDate).Raw(`">`)
		hw.Raw(`</div>`)
		fieldError(hw, props, period.FieldDateRange)
		hw.Raw(`</fieldset>`)

		hw.Raw(`<label class="flex flex-col gap-1"><span>`).Text(pageCtx.T("Periods.Fields.Positions")).Raw(`</span>`)
		hw.Raw(`<input id="period-positions-search" class="rounded border px-2 py-1" type="search" name="q" placeholder="`).
			Attr(pageCtx.T("Periods.Positions.Search")).
			Raw(`" hx-get="`).Attr(props.PositionsURL).
			Raw(`" hx-trigger="input changed delay:300ms, search" hx-target="#period-positions" hx-swap="innerHTML"`).
			Raw(` hx-include="#period-positions, [name='PositionsJSON']">`)
		hw.Raw(`<select id="period-positions" class="rounded border px-2 py-1" name="PositionIDs" multiple size="8">`)
		hw.Component(ctx, PositionOptionList(f.Positions))
		hw.Raw(`</select>`)
		fieldError(hw, props, period.FieldPositions)
		hw.Raw(`</label>`)

		return hw.Raw(`</form>`).Err()
	})
}

// PositionOptionList renders the picker's <option> elements.
func PositionOptionList(options []viewmodels.PositionOption) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := layouts.NewWriter(w)
		for _, opt := range options {
			hw.Raw(`<option value="`).Attr(opt.ID).Raw(`"`)
			if opt.Selected {
				hw.Raw(` selected`)
			}
			hw.Raw(`>`).Text(opt.Name).Raw(`</option>`)
		}
		return hw.Err()
	})
}

func Edit(props *FormPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout := layouts.Base(layouts.BaseProps{Title: pageTitle(ctx, props)})
		return layout.Render(templ.WithChildren(ctx, Form(props)), w)
	})
}
