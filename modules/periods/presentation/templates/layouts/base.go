package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/iota-uz/iota-periods/pkg/composables"
	"github.com/iota-uz/iota-periods/pkg/types"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

type BaseProps struct {
	Title string
}

// Base renders the document shell around the children of ctx.
func Base(props BaseProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		// children live in a shared context value that nested components clear
		children := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)

		lang := "en"
		if pageCtx, ok := composables.TryUsePageCtx(ctx); ok {
			lang = pageCtx.GetLocale().String()
		}
		hw := NewWriter(w)
		hw.Raw(`<!DOCTYPE html><html lang="`).Text(lang).Raw(`"><head><meta charset="utf-8">`)
		hw.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.Raw(`<title>`).Text(props.Title).Raw(`</title>`)
		hw.Raw(`<script src="` + htmxScript + `"></script></head>`)
		hw.Raw(`<body class="bg-gray-50 text-gray-900"><div class="flex min-h-screen">`)
		hw.Component(ctx, Sidebar(composables.UseNavItems(ctx)))
		hw.Raw(`<main class="flex-1 p-6">`)
		hw.Component(ctx, children)
		return hw.Raw(`</main></div></body></html>`).Err()
	})
}

func Sidebar(items []types.NavigationItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(items) == 0 {
			return nil
		}
		hw := NewWriter(w)
		hw.Raw(`<nav class="w-56 border-r bg-white p-4"><ul class="flex flex-col gap-1">`)
		for _, item := range items {
			hw.Raw(`<li><a class="flex items-center gap-2 rounded px-2 py-1 hover:bg-gray-100" href="`).Attr(item.Href).Raw(`">`)
			if item.Icon != nil {
				hw.Component(ctx, item.Icon)
			}
			hw.Text(item.Name).Raw(`</a></li>`)
		}
		return hw.Raw(`</ul></nav>`).Err()
	})
}
