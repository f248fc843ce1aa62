package layouts

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-periods/pkg/composables"
	"github.com/iota-uz/iota-periods/pkg/types"
)

// clearingIcon behaves like a generated templ component: it consumes the
// children of the shared context.
func clearingIcon() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_ = templ.ClearChildren(ctx)
		_, err := io.WriteString(w, `<svg class="icon"></svg>`)
		return err
	})
}

func TestBase_RendersChildrenAfterSidebar(t *testing.T) {
	child := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<form id="period-form"></form>`)
		return err
	})
	ctx := composables.WithNavItems(context.Background(), []types.NavigationItem{
		{Name: "Periods", Href: "/periods", Icon: clearingIcon()},
	})
	ctx = templ.WithChildren(ctx, child)

	var buf bytes.Buffer
	require.NoError(t, Base(BaseProps{Title: "Periods"}).Render(ctx, &buf))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("main #period-form").Length())
	require.Equal(t, 1, doc.Find("nav svg.icon").Length())
	require.Equal(t, "Periods", doc.Find("title").Text())
}
