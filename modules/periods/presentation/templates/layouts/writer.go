package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer writes HTML fragments and remembers the first error; later writes
// are skipped once one failed.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (hw *Writer) Raw(s string) *Writer {
	if hw.err == nil {
		_, hw.err = io.WriteString(hw.w, s)
	}
	return hw
}

// Text writes s HTML-escaped.
func (hw *Writer) Text(s string) *Writer {
	return hw.Raw(templ.EscapeString(s))
}

// Attr writes s escaped for use inside a double-quoted attribute.
func (hw *Writer) Attr(s string) *Writer {
	return hw.Raw(templ.EscapeString(s))
}

func (hw *Writer) Component(ctx context.Context, c templ.Component) *Writer {
	if hw.err == nil && c != nil {
		hw.err = c.Render(ctx, hw.w)
	}
	return hw
}

func (hw *Writer) Err() error {
	return hw.err
}
