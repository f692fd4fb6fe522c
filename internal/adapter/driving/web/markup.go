package web

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// markup writes escaped HTML, remembering the first write error.
type markup struct {
	ctx context.Context
	w   io.Writer
	err error
}

// view adapts a markup writer function to a templ component.
func view(fn func(m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{ctx: ctx, w: w}
		fn(m)
		return m.err
	})
}

// raw writes trusted HTML.
func (m *markup) raw(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

// text writes s escaped for element content and attribute values.
func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

func (m *markup) textf(format string, args ...any) {
	m.text(fmt.Sprintf(format, args...))
}

// url writes a sanitized, escaped URL attribute value.
func (m *markup) url(u string) {
	m.text(string(templ.URL(u)))
}

func (m *markup) child(c templ.Component) {
	if m.err != nil {
		return
	}
	m.err = c.Render(m.ctx, m.w)
}

func (m *markup) csrf(p *page) {
	m.raw(`<input type="hidden" name="` + csrfFormField + `" value="`)
	m.text(p.CSRF)
	m.raw(`">`)
}

// postButton renders a single-button form posting to action.
func (m *markup) postButton(p *page, action, label, class, confirm string) {
	m.raw(`<form method="post" class="inline" action="`)
	m.url(action)
	m.raw(`"`)
	if confirm != "" {
		m.raw(` onsubmit="return confirm('`)
		m.text(confirm)
		m.raw(`')"`)
	}
	m.raw(`>`)
	m.csrf(p)
	m.raw(`<button type="submit" class="`)
	m.text(class)
	m.raw(`">`)
	m.text(label)
	m.raw(`</button></form>`)
}

// field renders a labelled text input with its validation message.
func (m *markup) field(label, name, inputType, value string, errs map[string]string) {
	m.raw(`<label>`)
	m.text(label)
	m.raw(`<input type="`)
	m.text(inputType)
	m.raw(`" name="`)
	m.text(name)
	m.raw(`" value="`)
	m.text(value)
	m.raw(`">`)
	if msg := errs[name]; msg != "" {
		m.raw(`<span class="field-error">`)
		m.text(msg)
		m.raw(`</span>`)
	}
	m.raw(`</label>`)
}

func (m *markup) checkbox(label, name string, checked bool) {
	m.raw(`<label class="check"><input type="checkbox" name="`)
	m.text(name)
	m.raw(`" value="1"`)
	if checked {
		m.raw(` checked`)
	}
	m.raw(`> `)
	m.text(label)
	m.raw(`</label>`)
}

func (m *markup) alert(class, msg string) {
	if msg == "" {
		return
	}
	m.raw(`<div class="alert `)
	m.text(class)
	m.raw(`">`)
	m.text(msg)
	m.raw(`</div>`)
}
