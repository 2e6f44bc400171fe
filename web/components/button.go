package components

import (
	"context"
	"io"
	"sort"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

type ButtonVariant string

const (
	ButtonPrimary ButtonVariant = "primary"
	ButtonOutline ButtonVariant = "outline"
)

const buttonBase = "inline-flex items-center justify-center gap-2 rounded-md px-6 py-3 text-sm font-medium transition-colors"

var buttonVariants = map[ButtonVariant]string{
	ButtonPrimary: "bg-lime-300 text-zinc-900 hover:bg-lime-400",
	ButtonOutline: "border border-zinc-300 bg-transparent text-zinc-900 hover:bg-zinc-100",
}

// ButtonProps configures Button. Attrs are rendered verbatim after escaping
// their values, so htmx attributes can be passed through.
type ButtonProps struct {
	Label   string
	Variant ButtonVariant
	Class   string
	Href    string // renders an anchor when set
	Attrs   templ.Attributes
}

// Button renders a button or link with the variant classes merged with Class.
func Button(p ButtonProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := twmerge.Merge(buttonBase, buttonVariants[p.Variant], p.Class)

		var b strings.Builder
		tag := "button"
		if p.Href != "" {
			tag = "a"
		}
		b.WriteString("<" + tag + ` class="` + templ.EscapeString(class) + `"`)
		if p.Href != "" {
			b.WriteString(` href="` + templ.EscapeString(p.Href) + `"`)
		} else {
			b.WriteString(` type="button"`)
		}
		writeAttrs(&b, p.Attrs)
		b.WriteString(">" + templ.EscapeString(p.Label) + "</" + tag + ">")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeAttrs(b *strings.Builder, attrs templ.Attributes) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := attrs[k].(type) {
		case bool:
			if v {
				b.WriteString(" " + templ.EscapeString(k))
			}
		case string:
			b.WriteString(" " + templ.EscapeString(k) + `="` + templ.EscapeString(v) + `"`)
		}
	}
}
