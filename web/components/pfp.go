package components

import (
	"context"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

const (
	// ResultTarget is the element id htmx swaps result fragments into.
	ResultTarget = "pfp-result"
	// FormID is the upload form; reset clears its file input.
	FormID = "pfp-form"
)

const cardClass = "rounded-xl border-2 border-lime-300/40 p-8 text-center"

func card(class string, body ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="`+ResultTarget+`" class="`+templ.EscapeString(twmerge.Merge(cardClass, class))+`">`); err != nil {
			return err
		}
		for _, c := range body {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func raw(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func heading(title, subtitle string) templ.Component {
	return raw(`<h3 class="mb-2 text-xl font-semibold">` + templ.EscapeString(title) + `</h3>` +
		`<p class="mb-6 text-sm text-zinc-500">` + templ.EscapeString(subtitle) + `</p>`)
}

// Idle is the empty result card shown before an upload and after reset.
func Idle() templ.Component {
	return card("",
		heading("Your Symbiotic PFP", "Download your enhanced profile picture"),
		raw(`<div class="py-8 text-zinc-500">Upload an image to see your symbiotic PFP here</div>`),
	)
}

// Processing is the placeholder htmx shows while the upload is in flight.
func Processing() templ.Component {
	return raw(`<div class="htmx-indicator flex items-center justify-center py-8">` +
		`<div class="h-8 w-8 animate-spin rounded-full border-b-2 border-lime-400"></div>` +
		`<span class="ml-2 text-zinc-500">Processing...</span></div>`)
}

// Busy is the result card while an earlier upload is still composing.
func Busy() templ.Component {
	return card("",
		heading("Your Symbiotic PFP", "Still processing the previous image"),
		raw(`<div class="flex items-center justify-center py-8">`+
			`<div class="h-8 w-8 animate-spin rounded-full border-b-2 border-lime-400"></div>`+
			`<span class="ml-2 text-zinc-500">Processing...</span></div>`),
	)
}

// Result shows the original thumbnail, the composed picture and the
// download and reset controls.
func Result(d ResultData) templ.Component {
	return card("border-lime-300",
		heading("Your Symbiotic PFP", "Download your enhanced profile picture"),
		raw(`<img src="`+templ.EscapeString(d.OriginalURL)+`" alt="Original" class="mx-auto mb-2 h-32 w-32 rounded-full border-4 object-cover">`),
		raw(`<img src="`+templ.EscapeString(d.ProcessedURL)+`" alt="Processed PFP" class="mx-auto mb-4 h-48 w-48 rounded-full shadow-lg">`),
		raw(`<div class="flex justify-center gap-2">`),
		Button(ButtonProps{
			Label:   "Download PFP",
			Variant: ButtonPrimary,
			Href:    d.DownloadURL,
			Attrs:   templ.Attributes{"download": d.Filename},
		}),
		resetButton(),
		raw(`</div>`),
	)
}

// Failed reports that no result was produced.
func Failed(message string) templ.Component {
	return card("border-red-300",
		heading("Processing failed", "No result was produced. "+message),
		resetButton(),
	)
}

func resetButton() templ.Component {
	return Button(ButtonProps{
		Label:   "Reset",
		Variant: ButtonOutline,
		Attrs: templ.Attributes{
			"hx-post":              "/api/htmx/reset",
			"hx-target":            "#" + ResultTarget,
			"hx-swap":              "outerHTML",
			"hx-on::after-request": "document.getElementById('" + FormID + "').reset()",
		},
	})
}
