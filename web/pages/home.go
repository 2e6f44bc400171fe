package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/symbiotic-pfp/web/components"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// HomePage renders the upload form next to an idle result card.
func HomePage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">` +
			`<meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>Symbiotic PFP Generator</title>` +
			`<script src="https://cdn.tailwindcss.com"></script>` +
			`<script src="` + htmxSrc + `"></script>` +
			`</head><body class="min-h-screen bg-zinc-50 py-12"><main class="mx-auto max-w-4xl px-4">` +
			`<h1 class="mb-8 text-center text-3xl font-bold">Symbiotic PFP Generator</h1>` +
			`<div class="grid gap-8 md:grid-cols-2">`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}

		form := `<form id="` + components.FormID + `" class="rounded-xl border-2 border-dashed border-lime-300/40 p-8 text-center"` +
			` hx-post="/api/htmx/pfp" hx-encoding="multipart/form-data" hx-trigger="change"` +
			` hx-target="#` + components.ResultTarget + `" hx-swap="outerHTML" hx-indicator="#pfp-indicator">` +
			`<h3 class="mb-2 text-xl font-semibold">Upload Your PFP</h3>` +
			`<p class="mb-6 text-sm text-zinc-500">Choose an image file to add the symbiotic border</p>` +
			`<input type="file" name="image" accept="image/*" class="mx-auto block text-sm">` +
			`<div id="pfp-indicator">`
		if _, err := io.WriteString(w, form); err != nil {
			return err
		}
		if err := components.Processing().Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div></form>`); err != nil {
			return err
		}

		if err := components.Idle().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></main></body></html>`)
		return err
	})
}
