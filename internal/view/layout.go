// Package view renders the public site. Components are built directly on
// the templ runtime so they compose with the datastar SSE helpers used by
// the handlers.
package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps body in the site chrome. siteTitle comes from settings and
// falls back to a sensible default when unset.
func Layout(siteTitle, description string, body templ.Component) templ.Component {
	if siteTitle == "" {
		siteTitle = "Portfolio"
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<meta name="description" content="%s">`+
				`<title>%s</title>`+
				`<link rel="stylesheet" href="/static/site.css">`+
				`<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"></script>`+
				`</head><body><main class="container">`,
			templ.EscapeString(description), templ.EscapeString(siteTitle)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// ErrorPage renders a minimal error page.
func ErrorPage(status int, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="error"><h1>%d</h1><p>%s</p><a href="/">Back to home</a></section>`,
			status, templ.EscapeString(message))
		return err
	})
}
