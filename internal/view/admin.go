package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// LoginPage renders the admin login form. The admin area itself is a JSON
// API consumed by the management frontend; only the entry page is
// server-rendered.
func LoginPage(needsSetup bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		action := "/api/auth/login"
		heading := "Admin Login"
		extra := ""
		if needsSetup {
			action = "/api/auth/setup"
			heading = "Create Admin Account"
			extra = `<input name="displayName" placeholder="Display name" required>`
		}
		_, err := io.WriteString(w, `<section class="login"><h1>`+heading+`</h1>`+
			`<form method="post" action="`+action+`">`+
			extra+
			`<input name="email" type="email" placeholder="Email" required>`+
			`<input name="password" type="password" placeholder="Password" required>`+
			`<button type="submit">Continue</button>`+
			`</form></section>`)
		return err
	})
}
