package view

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
)

// HomePage renders the public showcase: profile header, presence badge,
// category filter, and the project grid.
func HomePage(profile *domain.Profile, projects []domain.Project, categories []domain.Category, activeCategory, presenceStatus string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := profileHeader(profile, presenceStatus).Render(ctx, w); err != nil {
			return err
		}
		if err := CategoryFilter(categories, activeCategory).Render(ctx, w); err != nil {
			return err
		}
		if err := ProjectGrid(projects).Render(ctx, w); err != nil {
			return err
		}
		return ContactForm().Render(ctx, w)
	})
}

func profileHeader(profile *domain.Profile, presenceStatus string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<header class="profile">`); err != nil {
			return err
		}
		if profile != nil {
			if profile.AvatarURL != "" {
				if _, err := fmt.Fprintf(w, `<img class="avatar" src="%s" alt="%s">`,
					templ.EscapeString(profile.AvatarURL), templ.EscapeString(profile.Name)); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, `<h1>%s</h1><p class="title">%s</p>`,
				templ.EscapeString(profile.Name), templ.EscapeString(profile.Title)); err != nil {
				return err
			}
			if len(profile.Skills) > 0 {
				if _, err := fmt.Fprintf(w, `<p class="skills">%s</p>`,
					templ.EscapeString(strings.Join(profile.Skills, " · "))); err != nil {
					return err
				}
			}
		}
		if err := PresenceBadge(presenceStatus).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</header>`)
		return err
	})
}

// PresenceBadge renders the online-status badge. It is patched in place via
// SSE, so it carries a stable element ID.
func PresenceBadge(status string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<span id="presence-badge" class="badge badge-%s">%s</span>`,
			templ.EscapeString(status), templ.EscapeString(status))
		return err
	})
}

// CategoryFilter renders the category tabs. Clicking a tab swaps the
// project grid through a datastar GET.
func CategoryFilter(categories []domain.Category, active string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<nav class="categories">`); err != nil {
			return err
		}
		if err := categoryTab("All", "", active == "").Render(ctx, w); err != nil {
			return err
		}
		for _, c := range categories {
			if err := categoryTab(c.Name, c.Slug, active == c.Slug).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</nav>`)
		return err
	})
}

func categoryTab(name, slug string, active bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := "tab"
		if active {
			class = "tab tab-active"
		}
		_, err := fmt.Fprintf(w, `<button class="%s" data-on-click="@get('/fragments/projects?category=%s')">%s</button>`,
			class, templ.EscapeString(slug), templ.EscapeString(name))
		return err
	})
}

// ProjectGrid renders the project cards. It is the SSE patch target for
// category filtering.
func ProjectGrid(projects []domain.Project) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section id="project-grid" class="grid">`); err != nil {
			return err
		}
		for _, p := range projects {
			if err := projectCard(p).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

func projectCard(p domain.Project) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<article class="card"><a href="/projects/%s">`, templ.EscapeString(p.Slug)); err != nil {
			return err
		}
		if len(p.ImageURLs) > 0 {
			if _, err := fmt.Fprintf(w, `<img src="%s" alt="%s" loading="lazy">`,
				templ.EscapeString(p.ImageURLs[0]), templ.EscapeString(p.Title)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `<h2>%s</h2><p>%s</p></a></article>`,
			templ.EscapeString(p.Title), templ.EscapeString(p.Summary))
		return err
	})
}

// ContactForm renders the contact section. Submission goes through datastar
// and the result replaces the form body.
func ContactForm() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section id="contact" class="contact">`+
			`<h2>Contact</h2>`+
			`<form data-on-submit="@post('/contact', {contentType: 'form'})">`+
			`<input name="name" placeholder="Name" required>`+
			`<input name="email" type="email" placeholder="Email" required>`+
			`<textarea name="message" placeholder="Message" required></textarea>`+
			`<button type="submit">Send</button>`+
			`</form></section>`)
		return err
	})
}

// ContactThanks replaces the contact form after a successful submission.
func ContactThanks() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section id="contact" class="contact"><h2>Contact</h2><p>Thanks, your message was sent.</p></section>`)
		return err
	})
}
