package view

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
)

// ProjectPage renders a project detail page. bodyHTML must already be
// sanitized; it is emitted as-is via templ.Raw.
func ProjectPage(project *domain.Project, bodyHTML string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<article class="project"><h1>%s</h1>`,
			templ.EscapeString(project.Title)); err != nil {
			return err
		}

		if len(project.Technologies) > 0 {
			if _, err := fmt.Fprintf(w, `<p class="tech">%s</p>`,
				templ.EscapeString(strings.Join(project.Technologies, " · "))); err != nil {
				return err
			}
		}

		for _, url := range project.ImageURLs {
			if _, err := fmt.Fprintf(w, `<img src="%s" alt="%s" loading="lazy">`,
				templ.EscapeString(url), templ.EscapeString(project.Title)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<div class="body">`); err != nil {
			return err
		}
		if err := templ.Raw(bodyHTML).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}

		if err := projectLinks(project).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</article>`)
		return err
	})
}

func projectLinks(project *domain.Project) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if project.DemoURL == "" && project.GithubURL == "" {
			return nil
		}
		if _, err := io.WriteString(w, `<p class="links">`); err != nil {
			return err
		}
		if project.DemoURL != "" {
			if _, err := fmt.Fprintf(w, `<a href="%s" rel="noopener">Live demo</a> `,
				templ.EscapeString(project.DemoURL)); err != nil {
				return err
			}
		}
		if project.GithubURL != "" {
			if _, err := fmt.Fprintf(w, `<a href="%s" rel="noopener">Source</a>`,
				templ.EscapeString(project.GithubURL)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</p>`)
		return err
	})
}
