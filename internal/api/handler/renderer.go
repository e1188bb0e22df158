package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = []string{"index.html", "about.html", "login.html", "register.html"}

// Renderer implements echo.Renderer over the embedded page templates.
// Each page is parsed together with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name).ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

type pageData struct {
	Title string
	User  any
	Data  any
}

var titles = map[string]string{
	"index.html":    "Home",
	"about.html":    "About",
	"login.html":    "Log in",
	"register.html": "Register",
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	pd := pageData{Title: titles[name], Data: data}
	if user, ok := CurrentUser(c); ok {
		pd.User = user
	}
	return t.ExecuteTemplate(w, name, pd)
}
