package site

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed templates
var templateFS embed.FS

// Pages lists every renderable page name; each maps to one content
// template under templates/pages/.
var Pages = []string{
	"home", "features", "about", "how-it-works", "contact",
	"help", "dashboard", "login", "signup", "confirm",
}

// PageData is everything a page render needs: the brand content object
// plus per-request view state.
type PageData struct {
	Brand    *Brand
	Active   string // nav highlight key, matches the page name
	Title    string
	Error    string // error indicator carried in the query string, if any
	SignedIn bool
	Email    string
	Year     int
}

// Renderer renders every page through one shared layout shell
// parameterized by the brand. The shell owns navigation; pages supply only
// their content block.
type Renderer struct {
	brand     *Brand
	templates map[string]*template.Template
}

func NewRenderer(brand *Brand) (*Renderer, error) {
	layout, err := template.New("layout.html.tmpl").ParseFS(templateFS, "templates/layout.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing layout template: %w", err)
	}

	templates := make(map[string]*template.Template, len(Pages))
	for _, page := range Pages {
		base, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning layout for %s: %w", page, err)
		}
		t, err := base.ParseFS(templateFS, "templates/pages/"+page+".html.tmpl")
		if err != nil {
			return nil, fmt.Errorf("parsing page template %s: %w", page, err)
		}
		templates[page] = t
	}

	return &Renderer{brand: brand, templates: templates}, nil
}

// Brand returns the content object this renderer was built with.
func (r *Renderer) Brand() *Brand { return r.brand }

// Render writes the named page. Unknown pages are an error, not a panic;
// the HTTP layer decides how to surface that.
func (r *Renderer) Render(w io.Writer, page string, data PageData) error {
	t, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	data.Brand = r.brand
	if data.Active == "" {
		data.Active = page
	}
	if data.Title == "" {
		data.Title = r.brand.Name
	}
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	return t.ExecuteTemplate(w, "layout.html.tmpl", data)
}
