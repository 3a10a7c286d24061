// Package views renders the five application pages from embedded templates.
// Every page is a full render; the only partial update in the product is the
// comment list on the ticket-detail page, which is patched client-side from
// the new-comment event stream.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"resolvewise/internal/models"
	"resolvewise/internal/service"
)

//go:embed templates/*.html
var files embed.FS

// Page names, matching template file basenames.
const (
	PageLogin        = "login"
	PageDashboard    = "dashboard"
	PageCreateTicket = "create_ticket"
	PageAccount      = "account"
	PageTicketDetail = "ticket_detail"
)

// Flash is the transient banner shown after an action: kind is "success" or
// "error".
type Flash struct {
	Message string
	Kind    string
}

// Data is the superset of everything any page needs; each page reads only
// its own fields.
type Data struct {
	Session *models.Session
	Flash   *Flash
	Tickets []models.Ticket
	Summary service.Summary
	Ticket  *models.Ticket
	Authors map[int64]models.User // comment author lookup for ticket detail
}

type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"initial": func(name string) string {
			for _, r := range name {
				return string(r)
			}
			return "?"
		},
		"when": func(t time.Time) string {
			return t.Format("Jan 2, 2006 3:04 PM")
		},
		"nospace": func(s string) string {
			return strings.ReplaceAll(s, " ", "")
		},
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{
		PageLogin, PageDashboard, PageCreateTicket, PageAccount, PageTicketDetail,
	} {
		t, err := template.New("layout.html").Funcs(funcs).
			ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, page string, data Data) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}
