package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"resolvewise/internal/config"
	"resolvewise/internal/middleware"
	"resolvewise/internal/models"
	"resolvewise/internal/service"
	"resolvewise/internal/utils"
	"resolvewise/internal/views"
)

// ViewHTTP serves the five server-rendered pages and their form posts.
type ViewHTTP struct {
	svc    *service.Service
	render *views.Renderer
	cfg    config.Config
	log    zerolog.Logger
}

func NewViewHTTP(svc *service.Service, render *views.Renderer, cfg config.Config, log zerolog.Logger) *ViewHTTP {
	return &ViewHTTP{svc: svc, render: render, cfg: cfg, log: log}
}

func (h *ViewHTTP) page(w http.ResponseWriter, name string, data views.Data) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.render.Render(w, name, data); err != nil {
		h.log.Error().Err(err).Str("page", name).Msg("render failed")
	}
}

// GET /login
func (h *ViewHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetSession(r.Context(), middleware.CtxSession); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		h.page(w, views.PageLogin, views.Data{Flash: takeFlash(w, r)})
	}
}

// POST /login
func (h *ViewHTTP) SignIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := h.svc.Authenticate(r.Context(), r.FormValue("email"), r.FormValue("password"))
		if err != nil {
			setFlash(w, "error", "Invalid credentials")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := issueSession(w, h.cfg, u); err != nil {
			h.log.Error().Err(err).Msg("sign session")
			setFlash(w, "error", "Sign-in failed")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// GET /logout
func (h *ViewHTTP) SignOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clearSession(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// GET /
func (h *ViewHTTP) Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := utils.GetSession(r.Context(), middleware.CtxSession)
		tickets, err := h.svc.VisibleTickets(r.Context(), sess)
		if err != nil {
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		sum, err := h.svc.Summarize(r.Context(), sess)
		if err != nil {
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		h.page(w, views.PageDashboard, views.Data{
			Session: sess,
			Flash:   takeFlash(w, r),
			Tickets: tickets,
			Summary: sum,
		})
	}
}

// GET /tickets/new
func (h *ViewHTTP) NewTicket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := utils.GetSession(r.Context(), middleware.CtxSession)
		h.page(w, views.PageCreateTicket, views.Data{Session: sess, Flash: takeFlash(w, r)})
	}
}

// POST /tickets
func (h *ViewHTTP) CreateTicket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := utils.GetSession(r.Context(), middleware.CtxSession)
		_, err := h.svc.CreateTicket(r.Context(), sess,
			r.FormValue("title"), r.FormValue("priority"), r.FormValue("description"))
		if errors.Is(err, service.ErrInvalidInput) {
			setFlash(w, "error", "Title and description are required")
			http.Redirect(w, r, "/tickets/new", http.StatusSeeOther)
			return
		}
		if err != nil {
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		setFlash(w, "success", "Ticket created successfully!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// GET /tickets/{id}
func (h *ViewHTTP) TicketDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := utils.GetSession(r.Context(), middleware.CtxSession)
		id := utils.PathID(chi.URLParam(r, "id"))
		if id == 0 {
			http.NotFound(w, r)
			return
		}
		t, err := h.svc.Ticket(r.Context(), id)
		if err != nil {
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		if t == nil || !h.svc.CanView(sess, t) {
			// Not distinguishing "absent" from "not yours".
			http.NotFound(w, r)
			return
		}
		users, err := h.svc.Users(r.Context())
		if err != nil {
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		authors := make(map[int64]models.User, len(users))
		for _, u := range users {
			u.PasswordHash = ""
			authors[u.ID] = u
		}
		h.page(w, views.PageTicketDetail, views.Data{
			Session: sess,
			Flash:   takeFlash(w, r),
			Ticket:  t,
			Authors: authors,
		})
	}
}

// POST /tickets/{id}/comments
func (h *ViewHTTP) PostComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := utils.GetSession(r.Context(), middleware.CtxSession)
		id := utils.PathID(chi.URLParam(r, "id"))
		if id == 0 {
			http.NotFound(w, r)
			return
		}
		_, err := h.svc.AddComment(r.Context(), sess, id, r.FormValue("text"))
		switch {
		case errors.Is(err, service.ErrTicketNotFound):
			http.NotFound(w, r)
		case errors.Is(err, service.ErrInvalidInput):
			http.Error(w, "text is required", http.StatusBadRequest)
		case err != nil:
			http.Error(w, "storage error", http.StatusInternalServerError)
		default:
			// The detail page posts via fetch and relies on the event
			// stream to show the comment; 204 keeps it on the page.
			w.WriteHeader(http.StatusNoContent)
		}
	}
}

// GET /account
func (h *ViewHTTP) Account() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := utils.GetSession(r.Context(), middleware.CtxSession)
		h.page(w, views.PageAccount, views.Data{Session: sess, Flash: takeFlash(w, r)})
	}
}

// POST /account
func (h *ViewHTTP) UpdateAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := utils.GetSession(r.Context(), middleware.CtxSession)
		name := strings.TrimSpace(r.FormValue("name"))
		if err := h.svc.UpdateProfileName(r.Context(), sess, name); err != nil {
			if errors.Is(err, service.ErrInvalidInput) {
				setFlash(w, "error", "Name is required")
				http.Redirect(w, r, "/account", http.StatusSeeOther)
				return
			}
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		// Re-issue the session so the rendered header shows the new name.
		u := models.User{ID: sess.UserID, Name: name, Email: sess.Email, Role: sess.Role}
		if err := issueSession(w, h.cfg, &u); err != nil {
			h.log.Error().Err(err).Msg("re-issue session")
		}
		setFlash(w, "success", "Account updated successfully!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
