package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"resolvewise/internal/middleware"
	"resolvewise/internal/service"
	"resolvewise/internal/utils"
)

// TicketHTTP is the JSON ticket surface.
type TicketHTTP struct {
	svc *service.Service
}

func NewTicketHTTP(svc *service.Service) *TicketHTTP {
	return &TicketHTTP{svc: svc}
}

// GET /api/tickets?limit=&offset=
// Role filtering happens in the service; limit/offset page the visible set.
func (h *TicketHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := utils.GetSession(r.Context(), middleware.CtxSession)
		items, err := h.svc.VisibleTickets(r.Context(), sess)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		total := len(items)
		qv := r.URL.Query()
		limit := utils.QueryInt(qv, "limit", 50)
		offset := utils.QueryInt(qv, "offset", 0)
		if limit <= 0 || limit > 200 {
			limit = 50
		}
		if offset < 0 {
			offset = 0
		}
		if offset > total {
			offset = total
		}
		end := offset + limit
		if end > total {
			end = total
		}
		items = items[offset:end]

		w.Header().Set("X-Total-Count", strconv.Itoa(total))
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// GET /api/tickets/{id}
func (h *TicketHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := utils.GetSession(r.Context(), middleware.CtxSession)
		id := utils.PathID(chi.URLParam(r, "id"))
		if id == 0 {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		t, err := h.svc.Ticket(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if t == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		if !h.svc.CanView(sess, t) {
			utils.Error(w, http.StatusForbidden, "forbidden")
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// POST /api/tickets
func (h *TicketHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Title       string `json:"title"`
		Priority    string `json:"priority"`
		Description string `json:"description"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := utils.GetSession(r.Context(), middleware.CtxSession)
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		t, err := h.svc.CreateTicket(r.Context(), sess, in.Title, in.Priority, in.Description)
		if errors.Is(err, service.ErrInvalidInput) {
			utils.Error(w, http.StatusBadRequest, "title and description are required")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusCreated, t)
	}
}

// POST /api/tickets/{id}/comments
func (h *TicketHTTP) AddComment() http.HandlerFunc {
	type inDTO struct {
		Text string `json:"text"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := utils.GetSession(r.Context(), middleware.CtxSession)
		id := utils.PathID(chi.URLParam(r, "id"))
		if id == 0 {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		c, err := h.svc.AddComment(r.Context(), sess, id, in.Text)
		switch {
		case errors.Is(err, service.ErrTicketNotFound):
			utils.Error(w, http.StatusNotFound, "not found")
		case errors.Is(err, service.ErrInvalidInput):
			utils.Error(w, http.StatusBadRequest, "text is required")
		case err != nil:
			utils.Error(w, http.StatusInternalServerError, err.Error())
		default:
			utils.JSON(w, http.StatusCreated, c)
		}
	}
}
