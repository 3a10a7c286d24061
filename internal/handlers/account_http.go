package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"resolvewise/internal/config"
	"resolvewise/internal/middleware"
	"resolvewise/internal/models"
	"resolvewise/internal/service"
	"resolvewise/internal/utils"
)

// AccountHTTP is the JSON profile surface.
type AccountHTTP struct {
	svc *service.Service
	cfg config.Config
}

func NewAccountHTTP(svc *service.Service, cfg config.Config) *AccountHTTP {
	return &AccountHTTP{svc: svc, cfg: cfg}
}

// PATCH /api/account
func (h *AccountHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := utils.GetSession(r.Context(), middleware.CtxSession)
		var in struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		name := strings.TrimSpace(in.Name)
		if err := h.svc.UpdateProfileName(r.Context(), sess, name); err != nil {
			if errors.Is(err, service.ErrInvalidInput) {
				utils.Error(w, http.StatusBadRequest, "name is required")
				return
			}
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		u := models.User{ID: sess.UserID, Name: name, Email: sess.Email, Role: sess.Role}
		if err := issueSession(w, h.cfg, &u); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not refresh session")
			return
		}
		utils.JSON(w, http.StatusOK, u.Public())
	}
}

// GET /api/users  (agents only; used to resolve requester/author names)
func (h *AccountHTTP) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.svc.Users(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		out := make([]map[string]any, 0, len(users))
		for _, u := range users {
			out = append(out, u.Public())
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": out, "total": len(out)})
	}
}
