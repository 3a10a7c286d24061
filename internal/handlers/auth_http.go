package handlers

import (
	"encoding/json"
	"net/http"

	"resolvewise/internal/config"
	"resolvewise/internal/middleware"
	"resolvewise/internal/service"
	"resolvewise/internal/utils"
)

// AuthHTTP is the JSON authentication surface for API clients; the HTML
// login form is handled by ViewHTTP.
type AuthHTTP struct {
	svc *service.Service
	cfg config.Config
}

func NewAuthHTTP(svc *service.Service, cfg config.Config) *AuthHTTP {
	return &AuthHTTP{svc: svc, cfg: cfg}
}

// POST /api/login
func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := h.svc.Authenticate(r.Context(), in.Email, in.Password)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err := issueSession(w, h.cfg, u); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not create session")
			return
		}
		utils.JSON(w, http.StatusOK, u.Public())
	}
}

// POST /api/logout
func (h *AuthHTTP) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clearSession(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /api/me
func (h *AuthHTTP) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := utils.GetSession(r.Context(), middleware.CtxSession)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		// Read the stored user rather than echoing the token: the token's
		// name copy can lag a rename from another client.
		users, err := h.svc.Users(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		for _, u := range users {
			if u.ID == sess.UserID {
				utils.JSON(w, http.StatusOK, u.Public())
				return
			}
		}
		utils.Error(w, http.StatusNotFound, "user not found")
	}
}
