package handlers

import (
	"net/http"

	"resolvewise/internal/middleware"
	"resolvewise/internal/service"
	"resolvewise/internal/utils"
)

type ReportsHTTP struct {
	svc *service.Service
}

func NewReportsHTTP(svc *service.Service) *ReportsHTTP { return &ReportsHTTP{svc: svc} }

// GET /api/reports/summary
// Counts are over the tickets visible to the caller, so a customer's
// summary covers only their own tickets.
func (h *ReportsHTTP) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := utils.GetSession(r.Context(), middleware.CtxSession)
		sum, err := h.svc.Summarize(r.Context(), sess)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, sum)
	}
}
