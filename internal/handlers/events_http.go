package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"resolvewise/internal/events"
	"resolvewise/internal/middleware"
	"resolvewise/internal/service"
	"resolvewise/internal/utils"
)

// EventsHTTP streams new-comment events to the ticket-detail page over SSE.
type EventsHTTP struct {
	svc *service.Service
	bus *events.Bus
	log zerolog.Logger
}

func NewEventsHTTP(svc *service.Service, log zerolog.Logger) *EventsHTTP {
	return &EventsHTTP{svc: svc, bus: svc.Bus(), log: log}
}

// GET /tickets/{id}/events
// The subscription lives exactly as long as the connection: navigating away
// closes the stream, which unsubscribes from the bus.
func (h *EventsHTTP) TicketComments() http.HandlerFunc {
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
			http.NotFound(w, r)
			return
		}

		fl, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		// Subscribe before the stream is visible to the client so no event
		// can fall between the response opening and the subscription.
		ch, unsubscribe := h.bus.Subscribe()
		defer unsubscribe()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		fl.Flush()
		h.log.Debug().Int64("ticket", id).Msg("comment stream opened")

		for {
			select {
			case <-r.Context().Done():
				h.log.Debug().Int64("ticket", id).Msg("comment stream closed")
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				if ev.TicketID != id {
					continue
				}
				data, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: new-comment\ndata: %s\n\n", data)
				fl.Flush()
			}
		}
	}
}
