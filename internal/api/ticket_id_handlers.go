package api

import (
	"net/http"

	"github.com/kloudinfotech/helpdesk-console/internal/pkg/httputil"
	"github.com/kloudinfotech/helpdesk-console/internal/session"
)

type ticketIDResponse struct {
	ID   *int64 `json:"id"`
	Next *int64 `json:"next"`
}

func newTicketIDResponse(t *session.TicketID) ticketIDResponse {
	if t == nil {
		return ticketIDResponse{}
	}
	id, next := t.ID, t.Next()
	return ticketIDResponse{ID: &id, Next: &next}
}

// GetTicketID returns the manual ticket ID seeded for this session.
//
//	GET /api/admin/ticket-id
func (h *Handlers) GetTicketID(w http.ResponseWriter, r *http.Request) {
	t, err := h.ticketIDs.Get(r.Context(), sessionID(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httputil.OK(w, newTicketIDResponse(t))
}

// SetTicketID seeds the next ticket number.
//
//	PUT /api/admin/ticket-id {id}
func (h *Handlers) SetTicketID(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID int64 `json:"id"`
	}
	if !httputil.Decode(w, r, &in) {
		return
	}
	t, err := h.ticketIDs.Set(r.Context(), sessionID(r), in.ID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httputil.OK(w, newTicketIDResponse(t))
}

// ClearTicketID removes the seeded ticket number.
//
//	DELETE /api/admin/ticket-id
func (h *Handlers) ClearTicketID(w http.ResponseWriter, r *http.Request) {
	if err := h.ticketIDs.Clear(r.Context(), sessionID(r)); err != nil {
		h.respondError(w, r, err)
		return
	}
	httputil.NoContent(w)
}
