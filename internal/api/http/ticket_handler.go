package http

import (
	"net/http"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/service"
)

type ticketRequest struct {
	Subject  string `json:"subject" validate:"notblank,max=200"`
	Category string `json:"category" validate:"max=50"`
	Message  string `json:"message" validate:"notblank,max=5000"`
}

type replyRequest struct {
	Reply string `json:"reply" validate:"notblank,max=5000"`
}

func (s *Server) submitTicket(w http.ResponseWriter, r *http.Request) {
	var req ticketRequest
	if !s.decode(w, r, &req) {
		return
	}
	ticket, err := s.svc.Ticket.Submit(r.Context(), caller(r).ID, service.TicketInput{
		Subject:  req.Subject,
		Category: req.Category,
		Message:  req.Message,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

func (s *Server) myTickets(w http.ResponseWriter, r *http.Request) {
	page, size, err := s.pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tickets, total, err := s.svc.Ticket.ListMine(r.Context(), caller(r).ID, page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, tickets, total)
}

func (s *Server) listTickets(w http.ResponseWriter, r *http.Request) {
	var f domain.TicketFilter
	var err error
	if f.Page, f.PageSize, err = s.pageParams(r); err != nil {
		writeError(w, r, err)
		return
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		if f.Status, err = domain.Parse[domain.TicketStatus](raw); err != nil {
			writeError(w, r, badQuery("status", err))
			return
		}
	}
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := queryInt32(r, "user_id", 0)
		if err != nil {
			writeError(w, r, err)
			return
		}
		f.UserID = &id
	}
	tickets, total, err := s.svc.Ticket.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, tickets, total)
}

func (s *Server) getTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	ticket, err := s.svc.Ticket.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (s *Server) replyTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req replyRequest
	if !s.decode(w, r, &req) {
		return
	}
	ticket, err := s.svc.Ticket.Reply(r.Context(), callerAdmin(r).ID, id, req.Reply)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (s *Server) resolveTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	ticket, err := s.svc.Ticket.Resolve(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}
