package http

import (
	"net/http"

	"skillswap-backend/internal/domain"
)

type pushRequest struct {
	UserID      int32  `json:"user_id" validate:"gt=0"`
	Message     string `json:"message" validate:"notblank,max=1000"`
	EventID     *int32 `json:"event_id" validate:"omitempty,gt=0"`
	ChallengeID *int32 `json:"challenge_id" validate:"omitempty,gt=0"`
}

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	page, size, err := s.pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	notes, total, err := s.svc.Notification.List(r.Context(), caller(r).ID, page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, notes, total)
}

func (s *Server) unreadNotifications(w http.ResponseWriter, r *http.Request) {
	notes, err := s.svc.Notification.ListUnread(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, notes, int32(len(notes)))
}

func (s *Server) markRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.Notification.MarkAsRead(r.Context(), caller(r).ID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) markAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.Notification.MarkAllAsRead(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"marked": n})
}

func (s *Server) pushNotification(w http.ResponseWriter, r *http.Request) {
	var req pushRequest
	if !s.decode(w, r, &req) {
		return
	}
	note := &domain.Notification{
		UserID:      req.UserID,
		Message:     req.Message,
		EventID:     req.EventID,
		ChallengeID: req.ChallengeID,
	}
	if err := s.svc.Notification.Push(r.Context(), note); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}
