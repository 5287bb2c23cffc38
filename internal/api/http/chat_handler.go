package http

import (
	"net/http"

	"skillswap-backend/internal/domain"
)

type chatMessageRequest struct {
	Message string `json:"message" validate:"notblank,max=2000"`
}

type chatBody struct {
	Session  *domain.ChatSession  `json:"session"`
	Messages []domain.ChatMessage `json:"messages"`
}

func (s *Server) startChat(w http.ResponseWriter, r *http.Request) {
	session, msgs, err := s.svc.Chat.Start(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatBody{Session: session, Messages: msgs})
}

func (s *Server) activeChat(w http.ResponseWriter, r *http.Request) {
	session, msgs, err := s.svc.Chat.Active(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatBody{Session: session, Messages: msgs})
}

func (s *Server) sendChat(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req chatMessageRequest
	if !s.decode(w, r, &req) {
		return
	}
	msg, err := s.svc.Chat.SendAsUser(r.Context(), caller(r).ID, id, req.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) chatHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	msgs, err := s.svc.Chat.History(r.Context(), caller(r).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, msgs, int32(len(msgs)))
}

func (s *Server) listChatSessions(w http.ResponseWriter, r *http.Request) {
	var status domain.ChatSessionStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		var err error
		if status, err = domain.Parse[domain.ChatSessionStatus](raw); err != nil {
			writeError(w, r, badQuery("status", err))
			return
		}
	}
	sessions, err := s.svc.Chat.ListSessions(r.Context(), status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, sessions, int32(len(sessions)))
}

func (s *Server) chatMessages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	msgs, err := s.svc.Chat.Messages(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, msgs, int32(len(msgs)))
}

func (s *Server) adminSendChat(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req chatMessageRequest
	if !s.decode(w, r, &req) {
		return
	}
	msg, err := s.svc.Chat.SendAsAdmin(r.Context(), callerAdmin(r).ID, id, req.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) closeChat(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	session, err := s.svc.Chat.Close(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}
