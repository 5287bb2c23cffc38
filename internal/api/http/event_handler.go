package http

import (
	"net/http"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/security"
	"skillswap-backend/internal/service"
)

type eventRequest struct {
	Title               string     `json:"title" validate:"notblank,max=200"`
	Description         string     `json:"description"`
	Category            string     `json:"category" validate:"required,oneof=social_games arts_crafts technology health_wellness education community_service"`
	LedBy               string     `json:"led_by" validate:"required,oneof=youth senior employee"`
	StartAt             time.Time  `json:"start_at" validate:"required"`
	EndAt               *time.Time `json:"end_at"`
	Location            string     `json:"location"`
	GrcID               *int32     `json:"grc_id" validate:"omitempty,gt=0"`
	PointsMentor        int32      `json:"points_mentor" validate:"gte=0"`
	PointsParticipant   int32      `json:"points_participant" validate:"gte=0"`
	MentorCapacity      *int32     `json:"mentor_capacity" validate:"omitempty,gte=0"`
	ParticipantCapacity *int32     `json:"participant_capacity" validate:"omitempty,gte=0"`
}

func (req eventRequest) input(adminID int32) service.EventInput {
	return service.EventInput{
		Title:               req.Title,
		Description:         req.Description,
		Category:            domain.Category(req.Category),
		LedBy:               domain.LedBy(req.LedBy),
		StartAt:             req.StartAt,
		EndAt:               req.EndAt,
		Location:            req.Location,
		GrcID:               req.GrcID,
		PointsMentor:        req.PointsMentor,
		PointsParticipant:   req.PointsParticipant,
		MentorCapacity:      req.MentorCapacity,
		ParticipantCapacity: req.ParticipantCapacity,
		CreatedBy:           adminID,
	}
}

type transitionRequest struct {
	Action string `json:"action" validate:"required,oneof=approve publish unpublish void end"`
	Reason string `json:"reason" validate:"required_if=Action void,max=500"`
	Notify bool   `json:"notify"`
}

type signUpRequest struct {
	Role string `json:"role" validate:"required,oneof=mentor participant"`
}

type completeRequest struct {
	Hours *float64 `json:"hours" validate:"omitempty,gte=0,lte=24"`
}

// eventFilter reads the query parameters shared by the catalog and the
// console lists.
func (s *Server) eventFilter(r *http.Request) (domain.EventFilter, error) {
	var f domain.EventFilter
	var err error
	if f.Categories, err = domain.ParseList[domain.Category](queryList(r, "category")); err != nil {
		return f, badQuery("category", err)
	}
	if raw := r.URL.Query().Get("led_by"); raw != "" {
		if f.LedBy, err = domain.Parse[domain.LedBy](raw); err != nil {
			return f, badQuery("led_by", err)
		}
	}
	if raw := r.URL.Query().Get("grc_id"); raw != "" {
		id, err := queryInt32(r, "grc_id", 0)
		if err != nil {
			return f, err
		}
		f.GrcID = &id
	}
	f.Search = r.URL.Query().Get("search")
	if f.Page, f.PageSize, err = s.pageParams(r); err != nil {
		return f, err
	}
	return f, nil
}

// listCatalogEvents shows published, unarchived events only.
func (s *Server) listCatalogEvents(w http.ResponseWriter, r *http.Request) {
	f, err := s.eventFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	f.Statuses = []domain.EventStatus{domain.EventStatusPublished}
	events, total, err := s.svc.Event.ListEvents(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, events, total)
}

func (s *Server) adminListEvents(w http.ResponseWriter, r *http.Request) {
	f, err := s.eventFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if f.Statuses, err = domain.ParseList[domain.EventStatus](queryList(r, "status")); err != nil {
		writeError(w, r, badQuery("status", err))
		return
	}
	f.IncludeArchived = queryBool(r, "include_archived")
	events, total, err := s.svc.Event.ListEvents(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, events, total)
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	event, err := s.svc.Event.GetEvent(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// Participants only see what the catalog shows.
	if _, admin := security.AdminFrom(r.Context()); !admin && (event.Status != domain.EventStatusPublished || event.IsArchived()) {
		writeError(w, r, service.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !s.decode(w, r, &req) {
		return
	}
	event, err := s.svc.Event.CreateEvent(r.Context(), req.input(callerAdmin(r).ID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req eventRequest
	if !s.decode(w, r, &req) {
		return
	}
	event, err := s.svc.Event.UpdateEvent(r.Context(), id, req.input(callerAdmin(r).ID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) transitionEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req transitionRequest
	if !s.decode(w, r, &req) {
		return
	}
	event, err := s.svc.Event.Transition(r.Context(), id, domain.Transition(req.Action), service.TransitionOptions{
		Reason: req.Reason,
		Notify: req.Notify,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) archiveEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	event, err := s.svc.Event.Archive(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.Event.DeleteEvent(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) eventBookings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	bookings, err := s.svc.Event.ListBookings(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, bookings, int32(len(bookings)))
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req signUpRequest
	if !s.decode(w, r, &req) {
		return
	}
	booking, err := s.svc.Booking.SignUp(r.Context(), caller(r).ID, id, domain.RoleType(req.Role))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	booking, err := s.svc.Booking.Withdraw(r.Context(), caller(r).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) submitProof(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	proof, file, err := formUpload(r, "proof")
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Close()

	booking, err := s.svc.Booking.SubmitProof(r.Context(), caller(r).ID, id, proof, r.FormValue("reflection"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) awaitingVerification(w http.ResponseWriter, r *http.Request) {
	page, size, err := s.pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	bookings, total, err := s.svc.Booking.ListAwaitingVerification(r.Context(), page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, bookings, total)
}

func (s *Server) completeBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req completeRequest
	if !s.decode(w, r, &req) {
		return
	}
	booking, err := s.svc.Booking.MarkCompleted(r.Context(), id, req.Hours)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) schedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := s.svc.Booking.GetSchedule(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}
