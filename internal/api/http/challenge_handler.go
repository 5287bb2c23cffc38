package http

import (
	"net/http"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/security"
	"skillswap-backend/internal/service"
)

type challengeRequest struct {
	Title       string    `json:"title" validate:"notblank,max=200"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	BonusPoints int32     `json:"bonus_points" validate:"gte=0"`
	TargetCount int32     `json:"target_count" validate:"gte=0"`
}

func (req challengeRequest) input() service.ChallengeInput {
	return service.ChallengeInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		BonusPoints: req.BonusPoints,
		TargetCount: req.TargetCount,
	}
}

type reviewRequest struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment" validate:"max=1000"`
}

func (s *Server) challengeFilter(r *http.Request) (domain.ChallengeFilter, error) {
	var f domain.ChallengeFilter
	var err error
	f.Search = r.URL.Query().Get("search")
	f.Page, f.PageSize, err = s.pageParams(r)
	return f, err
}

func (s *Server) listCatalogChallenges(w http.ResponseWriter, r *http.Request) {
	f, err := s.challengeFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	f.Statuses = []domain.ChallengeStatus{domain.ChallengeStatusPublished}
	challenges, total, err := s.svc.Challenge.ListChallenges(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, challenges, total)
}

func (s *Server) adminListChallenges(w http.ResponseWriter, r *http.Request) {
	f, err := s.challengeFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if f.Statuses, err = domain.ParseList[domain.ChallengeStatus](queryList(r, "status")); err != nil {
		writeError(w, r, badQuery("status", err))
		return
	}
	f.IncludeArchived = queryBool(r, "include_archived")
	challenges, total, err := s.svc.Challenge.ListChallenges(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, challenges, total)
}

func (s *Server) getChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	challenge, err := s.svc.Challenge.GetChallenge(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, admin := security.AdminFrom(r.Context()); !admin && (challenge.Status != domain.ChallengeStatusPublished || challenge.IsArchived()) {
		writeError(w, r, service.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

func (s *Server) createChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if !s.decode(w, r, &req) {
		return
	}
	challenge, err := s.svc.Challenge.CreateChallenge(r.Context(), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, challenge)
}

func (s *Server) updateChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req challengeRequest
	if !s.decode(w, r, &req) {
		return
	}
	challenge, err := s.svc.Challenge.UpdateChallenge(r.Context(), id, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

func (s *Server) transitionChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req transitionRequest
	if !s.decode(w, r, &req) {
		return
	}
	challenge, err := s.svc.Challenge.Transition(r.Context(), id, domain.Transition(req.Action), service.TransitionOptions{
		Reason: req.Reason,
		Notify: req.Notify,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

func (s *Server) archiveChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	challenge, err := s.svc.Challenge.Archive(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

func (s *Server) deleteChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.Challenge.DeleteChallenge(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) submitChallenge(w http.ResponseWriter, r *http.Request) {
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

	sub, err := s.svc.Challenge.Submit(r.Context(), caller(r).ID, id, proof, r.FormValue("description"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) latestSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	sub, err := s.svc.Challenge.LatestSubmission(r.Context(), caller(r).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) listSubmissions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var status domain.SubmissionStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		if status, err = domain.Parse[domain.SubmissionStatus](raw); err != nil {
			writeError(w, r, badQuery("status", err))
			return
		}
	}
	subs, err := s.svc.Challenge.ListSubmissions(r.Context(), id, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, subs, int32(len(subs)))
}

func (s *Server) reviewSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req reviewRequest
	if !s.decode(w, r, &req) {
		return
	}
	sub, err := s.svc.Challenge.ReviewSubmission(r.Context(), id, req.Approve, req.Comment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
