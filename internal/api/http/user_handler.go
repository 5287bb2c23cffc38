package http

import (
	"net/http"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/service"
)

type profileRequest struct {
	Name       string  `json:"name" validate:"notblank,max=120"`
	GrcID      *int32  `json:"grc_id" validate:"omitempty,gt=0"`
	Language   string  `json:"language" validate:"max=20"`
	Profession string  `json:"profession" validate:"max=120"`
	Bio        string  `json:"bio" validate:"max=2000"`
	BirthDate  *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

type passwordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// Limits are rechecked by the service after names are normalized.
type skillsRequest struct {
	Teach []string `json:"teach_skills" validate:"max=30,dive,max=50"`
	Learn []string `json:"learn_skills" validate:"max=30,dive,max=50"`
}

type adjustPointsRequest struct {
	Points  int32  `json:"points" validate:"required"`
	Remarks string `json:"remarks" validate:"max=500"`
}

type pointsBody struct {
	Balance      int32                      `json:"balance"`
	Transactions []domain.PointsTransaction `json:"transactions"`
	Total        int32                      `json:"total"`
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := s.svc.User.Dashboard(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.User.GetProfile(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !s.decode(w, r, &req) {
		return
	}
	in := service.ProfileInput{
		Name:       req.Name,
		GrcID:      req.GrcID,
		Language:   req.Language,
		Profession: req.Profession,
		Bio:        req.Bio,
	}
	if req.BirthDate != nil {
		// Format already checked by the validator.
		d, _ := time.Parse("2006-01-02", *req.BirthDate)
		in.BirthDate = &d
	}
	user, err := s.svc.User.UpdateProfile(r.Context(), caller(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	photo, file, err := formUpload(r, "photo")
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Close()

	user, err := s.svc.User.UploadPhoto(r.Context(), caller(r).ID, photo)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.svc.User.ChangePassword(r.Context(), caller(r).ID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) myPoints(w http.ResponseWriter, r *http.Request) {
	page, size, err := s.pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	userID := caller(r).ID
	balance, err := s.svc.Points.Balance(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	txs, total, err := s.svc.Points.History(r.Context(), userID, page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if txs == nil {
		txs = []domain.PointsTransaction{}
	}
	writeJSON(w, http.StatusOK, pointsBody{Balance: balance, Transactions: txs, Total: total})
}

func (s *Server) listSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := s.svc.User.ListSkills(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if skills == nil {
		skills = []domain.Skill{}
	}
	writeJSON(w, http.StatusOK, skills)
}

func (s *Server) mySkills(w http.ResponseWriter, r *http.Request) {
	skills, err := s.svc.User.GetSkills(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (s *Server) updateSkills(w http.ResponseWriter, r *http.Request) {
	var req skillsRequest
	if !s.decode(w, r, &req) {
		return
	}
	skills, err := s.svc.User.UpdateSkills(r.Context(), caller(r).ID, service.SkillsInput{Teach: req.Teach, Learn: req.Learn})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	page, size, err := s.pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var status domain.VerificationStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		if status, err = domain.Parse[domain.VerificationStatus](raw); err != nil {
			writeError(w, r, badQuery("status", err))
			return
		}
	}
	users, total, err := s.svc.User.ListUsers(r.Context(), status, page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, users, total)
}

func (s *Server) verifyUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.User.VerifyUser(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) rejectUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.User.RejectUser(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adjustPoints(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req adjustPointsRequest
	if !s.decode(w, r, &req) {
		return
	}
	user, err := s.svc.Points.Adjust(r.Context(), id, req.Points, req.Remarks)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
