package http

import (
	"net/http"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/service"
)

type rewardRequest struct {
	Name          string `json:"name" validate:"notblank,max=200"`
	Description   string `json:"description"`
	PointsCost    int32  `json:"points_cost" validate:"gt=0"`
	IsActive      bool   `json:"is_active"`
	TotalQuantity *int32 `json:"total_quantity" validate:"omitempty,gte=0"`
}

func (req rewardRequest) input() service.RewardInput {
	return service.RewardInput{
		Name:          req.Name,
		Description:   req.Description,
		PointsCost:    req.PointsCost,
		IsActive:      req.IsActive,
		TotalQuantity: req.TotalQuantity,
	}
}

func (s *Server) listCatalogRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := s.svc.Reward.ListRewards(r.Context(), true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, rewards, int32(len(rewards)))
}

func (s *Server) adminListRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := s.svc.Reward.ListRewards(r.Context(), queryBool(r, "active_only"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, rewards, int32(len(rewards)))
}

func (s *Server) createReward(w http.ResponseWriter, r *http.Request) {
	var req rewardRequest
	if !s.decode(w, r, &req) {
		return
	}
	reward, err := s.svc.Reward.CreateReward(r.Context(), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reward)
}

func (s *Server) updateReward(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req rewardRequest
	if !s.decode(w, r, &req) {
		return
	}
	reward, err := s.svc.Reward.UpdateReward(r.Context(), id, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reward)
}

func (s *Server) redeem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	redemption, err := s.svc.Reward.RequestRedemption(r.Context(), caller(r).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, redemption)
}

func (s *Server) myRedemptions(w http.ResponseWriter, r *http.Request) {
	redemptions, err := s.svc.Reward.ListMyRedemptions(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, redemptions, int32(len(redemptions)))
}

func (s *Server) cancelMyRedemption(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	redemption, err := s.svc.Reward.CancelOwnRedemption(r.Context(), caller(r).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, redemption)
}

func (s *Server) listRedemptions(w http.ResponseWriter, r *http.Request) {
	page, size, err := s.pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var status domain.RedemptionStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		if status, err = domain.Parse[domain.RedemptionStatus](raw); err != nil {
			writeError(w, r, badQuery("status", err))
			return
		}
	}
	redemptions, total, err := s.svc.Reward.ListRedemptions(r.Context(), status, page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, redemptions, total)
}

// redemptionAction adapts the single-id admin operations on redemptions.
func (s *Server) redemptionAction(op func(*http.Request, int32) (*domain.RewardRedemption, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		redemption, err := op(r, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, redemption)
	}
}

func (s *Server) approveRedemption(w http.ResponseWriter, r *http.Request) {
	s.redemptionAction(func(r *http.Request, id int32) (*domain.RewardRedemption, error) {
		return s.svc.Reward.ApproveRedemption(r.Context(), id)
	})(w, r)
}

func (s *Server) markRedeemed(w http.ResponseWriter, r *http.Request) {
	s.redemptionAction(func(r *http.Request, id int32) (*domain.RewardRedemption, error) {
		return s.svc.Reward.MarkRedeemed(r.Context(), id)
	})(w, r)
}

func (s *Server) cancelRedemption(w http.ResponseWriter, r *http.Request) {
	s.redemptionAction(func(r *http.Request, id int32) (*domain.RewardRedemption, error) {
		return s.svc.Reward.CancelRedemption(r.Context(), id)
	})(w, r)
}
