package http

import (
	"net/http"
	"testing"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRedeem(t *testing.T) {
	ts := newTestServer()
	router := ts.UserRouter()
	token := ts.userToken(t, 7)

	t.Run("Insufficient Points", func(t *testing.T) {
		ts.rewards.On("RequestRedemption", mock.Anything, int32(7), int32(2)).Return(nil, service.ErrInsufficientPoints).Once()
		rec := do(t, router, http.MethodPost, "/api/v1/rewards/2/redeem", token, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Requested", func(t *testing.T) {
		ts.rewards.On("RequestRedemption", mock.Anything, int32(7), int32(2)).
			Return(&domain.RewardRedemption{ID: 4, Status: domain.RedemptionRequested}, nil).Once()
		rec := do(t, router, http.MethodPost, "/api/v1/rewards/2/redeem", token, nil)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Cancel Someone Else's", func(t *testing.T) {
		ts.rewards.On("CancelOwnRedemption", mock.Anything, int32(7), int32(9)).Return(nil, service.ErrNotFound).Once()
		rec := do(t, router, http.MethodPost, "/api/v1/redemptions/9/cancel", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminRedemptions(t *testing.T) {
	ts := newTestServer()
	router := ts.AdminRouter()
	token := ts.adminToken(t, 1)

	t.Run("Status Filter", func(t *testing.T) {
		ts.rewards.On("ListRedemptions", mock.Anything, domain.RedemptionApproved, int32(2), int32(10)).
			Return([]domain.RewardRedemption{}, 0, nil).Once()
		rec := do(t, router, http.MethodGet, "/admin/api/v1/redemptions?status=approved&page=2&page_size=10", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"items":[],"total":0}`, rec.Body.String())
	})

	t.Run("Unknown Status", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/admin/api/v1/redemptions?status=lost", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Redeem Expired", func(t *testing.T) {
		ts.rewards.On("MarkRedeemed", mock.Anything, int32(4)).Return(nil, service.ErrConflict).Once()
		rec := do(t, router, http.MethodPost, "/admin/api/v1/redemptions/4/redeem", token, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
