package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/repository"
	"skillswap-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestUserService() (*userService, *mockRepos, *MockMediaService) {
	m, repos, tx := newMockRepos()
	media := new(MockMediaService)
	return &userService{repos: repos, tx: tx, media: media, now: fixedClock(testNow)}, m, media
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	hash, err := security.HashPassword("old-password")
	require.NoError(t, err)

	t.Run("Google Account Refused", func(t *testing.T) {
		svc, m, _ := newTestUserService()
		m.users.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10, PasswordHash: domain.GoogleOAuthPasswordMarker}, nil)

		err := svc.ChangePassword(ctx, 10, "", "new-password")
		assert.ErrorIs(t, err, ErrGoogleAccountPassword)
	})

	t.Run("Wrong Current Password", func(t *testing.T) {
		svc, m, _ := newTestUserService()
		m.users.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10, PasswordHash: hash}, nil)

		err := svc.ChangePassword(ctx, 10, "guess", "new-password")
		assert.ErrorIs(t, err, ErrValidation)
		m.users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Stores New Hash", func(t *testing.T) {
		svc, m, _ := newTestUserService()
		m.users.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10, PasswordHash: hash}, nil)
		m.users.On("UpdatePassword", mock.Anything, int32(10), mock.MatchedBy(func(h string) bool {
			return security.CheckPassword(h, "new-password") == nil
		})).Return(nil)

		require.NoError(t, svc.ChangePassword(ctx, 10, "old-password", "new-password"))
		m.users.AssertExpectations(t)
	})
}

func TestUserService_Dashboard(t *testing.T) {
	svc, m, _ := newTestUserService()
	soon := testNow.Add(24 * time.Hour)
	past := testNow.Add(-24 * time.Hour)
	m.users.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10, TotalPoints: 120}, nil)
	m.bookings.On("CompletionStats", mock.Anything, int32(10)).Return(int32(3), 7.5, nil)
	m.notifications.On("CountUnread", mock.Anything, int32(10)).Return(int32(2), nil)
	m.bookings.On("ListByUser", mock.Anything, int32(10)).Return([]domain.Booking{
		{ID: 1, Status: domain.BookingStatusBooked, EventStartAt: &soon},
		{ID: 2, Status: domain.BookingStatusBooked, EventStartAt: &past},
		{ID: 3, Status: domain.BookingStatusCompleted, EventStartAt: &past},
	}, nil)

	dash, err := svc.Dashboard(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int32(120), dash.User.TotalPoints)
	assert.Equal(t, int32(3), dash.EventsCompleted)
	assert.Equal(t, 7.5, dash.TotalHours)
	assert.Equal(t, int32(2), dash.UnreadCount)
	require.Len(t, dash.UpcomingBookings, 1)
	assert.Equal(t, int32(1), dash.UpcomingBookings[0].ID)
}

func TestUserService_Verification(t *testing.T) {
	ctx := context.Background()

	t.Run("Verify Pending", func(t *testing.T) {
		svc, m, _ := newTestUserService()
		m.users.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10, VerificationStatus: domain.VerificationPending}, nil)
		m.users.On("SetVerification", mock.Anything, int32(10), domain.VerificationVerified).Return(nil)
		m.notifications.On("Create", mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, svc.VerifyUser(ctx, 10))
		m.users.AssertExpectations(t)
	})

	t.Run("Reject Verified Refused", func(t *testing.T) {
		svc, m, _ := newTestUserService()
		m.users.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10, VerificationStatus: domain.VerificationVerified}, nil)

		err := svc.RejectUser(ctx, 10)
		assert.ErrorIs(t, err, ErrAlreadyVerified)
		m.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Unknown User", func(t *testing.T) {
		svc, m, _ := newTestUserService()
		m.users.On("GetByID", mock.Anything, int32(99)).Return(nil, repository.ErrNotFound)

		assert.ErrorIs(t, svc.VerifyUser(ctx, 99), ErrNotFound)
	})
}

func TestUserService_UploadPhoto(t *testing.T) {
	svc, m, media := newTestUserService()
	user := &domain.User{ID: 10, ProfilePhoto: "profile_photos/10/old.png"}
	photo := Upload{Filename: "me.png", ContentType: "image/png", Size: 10}
	m.users.On("GetByID", mock.Anything, int32(10)).Return(user, nil)
	media.On("Save", mock.Anything, MediaProfilePhotos, int32(10), photo).Return("profile_photos/10/new.png", nil)
	m.users.On("Update", mock.Anything, user).Return(nil)
	media.On("Delete", mock.Anything, "profile_photos/10/old.png").Return(nil)

	res, err := svc.UploadPhoto(context.Background(), 10, photo)
	require.NoError(t, err)
	assert.Equal(t, "profile_photos/10/new.png", res.ProfilePhoto)
	media.AssertExpectations(t)

	_, err = svc.UploadPhoto(context.Background(), 10, Upload{Filename: "cv.pdf", ContentType: "application/pdf"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserService_UpdateSkills(t *testing.T) {
	ctx := context.Background()

	t.Run("Reuses Catalog Names Ignoring Case", func(t *testing.T) {
		svc, m, _ := newTestUserService()
		m.users.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10}, nil)
		m.skills.On("Ensure", mock.Anything, "Baking").Return(int32(3), nil).Once()
		m.skills.On("Ensure", mock.Anything, "Video Editing").Return(int32(4), nil).Once()
		m.skills.On("Ensure", mock.Anything, "Mahjong").Return(int32(5), nil).Once()
		m.skills.On("ReplaceForUser", mock.Anything, int32(10), domain.SkillKindTeach, []int32{3, 4}).Return(nil).Once()
		m.skills.On("ReplaceForUser", mock.Anything, int32(10), domain.SkillKindLearn, []int32{5}).Return(nil).Once()
		want := &domain.UserSkills{Teach: []string{"Baking", "Video Editing"}, Learn: []string{"Mahjong"}}
		m.skills.On("ListForUser", mock.Anything, int32(10)).Return(want, nil)

		got, err := svc.UpdateSkills(ctx, 10, SkillsInput{
			Teach: []string{" Baking", "baking", "Video   Editing", ""},
			Learn: []string{"Mahjong", "MAHJONG"},
		})
		require.NoError(t, err)
		assert.Equal(t, want, got)
		m.skills.AssertExpectations(t)
		assert.Equal(t, 1, svc.tx.(*fakeTx).calls)
	})

	t.Run("Empty Lists Clear Both", func(t *testing.T) {
		svc, m, _ := newTestUserService()
		m.users.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10}, nil)
		m.skills.On("ReplaceForUser", mock.Anything, int32(10), domain.SkillKindTeach, []int32{}).Return(nil).Once()
		m.skills.On("ReplaceForUser", mock.Anything, int32(10), domain.SkillKindLearn, []int32{}).Return(nil).Once()
		m.skills.On("ListForUser", mock.Anything, int32(10)).Return(&domain.UserSkills{Teach: []string{}, Learn: []string{}}, nil)

		got, err := svc.UpdateSkills(ctx, 10, SkillsInput{})
		require.NoError(t, err)
		assert.Empty(t, got.Teach)
		m.skills.AssertNotCalled(t, "Ensure", mock.Anything, mock.Anything)
	})

	t.Run("Overlong Name Writes Nothing", func(t *testing.T) {
		svc, m, _ := newTestUserService()

		_, err := svc.UpdateSkills(ctx, 10, SkillsInput{Learn: []string{strings.Repeat("a", domain.MaxSkillNameLength+1)}})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "learn_skills", verr.Fields[0].Field)
		assert.Zero(t, svc.tx.(*fakeTx).calls)
		m.skills.AssertNotCalled(t, "Ensure", mock.Anything, mock.Anything)
	})

	t.Run("Too Many Skills", func(t *testing.T) {
		svc, _, _ := newTestUserService()
		names := make([]string, domain.MaxSkillsPerList+1)
		for i := range names {
			names[i] = fmt.Sprintf("Skill %d", i)
		}

		_, err := svc.UpdateSkills(ctx, 10, SkillsInput{Teach: names})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "teach_skills", verr.Fields[0].Field)
	})

	t.Run("Unknown User", func(t *testing.T) {
		svc, m, _ := newTestUserService()
		m.users.On("GetByID", mock.Anything, int32(99)).Return(nil, errNotFoundRepo)

		_, err := svc.UpdateSkills(ctx, 99, SkillsInput{Teach: []string{"Baking"}})
		assert.ErrorIs(t, err, ErrNotFound)
		m.skills.AssertNotCalled(t, "Ensure", mock.Anything, mock.Anything)
	})
}

func TestUserService_GetSkills(t *testing.T) {
	svc, m, _ := newTestUserService()
	m.users.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10}, nil)
	m.skills.On("ListForUser", mock.Anything, int32(10)).Return(&domain.UserSkills{Teach: []string{"Baking"}, Learn: []string{}}, nil)

	got, err := svc.GetSkills(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Baking"}, got.Teach)
}
