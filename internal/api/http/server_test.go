package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/security"

	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testServer struct {
	*Server
	auth    *MockAuthService
	users   *MockUserService
	events  *MockEventService
	booking *MockBookingService
	rewards *MockRewardService
	media   *MockMediaService
	tokens  security.TokenManager
}

func newTestServer() *testServer {
	ts := &testServer{
		auth:    new(MockAuthService),
		users:   new(MockUserService),
		events:  new(MockEventService),
		booking: new(MockBookingService),
		rewards: new(MockRewardService),
		media:   new(MockMediaService),
		tokens:  security.NewTokenManager(testSecret, time.Hour),
	}
	ts.Server = NewServer(Services{
		Auth:    ts.auth,
		User:    ts.users,
		Event:   ts.events,
		Booking: ts.booking,
		Reward:  ts.rewards,
		Media:   ts.media,
	}, ts.tokens, false, 20)
	return ts
}

func (ts *testServer) userToken(t *testing.T, id int32) string {
	t.Helper()
	token, _, err := ts.tokens.GenerateUserSession(&domain.User{ID: id, Role: domain.UserRoleYouth})
	require.NoError(t, err)
	return token
}

func (ts *testServer) adminToken(t *testing.T, id int32) string {
	t.Helper()
	token, _, err := ts.tokens.GenerateAdminSession(&domain.Admin{ID: id, Privilege: domain.AdminPrivilegeStandard})
	require.NoError(t, err)
	return token
}

// do sends a request through h. body is JSON-encoded unless it is nil.
func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
