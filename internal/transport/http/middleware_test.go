package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamezone/internal/model"
	"gamezone/internal/service"
)

type mockAuth struct {
	user      *model.User
	verifyErr error
	calls     int
	loginRes  *model.LoginResult
	loginErr  error
	logoutErr error
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (*model.LoginResult, error) {
	return m.loginRes, m.loginErr
}

func (m *mockAuth) Logout(ctx context.Context, token string) error {
	return m.logoutErr
}

func (m *mockAuth) VerifyToken(ctx context.Context, token string) (*model.User, error) {
	m.calls++
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	return m.user, nil
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func guardedEcho(t *testing.T, auth *mockAuth) http.HandlerFunc {
	t.Helper()
	h := NewHandler(auth, nil, nil, nil)
	return h.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFrom(r.Context())
		require.True(t, ok, "guard must attach the resolved user")
		h.respond(w, http.StatusOK, "ok", map[string]any{"user_id": user.ID})
	})
}

func testUser() *model.User {
	return &model.User{
		ID:      uuid.New(),
		Email:   "alice@example.com",
		Balance: decimal.NewFromInt(500),
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	auth := &mockAuth{user: testUser()}
	handler := guardedEcho(t, auth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication failed", decodeEnvelope(t, rec).Message)
	assert.Zero(t, auth.calls, "no verification without a credential")
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	auth := &mockAuth{user: testUser()}
	handler := guardedEcho(t, auth)

	for _, header := range []string{"Bearer", "Bearer ", "Token abc", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
	assert.Zero(t, auth.calls)
}

func TestRequireAuth_InvalidCredential(t *testing.T) {
	auth := &mockAuth{verifyErr: service.ErrUnauthorized}
	handler := guardedEcho(t, auth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer some.alleged.token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// The generic message hides whether the token was malformed, expired or revoked.
	assert.Equal(t, "Authentication failed", decodeEnvelope(t, rec).Message)
}

func TestRequireAuth_StorageFailure(t *testing.T) {
	auth := &mockAuth{verifyErr: errors.New("revocation check: redis down")}
	handler := guardedEcho(t, auth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer some.valid.token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireAuth_AttachesIdentity(t *testing.T) {
	user := testUser()
	auth := &mockAuth{user: user}
	handler := guardedEcho(t, auth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer some.valid.token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, auth.calls)

	var data struct {
		UserID uuid.UUID `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	assert.Equal(t, user.ID, data.UserID)
}
