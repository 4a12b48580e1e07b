package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/raushankrgupta/student-insight-backend/config"
	"github.com/raushankrgupta/student-insight-backend/models"
	"github.com/raushankrgupta/student-insight-backend/store"
	"github.com/raushankrgupta/student-insight-backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserFinder struct {
	user  *models.User
	err   error
	calls int
}

func (f *fakeUserFinder) FindByID(ctx context.Context, id string) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.user != nil && f.user.ID.Hex() == id {
		return f.user, nil
	}
	return nil, store.ErrNotFound
}

func testUser() *models.User {
	return &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Asha",
		Email: "a@x.com",
	}
}

func issueTestToken(t *testing.T, userID string, ttl time.Duration) string {
	t.Helper()
	token, err := utils.GenerateToken(config.JWTSecret, userID, ttl)
	require.NoError(t, err)
	return token
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Envelope {
	t.Helper()
	var envelope utils.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope
}

func init() {
	config.JWTSecret = []byte("middleware-test-secret")
}

func TestRequireAuthNoCredentials(t *testing.T) {
	finder := &fakeUserFinder{}
	handlerCalled := false
	handler := RequireAuth(finder, func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, handlerCalled)
	// rejected before the credential store is ever touched
	assert.Zero(t, finder.calls)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "error", envelope.Status)
	assert.NotEmpty(t, envelope.Message)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	finder := &fakeUserFinder{}
	handler := RequireAuth(finder, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, finder.calls)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	user := testUser()
	finder := &fakeUserFinder{user: user}
	handler := RequireAuth(finder, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, user.ID.Hex(), -time.Minute))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Contains(t, envelope.Message, "expired")
}

func TestRequireAuthCookieToken(t *testing.T) {
	user := testUser()
	finder := &fakeUserFinder{user: user}

	var seenID string
	handler := RequireAuth(finder, func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserIDFromContext(r.Context())
		require.NoError(t, err)
		seenID = id
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: issueTestToken(t, user.ID.Hex(), time.Hour)})
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID.Hex(), seenID)
	assert.Equal(t, 1, finder.calls)
}

func TestRequireAuthHeaderTakesPrecedenceOverCookie(t *testing.T) {
	user := testUser()
	finder := &fakeUserFinder{user: user}

	handlerCalled := false
	handler := RequireAuth(finder, func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		got, err := GetUserFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, user.ID.Hex(), time.Hour))
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "garbage-cookie-token"})
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, handlerCalled)
}

func TestRequireAuthVanishedUser(t *testing.T) {
	finder := &fakeUserFinder{err: store.ErrNotFound}
	handler := RequireAuth(finder, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, primitive.NewObjectID().Hex(), time.Hour))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 1, finder.calls)
	envelope := decodeEnvelope(t, rec)
	assert.Contains(t, envelope.Message, "no longer exists")
}

func TestRequireAuthStoreFailure(t *testing.T) {
	finder := &fakeUserFinder{err: fmt.Errorf("connection reset")}
	handler := RequireAuth(finder, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, primitive.NewObjectID().Hex(), time.Hour))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// internal detail stays server-side
	envelope := decodeEnvelope(t, rec)
	assert.NotContains(t, envelope.Message, "connection reset")
}

func TestGetUserFromContextMissing(t *testing.T) {
	_, err := GetUserFromContext(context.Background())
	assert.Error(t, err)

	_, err = GetUserIDFromContext(context.Background())
	assert.Error(t, err)
}
