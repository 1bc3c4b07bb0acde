package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubResolver struct {
	user *AuthUser
	err  error
}

func (s *stubResolver) Resolve(_ context.Context, _ *Claims) (*AuthUser, error) {
	return s.user, s.err
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Message
}

func TestGenerateToken_ClaimsRoundTrip(t *testing.T) {
	id := primitive.NewObjectID()
	InitAuth("test-secret", &stubResolver{})

	token, err := GenerateToken(id, "admin@example.com", "admin", "Ana")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.Hex(), claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "Ana", claims.Username)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseToken_RejectsExpired(t *testing.T) {
	InitAuth("test-secret", &stubResolver{})

	expired := &Claims{
		Email: "old@example.com",
		Role:  "client",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   primitive.NewObjectID().Hex(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_RejectsWrongSecret(t *testing.T) {
	InitAuth("test-secret", &stubResolver{})
	token, err := GenerateToken(primitive.NewObjectID(), "a@example.com", "client", "")
	require.NoError(t, err)

	InitAuth("other-secret", &stubResolver{})
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestProtect_NoToken(t *testing.T) {
	InitAuth("test-secret", &stubResolver{})
	next, called := okHandler()

	rec := httptest.NewRecorder()
	Protect(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/clients", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized, no token", decodeMessage(t, rec))
	assert.False(t, *called)
}

func TestProtect_MalformedToken(t *testing.T) {
	InitAuth("test-secret", &stubResolver{})
	next, called := okHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	Protect(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestProtect_DeletedIdentityRevokesToken(t *testing.T) {
	// Signature and expiry both pass; resolution fails
	InitAuth("test-secret", &stubResolver{err: ErrIdentityNotFound})
	token, err := GenerateToken(primitive.NewObjectID(), "gone@example.com", "client", "")
	require.NoError(t, err)

	next, called := okHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	Protect(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized, user not found", decodeMessage(t, rec))
	assert.False(t, *called)
}

func TestProtect_AttachesAuthUser(t *testing.T) {
	id := primitive.NewObjectID()
	InitAuth("test-secret", &stubResolver{user: &AuthUser{ID: id, Email: "ok@example.com", Role: "admin"}})
	token, err := GenerateToken(id, "ok@example.com", "admin", "")
	require.NoError(t, err)

	var got *AuthUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = AuthUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	Protect(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "admin", got.Role)
}

func TestAuthorize_DeniesRoleNotInAllowList(t *testing.T) {
	next, called := okHandler()
	handler := Authorize("admin")(next)

	req := httptest.NewRequest(http.MethodDelete, "/api/clients/abc", nil)
	req = req.WithContext(WithAuthUser(req.Context(), &AuthUser{Role: "client"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "User role client is not authorized to access this route", decodeMessage(t, rec))
	assert.False(t, *called)
}

func TestAuthorize_AllowsListedRole(t *testing.T) {
	next, called := okHandler()
	handler := Authorize("caregiver", "admin")(next)

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req = req.WithContext(WithAuthUser(req.Context(), &AuthUser{Role: "caregiver"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestAuthorize_MissingIdentity(t *testing.T) {
	next, called := okHandler()
	handler := Authorize("admin")(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/clients", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, decodeMessage(t, rec), "undefined")
	assert.False(t, *called)
}
