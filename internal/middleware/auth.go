package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenTTL is the fixed token lifetime. There is no refresh flow;
// re-authentication is the only renewal path.
const TokenTTL = 8 * time.Hour

// Claims is the stateless token payload.
type Claims struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthUser is the live identity resolved for an authenticated request,
// attached to the request context by Protect. Never carries the hash.
type AuthUser struct {
	ID    primitive.ObjectID
	Email string
	Role  string
}

// ErrIdentityNotFound means the token was valid but its identity no longer
// exists. Deleting an identity revokes its outstanding tokens.
var ErrIdentityNotFound = errors.New("identity not found")

// IdentityResolver looks up the current identity record for verified claims.
type IdentityResolver interface {
	Resolve(ctx context.Context, claims *Claims) (*AuthUser, error)
}

var (
	jwtSecret []byte
	resolver  IdentityResolver
)

// InitAuth wires the signing secret and identity resolver once at bootstrap.
func InitAuth(secret string, r IdentityResolver) {
	jwtSecret = []byte(secret)
	resolver = r
}

// GenerateToken issues an 8-hour HS256 token for an identity.
func GenerateToken(id primitive.ObjectID, email, role, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email:    email,
		Role:     role,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

// ParseToken verifies signature and expiry and returns the claims.
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

type contextKey string

const authUserKey contextKey = "authUser"

// WithAuthUser returns a context carrying the resolved identity.
func WithAuthUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, authUserKey, user)
}

// AuthUserFromContext returns the identity Protect attached, if any.
func AuthUserFromContext(ctx context.Context) (*AuthUser, bool) {
	user, ok := ctx.Value(authUserKey).(*AuthUser)
	return user, ok
}

// Protect rejects requests without a valid bearer token and attaches the
// resolved identity to the request context. Fails closed on every path.
func Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		user, err := resolver.Resolve(r.Context(), claims)
		if err != nil {
			if errors.Is(err, ErrIdentityNotFound) {
				// Valid token for a deleted identity: revoked
				writeAuthError(w, http.StatusUnauthorized, "Not authorized, user not found")
				return
			}
			writeAuthError(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAuthUser(r.Context(), user)))
	})
}

// Authorize allows only the listed roles past. Must run after Protect.
func Authorize(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := AuthUserFromContext(r.Context())
			role := "undefined"
			if ok {
				role = user.Role
			}
			for _, allowed := range roles {
				if ok && user.Role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeAuthError(w, http.StatusForbidden,
				fmt.Sprintf("User role %s is not authorized to access this route", role))
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"success":false,"message":%q}`, message)
}
