package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"healthcare-admin-api/pkg/jwt"
	"healthcare-admin-api/pkg/response"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type contextKey string

// Context keys set by Authenticate for downstream handlers and usecases
const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	RoleIDKey    contextKey = "role_id"
	TokenIDKey   contextKey = "token_id"
)

var (
	errMissingAuthHeader = errors.New("authorization header missing")
	errNotBearer         = errors.New("authorization header is not a bearer token")
)

// AuthMiddleware authenticates requests with a bearer access token. A token
// must both verify cryptographically and still be present in the Redis
// allow-list; logout removes the Redis entry, which revokes the token
// before its expiry.
type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

// Authenticate rejects the request unless it carries a live access token,
// then stores the caller's identity and role in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if errors.Is(err, errMissingAuthHeader) {
			response.Unauthorized(w, "Authorization header is required")
			return
		}
		if err != nil {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		// Refresh tokens never authorize API calls
		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		revoked, err := m.isRevoked(r.Context(), claims)
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if revoked {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, RoleIDKey, claims.RoleID)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isRevoked checks the Redis allow-list; a token absent from the list was
// logged out (or never issued here)
func (m *AuthMiddleware) isRevoked(ctx context.Context, claims *jwt.Claims) (bool, error) {
	tokenKey := fmt.Sprintf("access_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := m.redisClient.Exists(ctx, tokenKey).Result()
	if err != nil {
		return false, err
	}
	return exists == 0, nil
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errMissingAuthHeader
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errNotBearer
	}
	return parts[1], nil
}

// GetUserIDFromContext extracts the authenticated user's ID
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmailFromContext extracts the authenticated user's email
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetTokenIDFromContext extracts the presented access token's ID
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

// GetRoleIDFromContext extracts the authenticated user's role ID
func GetRoleIDFromContext(ctx context.Context) (int, bool) {
	roleID, ok := ctx.Value(RoleIDKey).(int)
	return roleID, ok
}
