package token

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"textbook_backend/internal/feature/auth/domain/entity"
	"textbook_backend/internal/feature/auth/usecase"
)

// ContextPrincipal is the Gin context key under which the resolved Principal is stored.
const ContextPrincipal = "principal"

// Principal is the identity resolved for an incoming request.
// The zero value is anonymous (no credential presented, or an optional
// credential that failed verification).
type Principal struct {
	User *entity.User
}

// Authenticated reports whether a valid, active user backs this principal.
func (p Principal) Authenticated() bool {
	return p.User != nil
}

// Superuser reports whether the principal is an authenticated superuser.
func (p Principal) Superuser() bool {
	return p.User != nil && p.User.IsSuperuser
}

// UserFinder is the store lookup the resolver needs to turn a token subject
// into a user. Following Go convention: interfaces are defined by the
// consumer (resolver), not the provider (adapters).
type UserFinder interface {
	// FindByID retrieves a user by ID, returning usecase.ErrUserNotFound if absent.
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// Resolver turns a request's bearer token into a Principal.
// Each request is evaluated fresh; there is no cross-request state.
type Resolver struct {
	codec *Codec
	users UserFinder
}

// NewResolver creates a new Resolver with the provided codec and user lookup.
func NewResolver(codec *Codec, users UserFinder) *Resolver {
	return &Resolver{codec: codec, users: users}
}

// bearerToken extracts the bearer credential from the Authorization header.
// It returns "" when no bearer credential is presented.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}

// resolve walks the verification chain for one request:
// token verify → subject claim → store lookup → active check.
// 失敗の区別は呼び出し側（Required / Authenticate）が行うため、
// ここでは (user, inactive, err) をそのまま返します。
func (r *Resolver) resolve(c *gin.Context, tokenStr string) (user *entity.User, inactive bool, err error) {
	claims, ok := r.codec.Verify(tokenStr)
	if !ok {
		return nil, false, nil
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, false, nil
	}

	u, err := r.users.FindByID(c.Request.Context(), sub)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			// Token outlived the account (e.g. the user deleted it).
			return nil, false, nil
		}
		return nil, false, err
	}
	if !u.IsActive {
		return nil, true, nil
	}
	return u, false, nil
}

// Required returns middleware that only lets authenticated, active users
// through. It aborts with 401 when no valid identity can be resolved
// (missing credential, invalid or expired token, unknown user) and with 403
// when the identity is valid but the account is deactivated. Clients rely on
// that distinction: 401 means re-login, 403 means a permission problem.
func (r *Resolver) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		user, inactive, err := r.resolve(c, tokenStr)
		if err != nil {
			slog.Error("principal resolution failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if inactive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account is deactivated"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextPrincipal, Principal{User: user})
		c.Next()
	}
}

// Authenticate returns middleware for optional-auth endpoints. It resolves a
// principal when a valid credential is present and falls back to anonymous on
// any failure; it never aborts the request.
func (r *Resolver) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := bearerToken(c); tokenStr != "" {
			if user, inactive, err := r.resolve(c, tokenStr); err == nil && !inactive && user != nil {
				c.Set(ContextPrincipal, Principal{User: user})
			}
		}
		c.Next()
	}
}

// SuperuserRequired returns middleware that composes on top of Required and
// aborts with 403 unless the resolved principal is a superuser.
func (r *Resolver) SuperuserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentPrincipal(c).Superuser() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "superuser access required"})
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns the principal resolved for this request.
// It returns the anonymous principal when none was stored.
func CurrentPrincipal(c *gin.Context) Principal {
	if v, ok := c.Get(ContextPrincipal); ok {
		if p, ok := v.(Principal); ok {
			return p
		}
	}
	return Principal{}
}

// CurrentUser returns the authenticated user for this request, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	return CurrentPrincipal(c).User
}
