package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/forgo/agenda/internal/model"
	"github.com/forgo/agenda/internal/service"
	"github.com/forgo/agenda/pkg/jwt"
)

// AuthService defines the interface for token validation
type AuthService interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

const (
	// ClaimsKey is the context key for JWT claims
	ClaimsKey contextKey = "claims"

	// IdentityKey is the context key for the verified caller
	IdentityKey contextKey = "identity"
)

// Auth returns a middleware that validates bearer tokens and stores the
// caller identity in the request context
func Auth(authService AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				if r.Header.Get("Authorization") == "" {
					model.NewUnauthorizedError("Falta la cabecera de autorización.").WriteJSON(w)
				} else {
					model.NewUnauthorizedError("Formato de autorización no válido.").WriteJSON(w)
				}
				return
			}

			claims, err := authService.ValidateAccessToken(token)
			if err != nil {
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					model.NewUnauthorizedError("El token ha expirado.").WriteJSON(w)
				case errors.Is(err, jwt.ErrInvalidSignature):
					model.NewUnauthorizedError("La firma del token no es válida.").WriteJSON(w)
				default:
					model.NewUnauthorizedError("Token no válido.").WriteJSON(w)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// RequireRole rejects callers holding none of roles with 403. It must run
// after Auth.
func RequireRole(roles ...service.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil {
				model.NewUnauthorizedError("Token no válido.").WriteJSON(w)
				return
			}
			if !identity.HasAnyRole(roles...) {
				model.NewRoleDeniedError("No tiene el rol necesario para esta operación.").WriteJSON(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// IdentityFromClaims converts validated token claims into a caller identity
func IdentityFromClaims(claims *jwt.Claims) *service.Identity {
	if claims == nil {
		return nil
	}
	return &service.Identity{
		Email: claims.Email,
		Name:  claims.Name,
		Roles: service.ParseRoles(claims.Roles),
	}
}

func withClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	noteCaller(ctx, claims.Email)
	ctx = context.WithValue(ctx, ClaimsKey, claims)
	return context.WithValue(ctx, IdentityKey, IdentityFromClaims(claims))
}

// WithIdentity returns a copy of ctx carrying identity
func WithIdentity(ctx context.Context, identity *service.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentity extracts the caller identity from context
func GetIdentity(ctx context.Context) *service.Identity {
	if id, ok := ctx.Value(IdentityKey).(*service.Identity); ok {
		return id
	}
	return nil
}

// GetUserEmail extracts the caller email from context
func GetUserEmail(ctx context.Context) string {
	if id := GetIdentity(ctx); id != nil {
		return id.Email
	}
	return ""
}

// GetClaims extracts the JWT claims from context
func GetClaims(ctx context.Context) *jwt.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims); ok {
		return claims
	}
	return nil
}
