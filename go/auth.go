package cinemaserver

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Apurer/cinema-booking-api/internal/authz"
)

// TokenConfig describes how bearer tokens are verified.
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// IdentityMiddleware verifies an optional bearer token and stores the caller identity
// in the request context. It never rejects a request: a missing or invalid token leaves
// the caller anonymous and the access policy decides.
func IdentityMiddleware(cfg TokenConfig, logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}
		identity, err := ParseIdentity(cfg, raw)
		if err != nil {
			logger.LogAttrs(c.Request.Context(), slog.LevelDebug, "ignoring bearer token", slog.String("error", err.Error()))
			c.Next()
			return
		}
		c.Request = c.Request.WithContext(authz.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// ParseIdentity verifies an HS256 token and extracts its subject and role claims.
func ParseIdentity(cfg TokenConfig, raw string) (authz.Identity, error) {
	if cfg.Secret == "" {
		return authz.Identity{}, errors.New("token secret not configured")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, opts...); err != nil {
		return authz.Identity{}, err
	}
	subject := claimString(claims, "sub")
	if subject == "" {
		subject = claimString(claims, "user_id")
	}
	if subject == "" {
		return authz.Identity{}, errors.New("token has no subject")
	}
	return authz.Identity{Subject: subject, Role: parseRole(claimString(claims, "role"))}, nil
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return ""
}

func parseRole(raw string) authz.Role {
	switch {
	case strings.EqualFold(raw, string(authz.RoleAdmin)):
		return authz.RoleAdmin
	case strings.EqualFold(raw, string(authz.RoleUser)):
		return authz.RoleUser
	}
	return authz.Role(raw)
}
