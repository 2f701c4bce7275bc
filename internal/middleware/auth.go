package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextSalonID  = "salonID"
	ContextUserRole = "userRole"
	ContextClientID = "clientID"
)

const (
	RoleOwner    = "owner"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

const tokenTTL = 24 * time.Hour

// IssueToken assina o JWT da equipe (sub = usuário) ou do cliente
// (sub = cliente, role customer).
func IssueToken(secret string, subject, salonID uint, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     subject,
		"salonId": salonID,
		"role":    role,
		"exp":     now.Add(tokenTTL).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearer(c)
		if !ok {
			httperr.Unauthorized(c, "missing_authorization_header", "Token de acesso ausente.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Token inválido ou expirado.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Token inválido.")
			c.Abort()
			return
		}

		subject, ok1 := claims["sub"].(float64)
		salonID, ok2 := claims["salonId"].(float64)
		role, _ := claims["role"].(string)
		if !ok1 || !ok2 || role == "" {
			httperr.Unauthorized(c, "invalid_token_payload", "Token inválido.")
			c.Abort()
			return
		}

		c.Set(ContextSalonID, uint(salonID))
		c.Set(ContextUserRole, role)

		if role == RoleCustomer {
			c.Set(ContextClientID, uint(subject))
		} else {
			c.Set(ContextUserID, uint(subject))
		}

		c.Next()
	}
}

// ======================================================
// ROLES
// ======================================================

func RequireStaff() gin.HandlerFunc {
	return requireRole(RoleOwner, RoleStaff)
}

func RequireOwner() gin.HandlerFunc {
	return requireRole(RoleOwner)
}

func RequireCustomer() gin.HandlerFunc {
	return requireRole(RoleCustomer)
}

func requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, "forbidden", "Acesso não permitido para este perfil.")
		c.Abort()
	}
}

func bearer(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
		return parts[1], true
	}

	// navegadores não mandam header no upgrade do websocket
	if c.IsWebsocket() {
		if t := c.Query("token"); t != "" {
			return t, true
		}
	}
	return "", false
}
