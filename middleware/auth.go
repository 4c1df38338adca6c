package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/naimekattor/assunnah-blog/config"
	"github.com/naimekattor/assunnah-blog/helper"
	"github.com/naimekattor/assunnah-blog/models"
)

var HTTPHelper = &helper.HTTPHelper{}

const actorKey = "actor"

type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth rejects requests without a valid bearer token and puts
// the resolved actor into the gin context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := resolveActor(c)
		if err != nil {
			HTTPHelper.SendUnauthorizedError(c, err.Error(), HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// OptionalAuth resolves the actor when a valid bearer token is present
// and continues anonymously otherwise. An absent session is a normal
// result on public read paths, not an error.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor, err := resolveActor(c); err == nil {
			c.Set(actorKey, actor)
		}
		c.Next()
	}
}

// RequireRole gates a route on an explicit role set. Roles are matched
// by name, never by rank.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if actor == nil {
			HTTPHelper.SendUnauthorizedError(c, "Authentication required", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		HTTPHelper.SendForbiddenError(c, "Insufficient permissions", HTTPHelper.EmptyJsonMap())
		c.Abort()
	}
}

// ActorFrom returns the resolved actor, or nil for an anonymous request.
func ActorFrom(c *gin.Context) *models.Actor {
	if v, exists := c.Get(actorKey); exists {
		if actor, ok := v.(*models.Actor); ok {
			return actor
		}
	}
	return nil
}

func resolveActor(c *gin.Context) (*models.Actor, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errNoToken
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, errNoToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return config.JWTSecret, nil
	})
	if err != nil {
		return nil, errInvalidToken
	}
	if !token.Valid {
		return nil, errInvalidToken
	}

	return &models.Actor{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  models.UserRole(claims.Role),
	}, nil
}

var (
	errNoToken      = authError("Bearer token required")
	errInvalidToken = authError("Invalid or expired token")
)

type authError string

func (e authError) Error() string { return string(e) }
