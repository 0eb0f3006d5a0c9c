package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"people-directory/pkg/logger"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrMissingToken = errors.New("missing token")
)

// SessionLocalsKey is the fiber.Ctx locals key holding the session id.
const SessionLocalsKey = "session"

type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a token naming sessionID, valid for ttl.
func GenerateSessionToken(sessionID uuid.UUID, secret string, ttl time.Duration, now time.Time) (string, error) {
	claims := SessionClaims{
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   "session",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateSessionToken returns the session id carried by tokenString.
func ValidateSessionToken(tokenString, secret string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, ErrMissingToken
	}

	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrExpiredToken
		}
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

func ExtractTokenFromHeader(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

func GetSessionFromContext(c *fiber.Ctx) (uuid.UUID, error) {
	value := c.Locals(SessionLocalsKey)
	if value == nil {
		logger.Warn(logger.CategorySession, "get_session_context", "Session not found in context", nil)
		return uuid.Nil, errors.New("session not found in context")
	}

	id, ok := value.(uuid.UUID)
	if !ok {
		logger.Warn(logger.CategorySession, "get_session_context", "Invalid session context type", map[string]interface{}{"type": logger.GetTypeName(value)})
		return uuid.Nil, errors.New("invalid session context type")
	}
	return id, nil
}
