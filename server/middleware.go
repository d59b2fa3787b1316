package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/existflow/plotline/internal/logger"
	"github.com/existflow/plotline/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// requestLogger logs every request and its outcome
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		logger.Debug("HTTP Request",
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("remote", req.RemoteAddr),
			logger.F("requestID", req.Header.Get(echo.HeaderXRequestID)))

		err := next(c)

		res := c.Response()
		logger.Info("HTTP Response",
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("duration", time.Since(start).String()))

		return err
	}
}

// authMiddleware checks for a valid bearer token
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if auth == "" {
			return fail(c, http.StatusUnauthorized, "No token provided")
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		if raw == auth {
			return fail(c, http.StatusUnauthorized, "Invalid authorization format")
		}

		claims, err := s.parseToken(raw)
		if err != nil {
			logger.Debug("Rejected token", logger.F("error", err))
			return fail(c, http.StatusUnauthorized, "Invalid or expired token")
		}

		sub, _ := claims.GetSubject()
		role, _ := claims["role"].(string)
		c.Set(ctxUserID, sub)
		c.Set(ctxRole, role)
		return next(c)
	}
}

// adminOnly must run after authMiddleware
func adminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if role, _ := c.Get(ctxRole).(string); role != model.RoleAdmin {
			return fail(c, http.StatusForbidden, "Admin access required")
		}
		return next(c)
	}
}

func (s *Server) issueToken(id, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  id,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(s.cfg.TokenTTL).Unix(),
	})
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *Server) parseToken(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}
