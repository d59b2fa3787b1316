package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/existflow/plotline/internal/logger"
	"github.com/existflow/plotline/internal/model"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type authResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// handleRegister creates a user account. No token is issued.
func (s *Server) handleRegister(c echo.Context) error {
	var req model.Registration
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request")
	}
	req = req.Normalize()
	if err := model.Validate(req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("bcrypt error", logger.F("error", err))
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	acc, err := s.state.addAccount(req.Name, req.Email, model.RoleUser, hash)
	if errors.Is(err, errEmailTaken) {
		return fail(c, http.StatusConflict, err.Error())
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	logger.Info("User registered", logger.F("email", acc.Email))
	return c.JSON(http.StatusCreated, map[string]model.User{"user": userOf(acc)})
}

func (s *Server) handleLogin(c echo.Context) error {
	return s.login(c, false)
}

func (s *Server) handleAdminLogin(c echo.Context) error {
	return s.login(c, true)
}

func (s *Server) login(c echo.Context, admin bool) error {
	var req model.Credentials
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request")
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := model.Validate(req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	acc, ok := s.state.accountByEmail(req.Email)
	if !ok || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}
	if admin && acc.Role != model.RoleAdmin {
		return fail(c, http.StatusForbidden, "Access denied. Admins only.")
	}

	token, err := s.issueToken(acc.ID, acc.Role)
	if err != nil {
		logger.Error("Failed to sign token", logger.F("error", err))
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	logger.Info("User logged in", logger.F("email", acc.Email), logger.F("admin", admin))
	return c.JSON(http.StatusOK, authResponse{User: userOf(acc.Account), Token: token})
}

// handleListUsers returns every account as a bare array
func (s *Server) handleListUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, s.state.listAccounts())
}

func userOf(a model.Account) model.User {
	return model.User{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}
