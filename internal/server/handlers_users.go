package server

import (
	"fmt"
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"

	"github.com/t0sssik/gsd-ci-cd/internal/app"
	"github.com/t0sssik/gsd-ci-cd/internal/domain"
	apperrors "github.com/t0sssik/gsd-ci-cd/internal/errors"
)

type createUserRequest struct {
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Role     *domain.Role `json:"role"`
}

type updateUserRequest struct {
	Username *string      `json:"username"`
	Email    *string      `json:"email"`
	Role     *domain.Role `json:"role"`
}

func validEmail(address string) bool {
	parsed, err := mail.ParseAddress(address)
	return err == nil && parsed.Address == address
}

func (s *Server) handleListUsers(c echo.Context) error {
	users, err := s.app.ListUsers(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (s *Server) handleGetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := s.app.GetUser(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) handleCreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	if req.Username == "" {
		return apperrors.Validation("username is required")
	}
	if !validEmail(req.Email) {
		return apperrors.Validation("invalid email address").WithField("email", req.Email)
	}

	role := domain.RoleUser
	if req.Role != nil {
		role = *req.Role
	}
	if !role.Valid() {
		return apperrors.Validation("invalid role").WithField("role", string(role))
	}

	user, err := s.app.CreateUser(c.Request().Context(), req.Username, req.Email, role)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (s *Server) handleUpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	if req.Email != nil && !validEmail(*req.Email) {
		return apperrors.Validation("invalid email address").WithField("email", *req.Email)
	}
	if req.Role != nil && !req.Role.Valid() {
		return apperrors.Validation("invalid role").WithField("role", string(*req.Role))
	}

	user, err := s.app.UpdateUser(c.Request().Context(), id, app.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) handleDeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := s.app.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("User '%s' deleted successfully", user.Username),
	})
}
