package controllers

import (
	"context"
	"time"

	"Bizonii-Backend/src/middleware"
	"Bizonii-Backend/src/models"

	"github.com/gofiber/fiber/v2"
)

// UserService is what the account endpoints need from services/users.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error)
	Logout(ctx context.Context, token string, expiresAt time.Time) error
	Get(ctx context.Context, id string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type UserController struct {
	users UserService
}

func NewUserController(users UserService) *UserController {
	return &UserController{users: users}
}

// RegisterUser godoc
// @Summary      Register an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body body models.RegisterRequest true "Account"
// @Success      201  {object}  models.User
// @Failure      400  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /users [post]
func (uc *UserController) RegisterUser(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return HandleServiceError(c, err)
	}
	user, err := uc.users.Register(c.UserContext(), req)
	if err != nil {
		return HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// LoginUser godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.LoginRequest true "Credentials"
// @Success      200  {object}  models.TokenResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Router       /login [post]
func (uc *UserController) LoginUser(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return HandleServiceError(c, err)
	}
	res, err := uc.users.Login(c.UserContext(), req)
	if err != nil {
		return HandleServiceError(c, err)
	}
	return c.JSON(res)
}

// LogoutUser godoc
// @Summary      Log out
// @Description  Revokes the presented bearer token
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  models.ErrorResponse
// @Router       /logout [post]
func (uc *UserController) LogoutUser(c *fiber.Ctx) error {
	token, expiresAt := middleware.BearerToken(c)
	if token == "" {
		return HandleServiceError(c, models.ErrUnauthorized)
	}
	if err := uc.users.Logout(c.UserContext(), token, expiresAt); err != nil {
		return HandleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMe godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  models.ErrorResponse
// @Router       /users/me [get]
func (uc *UserController) GetMe(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return HandleServiceError(c, err)
	}
	user, err := uc.users.Get(c.UserContext(), callerID)
	if err != nil {
		return HandleServiceError(c, err)
	}
	return c.JSON(user)
}

// DeleteMe godoc
// @Summary      Delete the current user
// @Tags         users
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  models.ErrorResponse
// @Router       /users/me [delete]
func (uc *UserController) DeleteMe(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return HandleServiceError(c, err)
	}
	if err := uc.users.Delete(c.UserContext(), callerID); err != nil {
		return HandleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
