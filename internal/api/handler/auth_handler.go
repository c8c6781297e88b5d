package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blogora/blog-api/internal/api/metrics"
	"github.com/blogora/blog-api/internal/core/ports"
)

// AuthHandler handles registration, login, and account verification.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new, unverified user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, messageResponse{
		Message: "we sent you an email, please verify your email address",
	})
}

// Login authenticates a user and returns a token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		ID:           result.User.ID,
		Username:     result.User.Username,
		Role:         result.User.Role,
		ProfilePhoto: result.User.ProfilePhoto,
		Token:        result.Token,
	})
}

// Verify consumes a verification token and activates the account.
//
// @Summary      Verify a user account
// @Tags         auth
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Param        token   path      string  true  "Verification token"
// @Success      200     {object}  messageResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/auth/{userId}/verify/{token} [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	if err := h.authService.VerifyAccount(c.Request().Context(), c.Param("userId"), c.Param("token")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "your account has been verified"})
}
