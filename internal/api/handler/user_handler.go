package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blogora/blog-api/internal/api/metrics"
	"github.com/blogora/blog-api/internal/core/ports"
)

// UserHandler handles account and profile operations.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns all users. Admin only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context(), ctxClaims(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Count returns the number of accounts. Admin only.
//
// @Summary      Count users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  countResponse
// @Router       /api/users/count [get]
func (h *UserHandler) Count(c echo.Context) error {
	count, err := h.userService.Count(c.Request().Context(), ctxClaims(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: count})
}

// Get returns one user's public profile.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id  path      string  true  "User id"
// @Success      200 {object}  domain.User
// @Failure      404 {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update edits a profile. Strictly the user themselves; no admin override.
//
// @Summary      Update a profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  errorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Update(c.Request().Context(), ctxClaims(c), c.Param("id"), ports.UpdateUserInput{
		Username: req.Username,
		Bio:      req.Bio,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UploadProfilePhoto replaces the caller's profile photo.
//
// @Summary      Upload a profile photo
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "Image file (jpeg or png)"
// @Success      200    {object}  domain.Image
// @Failure      400    {object}  errorResponse
// @Router       /api/users/profile-photo [post]
func (h *UserHandler) UploadProfilePhoto(c echo.Context) error {
	upload, done, err := formImage(c, "image")
	if err != nil {
		return err
	}
	defer done()

	image, err := h.userService.UploadProfilePhoto(c.Request().Context(), ctxClaims(c), upload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, image)
}

// Delete removes an account and everything it owns. Self or admin.
//
// @Summary      Delete an account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User id"
// @Success      200 {object}  messageResponse
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), ctxClaims(c), c.Param("id")); err != nil {
		return err
	}
	metrics.CascadesTotal.WithLabelValues("delete_user").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted successfully"})
}
