package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blogora/blog-api/internal/api/middleware"
	"github.com/blogora/blog-api/internal/core/authz"
	"github.com/blogora/blog-api/internal/core/ports"
)

// ctxClaims returns the claims injected by the Auth middleware, or nil for an
// anonymous request. Services treat nil claims as unauthenticated and deny
// anything beyond Public policies.
func ctxClaims(c echo.Context) *authz.Claims {
	claims, _ := c.Get(middleware.ClaimsKey).(*authz.Claims)
	return claims
}

// formImage opens the multipart file under field name and wraps it for the
// blob storage port. The caller owns the returned closer.
func formImage(c echo.Context, field string) (ports.ImageUpload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return ports.ImageUpload{}, nil, echo.NewHTTPError(http.StatusBadRequest, "no image provided")
	}

	src, err := fh.Open()
	if err != nil {
		return ports.ImageUpload{}, nil, err
	}

	upload := ports.ImageUpload{
		Reader:      src,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
	}
	return upload, func() { _ = src.Close() }, nil
}
