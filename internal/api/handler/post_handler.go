package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/blogora/blog-api/internal/api/metrics"
	"github.com/blogora/blog-api/internal/core/domain"
	"github.com/blogora/blog-api/internal/core/ports"
)

// PostHandler handles post CRUD, image replacement, and the like toggle.
type PostHandler struct {
	postService ports.PostService
}

func NewPostHandler(postService ports.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create publishes a new post from a multipart form with an image part.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true  "Title"
// @Param        description  formData  string  true  "Description"
// @Param        category     formData  string  true  "Category title"
// @Param        image        formData  file    true  "Image file (jpeg or png)"
// @Success      201  {object}  domain.Post
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	upload, done, err := formImage(c, "image")
	if err != nil {
		return err
	}
	defer done()

	post, err := h.postService.Create(c.Request().Context(), ctxClaims(c), ports.CreatePostInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Image:       upload,
	})
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.WithLabelValues(post.Category).Inc()
	return c.JSON(http.StatusCreated, post)
}

// List returns a page of posts, newest first.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Param        page      query     int     false  "1-based page number"
// @Param        limit     query     int     false  "Page size"
// @Param        category  query     string  false  "Filter by category title"
// @Success      200  {object}  listPostsResponse
// @Router       /api/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.postService.List(c.Request().Context(), ports.ListPostsFilter{
		Category: c.QueryParam("category"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	items := result.Items
	if items == nil {
		items = []domain.Post{}
	}
	return c.JSON(http.StatusOK, listPostsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total: result.Total,
			Page:  result.Page,
			Limit: result.Limit,
		},
	})
}

// Count returns the total number of posts.
//
// @Summary      Count posts
// @Tags         posts
// @Produce      json
// @Success      200  {object}  countResponse
// @Router       /api/posts/count [get]
func (h *PostHandler) Count(c echo.Context) error {
	count, err := h.postService.Count(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: count})
}

// Get returns one post.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id  path      string  true  "Post id"
// @Success      200 {object}  domain.Post
// @Failure      404 {object}  errorResponse
// @Router       /api/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.postService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Update edits a post's fields. Owner only; admins may delete, not edit.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updatePostRequest  true  "Fields to update"
// @Success      200   {object}  domain.Post
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.Update(c.Request().Context(), ctxClaims(c), c.Param("id"), ports.UpdatePostInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// UpdateImage replaces a post's image. Owner only.
//
// @Summary      Replace a post image
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true  "Post id"
// @Param        image  formData  file    true  "Image file (jpeg or png)"
// @Success      200    {object}  domain.Post
// @Failure      403    {object}  errorResponse
// @Router       /api/posts/{id}/image [put]
func (h *PostHandler) UpdateImage(c echo.Context) error {
	upload, done, err := formImage(c, "image")
	if err != nil {
		return err
	}
	defer done()

	post, err := h.postService.UpdateImage(c.Request().Context(), ctxClaims(c), c.Param("id"), upload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete removes a post, its image, and its comments. Owner or admin.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Post id"
// @Success      200 {object}  messageResponse
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.postService.Delete(c.Request().Context(), ctxClaims(c), c.Param("id")); err != nil {
		return err
	}
	metrics.CascadesTotal.WithLabelValues("delete_post").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "post has been deleted successfully"})
}

// ToggleLike flips the caller's like on a post.
//
// @Summary      Toggle a like
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Post id"
// @Success      200 {object}  domain.Post
// @Failure      401 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /api/posts/{id}/like [put]
func (h *PostHandler) ToggleLike(c echo.Context) error {
	claims := ctxClaims(c)
	post, err := h.postService.ToggleLike(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}

	action := "unlike"
	if claims != nil && post.LikedBy(claims.UserID) {
		action = "like"
	}
	metrics.LikeTogglesTotal.WithLabelValues(action).Inc()
	return c.JSON(http.StatusOK, post)
}
