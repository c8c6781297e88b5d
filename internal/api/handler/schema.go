package handler

import "github.com/blogora/blog-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// messageResponse carries a human-readable confirmation.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=30"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginResponse struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Role         string       `json:"role"`
	ProfilePhoto domain.Image `json:"profile_photo"`
	Token        string       `json:"token"`
}

// --- Users ---

type updateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Bio      *string `json:"bio,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=30"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

// --- Posts ---

// createPostRequest binds the multipart form fields; the image arrives as the
// "image" file part and is handled separately.
type createPostRequest struct {
	Title       string `form:"title"       validate:"required,min=2,max=200"`
	Description string `form:"description" validate:"required,min=10"`
	Category    string `form:"category"    validate:"required"`
}

type updatePostRequest struct {
	Title       *string `json:"title,omitempty"       validate:"omitempty,min=2,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=10"`
	Category    *string `json:"category,omitempty"    validate:"omitempty,min=1"`
}

type paginationResponse struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

type listPostsResponse struct {
	Data       []domain.Post      `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// --- Comments ---

type createCommentRequest struct {
	PostID string `json:"post_id" validate:"required"`
	Text   string `json:"text"    validate:"required"`
}

type updateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// --- Categories ---

type createCategoryRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100"`
}
