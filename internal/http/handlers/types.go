package handlers

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ksarmiento/blog-backend/internal/database/model"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type AuthorResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type PostResponse struct {
	ID         uint            `json:"id"`
	Title      string          `json:"title"`
	Summary    string          `json:"summary"`
	Content    string          `json:"content"`
	CoverImage string          `json:"coverImage"`
	Author     *AuthorResponse `json:"author,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func newPostResponse(post *model.Post) PostResponse {
	resp := PostResponse{
		ID:         post.ID,
		Title:      post.Title,
		Summary:    post.Summary,
		Content:    post.Content,
		CoverImage: post.CoverImage,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
	if post.Author != nil {
		resp.Author = &AuthorResponse{ID: post.Author.ID, Name: post.Author.Name}
	}
	return resp
}

// fieldErrors converts validator failures into the {field, message}
// shapes the client renders next to form inputs.
func fieldErrors(err error) []FieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "body", Message: "Invalid request body"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", fe.Field())
		case "min":
			msg = fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
		case "email":
			msg = "Email must be valid"
		default:
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}
