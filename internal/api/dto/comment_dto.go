package dto

import (
	"time"

	"github.com/spec-kit/request-desk/internal/domain"
)

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// CommentResponse represents a thread entry.
type CommentResponse struct {
	ID        string      `json:"id"`
	RequestID string      `json:"requestId"`
	UserID    string      `json:"userId"`
	UserName  string      `json:"userName"`
	UserRole  domain.Role `json:"userRole"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CategoryResponse lists the minor categories of a major category.
type CategoryResponse struct {
	ID              string   `json:"id"`
	MajorCategory   string   `json:"majorCategory"`
	MinorCategories []string `json:"minorCategories"`
}

// NewCommentResponse maps a domain comment.
func NewCommentResponse(c domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		RequestID: c.RequestID,
		UserID:    c.UserID,
		UserName:  c.UserName,
		UserRole:  c.UserRole,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

// NewCommentResponses maps a thread, never returning nil.
func NewCommentResponses(items []domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewCommentResponse(c))
	}
	return out
}

// NewCategoryResponses maps the category list, never returning nil.
func NewCategoryResponses(items []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewCategoryResponse(c))
	}
	return out
}

// NewCategoryResponse maps a domain category.
func NewCategoryResponse(c domain.Category) CategoryResponse {
	minors := c.MinorCategories
	if minors == nil {
		minors = []string{}
	}
	return CategoryResponse{ID: c.ID, MajorCategory: c.MajorCategory, MinorCategories: minors}
}
