package dto

import (
	"time"

	"github.com/spec-kit/request-desk/internal/domain"
)

// CreateRequestRequest payload.
type CreateRequestRequest struct {
	MajorCategory string `json:"majorCategory" validate:"required"`
	MinorCategory string `json:"minorCategory" validate:"required"`
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"required"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.RequestStatus `json:"status" validate:"required"`
}

// RequestResponse mirrors the stored request.
type RequestResponse struct {
	ID            string               `json:"id"`
	UserID        string               `json:"userId"`
	UserName      string               `json:"userName"`
	MajorCategory string               `json:"majorCategory"`
	MinorCategory string               `json:"minorCategory"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Status        domain.RequestStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// RequestDetailResponse adds the workflow position and the caller's next
// possible statuses.
type RequestDetailResponse struct {
	RequestResponse
	Progress int                    `json:"progress"`
	Actions  []domain.RequestStatus `json:"actions"`
}

// RequestStatsResponse summarizes visible requests.
type RequestStatsResponse struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
	Rejected   int `json:"rejected"`
	Total      int `json:"total"`
}

// NewRequestResponse maps a domain request.
func NewRequestResponse(r domain.Request) RequestResponse {
	return RequestResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		UserName:      r.UserName,
		MajorCategory: r.MajorCategory,
		MinorCategory: r.MinorCategory,
		Title:         r.Title,
		Description:   r.Description,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// NewRequestResponses maps a list, never returning nil.
func NewRequestResponses(items []domain.Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewRequestResponse(item))
	}
	return out
}
