package domain

import "time"

// RequestStatus enumerates lifecycle states for service requests.
type RequestStatus string

const (
	StatusRequested  RequestStatus = "요청"
	StatusApproved   RequestStatus = "요청승인"
	StatusIntake     RequestStatus = "접수"
	StatusInProgress RequestStatus = "처리진행"
	StatusCompleted  RequestStatus = "처리완료"
	StatusSurvey     RequestStatus = "만족도조사"
	StatusClosed     RequestStatus = "종료"
	StatusRejected   RequestStatus = "반려"
)

// Request is the aggregate for a submitted IT service request. UserName is
// a snapshot taken at creation time.
type Request struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	UserName      string        `json:"userName"`
	MajorCategory string        `json:"majorCategory"`
	MinorCategory string        `json:"minorCategory"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Status        RequestStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Category is static reference data for request classification.
type Category struct {
	ID              string   `json:"id"`
	MajorCategory   string   `json:"majorCategory"`
	MinorCategories []string `json:"minorCategories"`
}

// HasMinor reports whether minor is listed under the category.
func (c Category) HasMinor(minor string) bool {
	for _, m := range c.MinorCategories {
		if m == minor {
			return true
		}
	}
	return false
}
