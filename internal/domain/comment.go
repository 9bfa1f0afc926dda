package domain

import "time"

// Comment is an append-only message in a request thread. UserName and
// UserRole are captured when the comment is posted.
type Comment struct {
	ID        string    `json:"id"`
	RequestID string    `json:"requestId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserRole  Role      `json:"userRole"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
