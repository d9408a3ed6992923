package domain

import "time"

// User models an authenticated actor in the portal.
type User struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id,omitempty"`
	SchoolID     string    `json:"school_id,omitempty"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ClassID      string    `json:"class_id,omitempty"`
	SectionID    string    `json:"section_id,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
