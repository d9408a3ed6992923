package handler

import "github.com/schoolhub/portal-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email       string   `json:"email"        validate:"required,email"`
	Password    string   `json:"password"     validate:"required,min=8"`
	DisplayName string   `json:"display_name" validate:"required"`
	Roles       []string `json:"roles"`
	TenantID    string   `json:"tenant_id"`
	SchoolID    string   `json:"school_id"`
	ClassID     string   `json:"class_id"`
	SectionID   string   `json:"section_id"`
	Gender      string   `json:"gender"       validate:"omitempty,oneof=female male other"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// --- Navigation ---

type navigationResponse struct {
	Role string                   `json:"role"`
	Menu []domain.NavigationEntry `json:"menu"`
}

// navigationAccessResponse answers whether a path is discoverable from the
// caller's menu.
type navigationAccessResponse struct {
	Path    string `json:"path"`
	Allowed bool   `json:"allowed"`
}

// --- Content ---

// chapterTreeResponse carries the assembled tree plus its fetch generation;
// clients comparing generations can detect and drop stale responses.
type chapterTreeResponse struct {
	ClassID    string           `json:"class_id"`
	SubjectID  string           `json:"subject_id"`
	Generation uint64           `json:"generation"`
	Chapters   []domain.Chapter `json:"chapters"`
	// NoContent is set when the tree is empty so clients render the
	// explicit "no content available" state instead of an error page.
	NoContent bool `json:"no_content"`
}

// --- Attachments ---

type viewableURLResponse struct {
	URL string `json:"url"`
	// MimeCategory tells the client which viewer to dispatch: inline player
	// for video, viewer overlay for pdf, new browsing context otherwise.
	MimeCategory string `json:"mime_category,omitempty"`
}
