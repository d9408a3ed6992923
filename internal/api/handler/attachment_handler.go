package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/schoolhub/portal-api/internal/core/domain"
	"github.com/schoolhub/portal-api/internal/core/ports"
)

// AccessRecorder accepts audit events without blocking the request path.
// Implemented by the queue dispatcher.
type AccessRecorder interface {
	Enqueue(event ports.AccessEvent)
}

// AttachmentHandler exchanges attachment ids for short-lived signed viewing
// URLs at the moment of user interaction.
type AttachmentHandler struct {
	service  ports.AttachmentService
	recorder AccessRecorder
}

func NewAttachmentHandler(service ports.AttachmentService, recorder AccessRecorder) *AttachmentHandler {
	return &AttachmentHandler{service: service, recorder: recorder}
}

// ViewURL resolves one attachment to a viewable URL. The optional filename
// query parameter lets the response carry the mime category so the client
// can dispatch the right viewer. On failure the client's resource stays
// clickable; retry is the user re-triggering the action.
//
// @Summary      Resolve a signed viewing URL for an attachment
// @Tags         attachments
// @Produce      json
// @Security     BearerAuth
// @Param        attachment_id  path      string  true   "Attachment id"
// @Param        filename       query     string  false  "Filename, used to classify the viewer"
// @Success      200            {object}  viewableURLResponse
// @Failure      401            {object}  errorResponse
// @Failure      404            {object}  errorResponse
// @Failure      502            {object}  errorResponse
// @Router       /v1/attachments/{attachment_id}/view-url [post]
func (h *AttachmentHandler) ViewURL(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	attachmentID := c.Param("attachment_id")
	if attachmentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "attachment_id is required")
	}

	resolved, err := h.service.ResolveViewableURL(c.Request().Context(), attachmentID)
	if err != nil {
		return err
	}

	category := domain.ClassifyFilename(c.QueryParam("filename"))
	h.recorder.Enqueue(ports.AccessEvent{
		UserID:       claims.UserID,
		Role:         domain.ResolveRole(claims.Role),
		AttachmentID: attachmentID,
		MimeCategory: category,
		OccurredAt:   time.Now().UTC(),
	})

	return c.JSON(http.StatusOK, viewableURLResponse{
		URL:          resolved.URL,
		MimeCategory: string(category),
	})
}
