package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolhub/portal-api/internal/core/ports"
)

// ContentHandler serves the chapter→resource tree for a class+subject pair.
type ContentHandler struct {
	service ports.ContentService
}

func NewContentHandler(service ports.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// ChapterTree returns the ordered chapter tree for a class+subject pair.
// Backend fetch failures degrade to an empty tree with no_content set, never
// an error page.
//
// @Summary      Chapter tree for a class and subject
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Param        class_id    path      string  true  "Class id"
// @Param        subject_id  path      string  true  "Subject id"
// @Success      200         {object}  chapterTreeResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Router       /v1/classes/{class_id}/subjects/{subject_id}/chapters [get]
func (h *ContentHandler) ChapterTree(c echo.Context) error {
	if _, err := ctxClaims(c); err != nil {
		return err
	}

	classID := c.Param("class_id")
	subjectID := c.Param("subject_id")
	if classID == "" || subjectID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "class_id and subject_id are required")
	}

	result, err := h.service.ChapterTree(c.Request().Context(), ports.ChapterTreeInput{
		ClassID:   classID,
		SubjectID: subjectID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, chapterTreeResponse{
		ClassID:    classID,
		SubjectID:  subjectID,
		Generation: result.Generation,
		Chapters:   result.Chapters,
		NoContent:  len(result.Chapters) == 0,
	})
}
