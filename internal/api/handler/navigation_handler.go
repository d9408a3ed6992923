package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolhub/portal-api/internal/core/domain"
	"github.com/schoolhub/portal-api/internal/core/ports"
)

// NavigationHandler serves the role-scoped sidebar menu.
type NavigationHandler struct {
	service ports.NavigationService
}

func NewNavigationHandler(service ports.NavigationService) *NavigationHandler {
	return &NavigationHandler{service: service}
}

// Menu returns the sidebar for the authenticated user's role. The menu is
// the complete set of pages the role can discover; there is nothing else to
// enumerate per-path.
//
// @Summary      Navigation menu for the current role
// @Tags         navigation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  navigationResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/navigation [get]
func (h *NavigationHandler) Menu(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	menu := h.service.Menu(claims.Role)
	return c.JSON(http.StatusOK, navigationResponse{
		Role: string(domain.ResolveRole(claims.Role)),
		Menu: menu,
	})
}

// Access reports whether a path is discoverable from the caller's menu. The
// client router uses this to render a not-available page for hidden areas
// instead of a broken one; the server never blocks the deep link itself.
//
// @Summary      Whether a path is discoverable from the caller's menu
// @Tags         navigation
// @Produce      json
// @Security     BearerAuth
// @Param        path  query  string  true  "page path to check"
// @Success      200  {object}  navigationAccessResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/navigation/access [get]
func (h *NavigationHandler) Access(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path query parameter is required")
	}

	return c.JSON(http.StatusOK, navigationAccessResponse{
		Path:    path,
		Allowed: h.service.CanAccess(claims.Role, path),
	})
}
