package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/miniiam/iam-service/internal/core/ports"
)

// RoleHandler handles HTTP requests for role operations.
type RoleHandler struct {
	service ports.RoleService
}

func NewRoleHandler(service ports.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

type roleResponse struct {
	ID       string `json:"id"`
	RoleName string `json:"roleName"`
}

// List returns all roles.
//
// @Summary      List all roles
// @Tags         roles
// @Produce      json
// @Success      200  {array}   roleResponse
// @Failure      500  {object}  errorResponse
// @Router       /roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.service.ListRoles(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]roleResponse, 0, len(roles))
	for _, role := range roles {
		resp = append(resp, roleResponse{ID: role.ID, RoleName: role.RoleName})
	}
	return c.JSON(http.StatusOK, resp)
}
