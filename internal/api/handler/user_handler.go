package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/miniiam/iam-service/internal/api/metrics"
	"github.com/miniiam/iam-service/internal/core/domain"
	"github.com/miniiam/iam-service/internal/core/ports"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// --- Request / Response types ---

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type assignRoleRequest struct {
	RoleID string `json:"roleId" validate:"required"`
}

type userResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// domainError writes the envelope for a known domain error kind, passing the
// message through verbatim. Unknown errors are handed back to echo's central
// error handler.
func domainError(c echo.Context, err error) error {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: validation.Error()})
	}
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return c.JSON(http.StatusConflict, errorResponse{Error: conflict.Error()})
	}
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: notFound.Error()})
	}
	return err
}

// Create registers a new user.
//
// @Summary      Create a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	user, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return domainError(c, err)
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Roles: user.RoleNames(),
	})
}

// AssignRole grants a role to an existing user.
//
// @Summary      Assign a role to a user
// @Tags         users
// @Accept       json
// @Param        id    path  string             true  "User id"
// @Param        body  body  assignRoleRequest  true  "Role to assign"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /users/{id}/roles [post]
func (h *UserHandler) AssignRole(c echo.Context) error {
	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if err := h.service.AssignRole(c.Request().Context(), c.Param("id"), req.RoleID); err != nil {
		return domainError(c, err)
	}

	metrics.RoleAssignmentsTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Get returns a user with role names.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id  path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(c, err)
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: domain.ErrUserNotFound.Error()})
	}

	return c.JSON(http.StatusOK, userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Roles: user.RoleNames(),
	})
}

// Profile returns the credential-free projection of a user.
//
// @Summary      Get a user profile (name, email, role names)
// @Tags         users
// @Produce      json
// @Param        id  path      string  true  "User id"
// @Success      200  {object}  ports.UserProfile
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /users/{id}/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	profile, err := h.service.GetUserWithRoles(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(c, err)
	}
	if profile == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: domain.ErrUserNotFound.Error()})
	}

	return c.JSON(http.StatusOK, profile)
}
