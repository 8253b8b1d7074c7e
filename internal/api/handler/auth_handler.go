package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/miniiam/iam-service/internal/api/metrics"
	"github.com/miniiam/iam-service/internal/core/ports"
)

// AuthHandler handles the simulated login endpoint.
type AuthHandler struct {
	service ports.UserService
}

func NewAuthHandler(service ports.UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
}

// Login checks the supplied credentials against the store. No session or
// token is created; the failure message never reveals whether the email
// exists.
//
// @Summary      Simulate a login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	ok, err := h.service.SimulateLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Invalid credentials."})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Message: "Login successful."})
}
