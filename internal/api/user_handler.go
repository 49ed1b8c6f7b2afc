package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"business-console/internal/entity"
	"business-console/internal/repository"
	"business-console/internal/service"
)

type UserHandler struct {
	auth    *service.AuthService
	tenants *repository.TenantRepository
}

func NewUserHandler(auth *service.AuthService, tenants *repository.TenantRepository) *UserHandler {
	return &UserHandler{auth: auth, tenants: tenants}
}

type credentials struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	BusinessName string `json:"businessName"`
}

// Signup creates the installation's profile --> POST /signup
func (h *UserHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	req := credentials{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	profile, err := h.auth.Signup(ctx, req.Username, req.Password, req.BusinessName)
	if err != nil {
		return respondError(c, err)
	}
	h.tenants.LoadOrInitialize(ctx, profile.StoredUsername)

	return c.JSON(http.StatusCreated, entity.ProjectUser(*profile, entity.User{}))
}

// Login --> POST /login
func (h *UserHandler) Login(c echo.Context) error {
	req := credentials{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	token, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, map[string]string{"token": token})
}

// UpdateProfile edits the business display fields --> PUT /console/profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	if _, err := tenantFromContext(c); err != nil {
		return respondError(c, err)
	}
	update := service.ProfileUpdate{}
	if err := c.Bind(&update); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	profile, err := h.auth.UpdateProfile(c.Request().Context(), update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, entity.ProjectUser(*profile, entity.User{}))
}
