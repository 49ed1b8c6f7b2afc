package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"business-console/internal/entity"
	"business-console/internal/repository"
)

// DatasetHandler serves the authenticated tenant's dataset.
type DatasetHandler struct {
	tenants *repository.TenantRepository
}

func NewDatasetHandler(tenants *repository.TenantRepository) *DatasetHandler {
	return &DatasetHandler{tenants: tenants}
}

// GetDataset --> GET /console/dataset
func (h *DatasetHandler) GetDataset(c echo.Context) error {
	tenant, err := tenantFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, h.tenants.LoadOrInitialize(c.Request().Context(), tenant))
}

// SaveDataset replaces the whole dataset --> PUT /console/dataset
func (h *DatasetHandler) SaveDataset(c echo.Context) error {
	tenant, err := tenantFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	ds := entity.Dataset{}
	if err := c.Bind(&ds); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if err := h.tenants.Save(c.Request().Context(), tenant, &ds); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SaveField replaces one member of the dataset --> PUT /console/dataset/:field
func (h *DatasetHandler) SaveField(c echo.Context) error {
	tenant, err := tenantFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	body, err := io.ReadAll(c.Request().Body)
	if err != nil || !json.Valid(body) {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	field := entity.Field(c.Param("field"))
	if err := h.tenants.SaveField(c.Request().Context(), tenant, field, json.RawMessage(body)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
