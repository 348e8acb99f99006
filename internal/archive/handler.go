package archive

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler serves archived source documents over HTTP.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:id/bundle", h.Bundle)
}

// Bundle returns the raw bundle archived for a business identifier, exactly
// as it was imported.
func (h *Handler) Bundle(c echo.Context) error {
	doc, err := h.store.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "bundle lookup failed")
	}
	if doc == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no bundle archived for patient")
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, doc.Bundle)
}
