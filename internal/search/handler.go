package search

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinsearch/clinsearch/internal/platform/errs"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/search", h.Search)
	api.GET("/patients/:id/records/:table", h.PatientRecords)
}

func (h *Handler) Search(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.svc.Search(c.Request().Context(), req)
	if err != nil {
		var ve *errs.ValidationError
		if errors.As(err, &ve) {
			return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) PatientRecords(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}

	records, err := h.svc.Records(c.Request().Context(), c.Param("table"), id)
	if err != nil {
		var ve *errs.ValidationError
		if errors.As(err, &ve) {
			return echo.NewHTTPError(http.StatusNotFound, ve.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "record lookup failed")
	}
	if records == nil {
		records = []Record{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}
