package inventory

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/inventory")
	g.GET("", h.ListProducts)
	g.POST("", h.CreateProduct)
	g.GET("/low-stock", h.GetLowStock)
}

func (h *Handler) ListProducts(c echo.Context) error {
	forSaleOnly := c.QueryParam("for_sale_only") == "true"
	items, err := h.svc.ListProducts(c.Request().Context(), forSaleOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Product{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "products": items})
}

func (h *Handler) CreateProduct(c echo.Context) error {
	var p Product
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateProduct(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"success": true, "product": p})
}

func (h *Handler) GetLowStock(c echo.Context) error {
	items, err := h.svc.LowStockProducts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Product{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "products": items})
}
