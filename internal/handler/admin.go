package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"gumroad-relay/internal/service"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) Status(c echo.Context) error {
	ctx := c.Request().Context()

	return c.JSON(http.StatusOK, h.adminService.Status(ctx))
}

func (h *AdminHandler) Products(c echo.Context) error {
	ctx := c.Request().Context()

	resp, err := h.adminService.Products(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ClearCache(c echo.Context) error {
	return c.JSON(http.StatusOK, h.adminService.ClearCache())
}

func (h *AdminHandler) Subscribers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.adminService.Subscribers())
}

func (h *AdminHandler) History(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	resp, err := h.adminService.History(ctx, limit)
	if err != nil {
		return fmt.Errorf("load check history: %w", err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.adminService.Health())
}

func (h *AdminHandler) Home(c echo.Context) error {
	health := h.adminService.Health()

	return c.JSON(http.StatusOK, map[string]any{
		"service":   health.Service,
		"status":    "Running",
		"version":   "2.0.0",
		"timestamp": health.Timestamp,
		"features": []string{
			"Dynamic product ID support",
			"Multi-product subscription checking",
			"Intelligent caching",
			"Comprehensive admin tools",
		},
		"endpoints": map[string]string{
			"check_subscription": "/check-subscription [POST] - Requires: email, product_id",
			"get_purchase_url":   "/get-purchase-url [POST] - Requires: product_id",
			"health_check":       "/health [GET]",
			"admin_status":       "/admin/status [GET]",
			"admin_products":     "/admin/products [GET]",
			"admin_subscribers":  "/admin/subscribers [GET]",
			"admin_clear_cache":  "/admin/clear-cache [POST]",
			"admin_history":      "/admin/history [GET]",
		},
	})
}
