package handler

import (
	"errors"
	"fmt"
	"net/http"

	"gumroad-relay/internal/apperr"
	"gumroad-relay/internal/dto"
	"gumroad-relay/internal/model"
	"gumroad-relay/internal/service"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// bindAndValidate decodes the body and turns the first validation
// failure into a field-named message ("email is required").
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		var fieldErrs validatorv10.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return apperr.Validation(fmt.Sprintf("%s is required", fieldErrs[0].Field()))
		}
		return apperr.Validation("invalid request body")
	}
	return nil
}

func (h *SubscriptionHandler) CheckSubscription(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckSubscriptionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if !h.subscriptionService.HasCredentials() {
		return apperr.Config("gumroad access token not configured")
	}

	verdict, cached, err := h.subscriptionService.CheckSubscription(ctx, req.Email, req.ProductID)
	if err != nil {
		return fmt.Errorf("check subscription: %w", err)
	}

	return c.JSON(http.StatusOK, buildCheckResponse(verdict, cached))
}

func buildCheckResponse(verdict *model.Verdict, cached bool) *dto.CheckSubscriptionResponse {
	message := "No active subscription found"
	if verdict.Active {
		message = "Active subscription found"
	}

	details := verdict.SubscriptionDetails
	if details == nil {
		details = []model.SaleSummary{}
	}

	return &dto.CheckSubscriptionResponse{
		Active:              verdict.Active,
		Email:               verdict.Email,
		ProductID:           verdict.ProductID,
		Message:             message,
		LastPurchase:        verdict.LastPurchase,
		LastPrice:           verdict.LastPrice,
		TotalSales:          verdict.TotalSales,
		SubscriptionID:      verdict.SubscriptionID,
		SubscriptionDetails: details,
		Cached:              cached,
		CheckedAt:           verdict.CheckedAt,
		APIError:            verdict.Error,
	}
}

func (h *SubscriptionHandler) GetPurchaseURL(c echo.Context) error {
	var req dto.PurchaseURLRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.PurchaseURLResponse{
		PurchaseURL: h.subscriptionService.PurchaseURL(req.ProductID),
		ProductID:   req.ProductID,
		Message:     "Subscribe with credit card on Gumroad",
	})
}
