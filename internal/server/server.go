package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"gumroad-relay/internal/apperr"
	"gumroad-relay/internal/handler"
	"gumroad-relay/internal/service"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

type Server struct {
	echo                *echo.Echo
	subscriptionHandler *handler.SubscriptionHandler
	adminHandler        *handler.AdminHandler
}

func NewServer(subscriptionService service.SubscriptionService, adminService service.AdminService, logLevel string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(parseLogLevel(logLevel))
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(e)

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	adminHandler := handler.NewAdminHandler(adminService)

	s := &Server{
		echo:                e,
		subscriptionHandler: subscriptionHandler,
		adminHandler:        adminHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/", s.adminHandler.Home)
	s.echo.GET("/health", s.adminHandler.Health)

	s.echo.POST("/check-subscription", s.subscriptionHandler.CheckSubscription)
	s.echo.POST("/get-purchase-url", s.subscriptionHandler.GetPurchaseURL)

	// -------- admin --------
	admin := s.echo.Group("/admin")
	admin.GET("/status", s.adminHandler.Status)
	admin.GET("/products", s.adminHandler.Products)
	admin.POST("/clear-cache", s.adminHandler.ClearCache)
	admin.GET("/subscribers", s.adminHandler.Subscribers)
	admin.GET("/history", s.adminHandler.History)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// requestValidator plugs go-playground/validator into echo, reporting
// field names by their json tag.
type requestValidator struct {
	validate *validatorv10.Validate
}

func newRequestValidator() *requestValidator {
	v := validatorv10.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// newHTTPErrorHandler maps tagged apperr kinds to status codes at the
// boundary. Resolver-path upstream failures never reach here; they ride
// inside a 200 verdict.
func newHTTPErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"

		var appErr *apperr.Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = apperr.HTTPStatus(appErr.Kind)
			message = appErr.Error()
		case errors.As(err, &httpErr):
			status = httpErr.Code
			message = fmt.Sprintf("%v", httpErr.Message)
		default:
			e.Logger.Error(err)
		}

		if jsonErr := c.JSON(status, map[string]any{"error": message}); jsonErr != nil {
			e.Logger.Error(jsonErr)
		}
	}
}

func parseLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
