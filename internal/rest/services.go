package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"viralWallet/domain"
	"viralWallet/internal/middleware"
	"viralWallet/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	CatalogService interface {
		ListActive(ctx context.Context, platformFilter, searchText string) ([]domain.Service, error)
		ListAll(ctx context.Context, caller domain.Caller) ([]domain.Service, error)
		GetServiceByID(ctx context.Context, id uint) (domain.Service, error)
		CreateService(ctx context.Context, caller domain.Caller, service *domain.Service) (*domain.Service, error)
		UpdateService(ctx context.Context, caller domain.Caller, service *domain.Service) (*domain.Service, error)
		DeleteService(ctx context.Context, caller domain.Caller, id uint) error
	}

	ServicesHandler struct {
		validate       *validator.Validate
		catalogService CatalogService
		timeout        time.Duration
	}

	ServiceInput struct {
		Platform     string  `json:"platform" validate:"required"`
		ServiceType  string  `json:"service_type" validate:"required"`
		PricePer1000 float64 `json:"price_per_1000" validate:"required,gt=0"`
		Min          int     `json:"min" validate:"required,gt=0"`
		Max          int     `json:"max" validate:"required,gtefield=Min"`
		Status       string  `json:"status" validate:"omitempty,oneof=active inactive"`
	}
)

func NewServicesHandler(catalogService CatalogService) *ServicesHandler {
	return &ServicesHandler{
		validate:       validator.New(),
		catalogService: catalogService,
		timeout:        10 * time.Second,
	}
}

// ListActive serves the customer order screen: active services only,
// optionally filtered with ?platform= and ?search=.
func (h *ServicesHandler) ListActive(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	services, err := h.catalogService.ListActive(ctx, c.QueryParam("platform"), c.QueryParam("search"))
	if err != nil {
		logger.Error("Failed to list services", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(services))
}

func (h *ServicesHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	services, err := h.catalogService.ListAll(ctx, middleware.CallerFromContext(c))
	if err != nil {
		logger.Error("Failed to list all services", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(services))
}

func (h *ServicesHandler) GetServiceByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid service id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	service, err := h.catalogService.GetServiceByID(ctx, uint(id))
	if err != nil {
		logger.Error("Failed to get service by id", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(service))
}

func (h *ServicesHandler) CreateService(c echo.Context) error {
	var request ServiceInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate service input", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	service, err := h.catalogService.CreateService(ctx, middleware.CallerFromContext(c), &domain.Service{
		Platform:     request.Platform,
		ServiceType:  request.ServiceType,
		PricePer1000: request.PricePer1000,
		Min:          request.Min,
		Max:          request.Max,
		Status:       request.Status,
	})
	if err != nil {
		logger.Error("Failed to create service", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(service))
}

func (h *ServicesHandler) UpdateService(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid service id"})
	}

	var request ServiceInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate service input", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	service, err := h.catalogService.UpdateService(ctx, middleware.CallerFromContext(c), &domain.Service{
		ID:           uint(id),
		Platform:     request.Platform,
		ServiceType:  request.ServiceType,
		PricePer1000: request.PricePer1000,
		Min:          request.Min,
		Max:          request.Max,
		Status:       request.Status,
	})
	if err != nil {
		logger.Error("Failed to update service", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(service))
}

func (h *ServicesHandler) DeleteService(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid service id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.catalogService.DeleteService(ctx, middleware.CallerFromContext(c), uint(id)); err != nil {
		logger.Error("Failed to delete service", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Service deleted successfully"))
}
