package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"viralWallet/business/orders"
	"viralWallet/domain"
	"viralWallet/internal/middleware"
	"viralWallet/pkg/logger"
	"viralWallet/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	OrdersService interface {
		CreateOrder(ctx context.Context, caller domain.Caller, input orders.CreateOrderInput) (domain.Order, error)
		SetStatus(ctx context.Context, caller domain.Caller, orderID uint, newStatus string) (domain.Order, error)
		GetOrder(ctx context.Context, caller domain.Caller, orderID uint) (domain.Order, error)
		ListByUser(ctx context.Context, caller domain.Caller, userID uint) ([]domain.Order, error)
		ListAll(ctx context.Context, caller domain.Caller) ([]domain.Order, error)
	}

	OrdersHandler struct {
		validate      *validator.Validate
		ordersService OrdersService
		timeout       time.Duration
	}

	OrderInput struct {
		ServiceID uint   `json:"service_id" validate:"required"`
		Quantity  int    `json:"quantity" validate:"required,gt=0"`
		Link      string `json:"link" validate:"required,url"`
	}

	OrderStatusInput struct {
		Status string `json:"status" validate:"required,oneof=pending processing completed failed"`
	}
)

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		validate:      validator.New(),
		ordersService: ordersService,
		timeout:       10 * time.Second,
	}
}

func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	caller := middleware.CallerFromContext(c)

	var request OrderInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate order input", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	order, err := h.ordersService.CreateOrder(ctx, caller, orders.CreateOrderInput{
		UserID:    caller.UserID,
		ServiceID: request.ServiceID,
		Quantity:  request.Quantity,
		Link:      request.Link,
	})
	metrics.OrderCreateLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Error("Failed to place order", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

// ListOwn returns the caller's own orders, newest first.
func (h *OrdersHandler) ListOwn(c echo.Context) error {
	caller := middleware.CallerFromContext(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ordersList, err := h.ordersService.ListByUser(ctx, caller, caller.UserID)
	if err != nil {
		logger.Error("Failed to list orders", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(ordersList))
}

func (h *OrdersHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ordersList, err := h.ordersService.ListAll(ctx, middleware.CallerFromContext(c))
	if err != nil {
		logger.Error("Failed to list all orders", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(ordersList))
}

func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, middleware.CallerFromContext(c), uint(id))
	if err != nil {
		logger.Error("Failed to get order by id", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

// SetStatus is the admin "Process" / "Complete" / "Fail" action.
func (h *OrdersHandler) SetStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order id"})
	}

	var request OrderStatusInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate status input", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.SetStatus(ctx, middleware.CallerFromContext(c), uint(id), request.Status)
	if err != nil {
		logger.Error("Failed to update order status", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}
