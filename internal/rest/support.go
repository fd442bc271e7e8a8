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
	SupportService interface {
		CreateTicket(ctx context.Context, caller domain.Caller, userID uint, subject, message string) (domain.SupportTicket, error)
		CloseTicket(ctx context.Context, caller domain.Caller, ticketID uint, reply string) error
		ListByUser(ctx context.Context, caller domain.Caller, userID uint) ([]domain.SupportTicket, error)
		ListAll(ctx context.Context, caller domain.Caller) ([]domain.SupportTicket, error)
	}

	SupportHandler struct {
		validate       *validator.Validate
		supportService SupportService
		timeout        time.Duration
	}

	TicketInput struct {
		Subject string `json:"subject" validate:"required"`
		Message string `json:"message" validate:"required"`
	}

	TicketCloseInput struct {
		Reply string `json:"reply" validate:"required"`
	}
)

func NewSupportHandler(supportService SupportService) *SupportHandler {
	return &SupportHandler{
		validate:       validator.New(),
		supportService: supportService,
		timeout:        10 * time.Second,
	}
}

func (h *SupportHandler) CreateTicket(c echo.Context) error {
	caller := middleware.CallerFromContext(c)

	var request TicketInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate ticket input", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ticket, err := h.supportService.CreateTicket(ctx, caller, caller.UserID, request.Subject, request.Message)
	if err != nil {
		logger.Error("Failed to create support ticket", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(ticket))
}

func (h *SupportHandler) ListOwn(c echo.Context) error {
	caller := middleware.CallerFromContext(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tickets, err := h.supportService.ListByUser(ctx, caller, caller.UserID)
	if err != nil {
		logger.Error("Failed to list tickets", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(tickets))
}

func (h *SupportHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tickets, err := h.supportService.ListAll(ctx, middleware.CallerFromContext(c))
	if err != nil {
		logger.Error("Failed to list all tickets", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(tickets))
}

func (h *SupportHandler) CloseTicket(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid ticket id"})
	}

	var request TicketCloseInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate close input", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.supportService.CloseTicket(ctx, middleware.CallerFromContext(c), uint(id), request.Reply); err != nil {
		logger.Error("Failed to close ticket", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Ticket closed successfully"))
}
