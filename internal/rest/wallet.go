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
	WalletService interface {
		CreateRequest(ctx context.Context, caller domain.Caller, userID uint, amount float64, proofImage string) (domain.WalletRequest, error)
		Approve(ctx context.Context, caller domain.Caller, requestID uint) (domain.WalletRequest, error)
		Decline(ctx context.Context, caller domain.Caller, requestID uint) (domain.WalletRequest, error)
		ListByUser(ctx context.Context, caller domain.Caller, userID uint) ([]domain.WalletRequest, error)
		ListAll(ctx context.Context, caller domain.Caller) ([]domain.WalletRequest, error)
	}

	LedgerService interface {
		GetBalance(ctx context.Context, caller domain.Caller, userID uint) (float64, error)
		Credit(ctx context.Context, caller domain.Caller, userID uint, amount float64) (float64, error)
		Debit(ctx context.Context, caller domain.Caller, userID uint, amount float64) (float64, error)
	}

	WalletHandler struct {
		validate      *validator.Validate
		walletService WalletService
		ledgerService LedgerService
		timeout       time.Duration
	}

	TopUpInput struct {
		Amount     float64 `json:"amount" validate:"required,gt=0"`
		ProofImage string  `json:"proof_image" validate:"required"`
	}

	AdjustmentInput struct {
		Amount float64 `json:"amount" validate:"required,gt=0"`
	}
)

func NewWalletHandler(walletService WalletService, ledgerService LedgerService) *WalletHandler {
	return &WalletHandler{
		validate:      validator.New(),
		walletService: walletService,
		ledgerService: ledgerService,
		timeout:       10 * time.Second,
	}
}

func (h *WalletHandler) GetBalance(c echo.Context) error {
	caller := middleware.CallerFromContext(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	balance, err := h.ledgerService.GetBalance(ctx, caller, caller.UserID)
	if err != nil {
		logger.Error("Failed to get balance", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"balance": balance,
	}))
}

// Credit is the admin manual-correction action, e.g. refunding a failed
// order outside the top-up flow.
func (h *WalletHandler) Credit(c echo.Context) error {
	return h.adjust(c, h.ledgerService.Credit)
}

// Debit is the admin manual-correction action for clawing back a mistaken
// credit.
func (h *WalletHandler) Debit(c echo.Context) error {
	return h.adjust(c, h.ledgerService.Debit)
}

func (h *WalletHandler) adjust(c echo.Context, op func(context.Context, domain.Caller, uint, float64) (float64, error)) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user id"})
	}

	var request AdjustmentInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate adjustment input", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	balance, err := op(ctx, middleware.CallerFromContext(c), uint(id), request.Amount)
	if err != nil {
		logger.Error("Failed to adjust balance", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"balance": balance,
	}))
}

func (h *WalletHandler) CreateRequest(c echo.Context) error {
	caller := middleware.CallerFromContext(c)

	var request TopUpInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate top-up input", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	walletRequest, err := h.walletService.CreateRequest(ctx, caller, caller.UserID, request.Amount, request.ProofImage)
	if err != nil {
		logger.Error("Failed to create wallet request", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(walletRequest))
}

func (h *WalletHandler) ListOwn(c echo.Context) error {
	caller := middleware.CallerFromContext(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	requests, err := h.walletService.ListByUser(ctx, caller, caller.UserID)
	if err != nil {
		logger.Error("Failed to list wallet requests", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(requests))
}

func (h *WalletHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	requests, err := h.walletService.ListAll(ctx, middleware.CallerFromContext(c))
	if err != nil {
		logger.Error("Failed to list all wallet requests", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(requests))
}

func (h *WalletHandler) Approve(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	request, err := h.walletService.Approve(ctx, middleware.CallerFromContext(c), uint(id))
	if err != nil {
		logger.Error("Failed to approve wallet request", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(request))
}

func (h *WalletHandler) Decline(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	request, err := h.walletService.Decline(ctx, middleware.CallerFromContext(c), uint(id))
	if err != nil {
		logger.Error("Failed to decline wallet request", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(request))
}
