package http

import (
	"net/http"

	"retail-backoffice/internal/apperr"
	"retail-backoffice/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
)

type InventoryHandler struct{ svc *ledger.Service }

func NewInventoryHandler(svc *ledger.Service) *InventoryHandler { return &InventoryHandler{svc: svc} }

type receiptReq struct {
	StoreID   string `json:"store_id"   validate:"required,hex32"`
	ProductID string `json:"product_id" validate:"required,hex32"`
	Quantity  int64  `json:"quantity"   validate:"required,gt=0"`
}

// Receive books incoming stock, creating the inventory record on first
// receipt.
func (h *InventoryHandler) Receive(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req receiptReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: ErrorBody{Kind: "VALIDATION_ERROR", Message: "invalid body"}})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	out, err := h.svc.ReceiveStock(c.Request().Context(), ledger.ReceiptInput{
		TenantID:   tenant,
		StoreID:    req.StoreID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		ReceivedBy: userID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "inventory": out})
}

func (h *InventoryHandler) Levels(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	storeID := c.QueryParam("store_id")
	if storeID == "" {
		return respondError(c, apperr.Validation("store_id query parameter is required"))
	}
	out, err := h.svc.ListLevels(c.Request().Context(), tenant, storeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"inventory": out})
}
