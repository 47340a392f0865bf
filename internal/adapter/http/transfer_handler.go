package http

import (
	"net/http"

	"retail-backoffice/internal/usecase/transfers"

	"github.com/labstack/echo/v4"
)

type TransferHandler struct{ uc *transfers.Usecase }

func NewTransferHandler(uc *transfers.Usecase) *TransferHandler { return &TransferHandler{uc: uc} }

type createTransferReq struct {
	SourceStoreID      string  `json:"source_store_id"      validate:"required,hex32"`
	DestinationStoreID string  `json:"destination_store_id" validate:"required,hex32"`
	ProductID          string  `json:"product_id"           validate:"required,hex32"`
	Quantity           int64   `json:"quantity"             validate:"required,gt=0"`
	UnitCost           float64 `json:"unit_cost"            validate:"gte=0"`
	Notes              string  `json:"notes"`
}

func (h *TransferHandler) Create(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req createTransferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: ErrorBody{Kind: "VALIDATION_ERROR", Message: "invalid body"}})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	out, err := h.uc.Create(c.Request().Context(), transfers.CreateInput{
		TenantID:           tenant,
		SourceStoreID:      req.SourceStoreID,
		DestinationStoreID: req.DestinationStoreID,
		ProductID:          req.ProductID,
		Quantity:           req.Quantity,
		UnitCost:           req.UnitCost,
		RequestedBy:        userID(c),
		Notes:              req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "transfer": out})
}

// Transition dispatches PUT /inventory-transfers/:id/:action to the matching
// lifecycle step. Unknown actions are a validation error.
func (h *TransferHandler) Transition(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()
	transferID := c.Param("id")
	user := userID(c)

	var (
		out any
	)
	switch c.Param("action") {
	case "submit":
		out, err = h.uc.Submit(ctx, tenant, transferID, user)
	case "approve":
		out, err = h.uc.Approve(ctx, tenant, transferID, user)
	case "reject":
		out, err = h.uc.Reject(ctx, tenant, transferID, user)
	case "ship":
		out, err = h.uc.Ship(ctx, tenant, transferID, user)
	case "complete":
		out, err = h.uc.Complete(ctx, tenant, transferID, user)
	case "cancel":
		out, err = h.uc.Cancel(ctx, tenant, transferID, user)
	default:
		return c.JSON(http.StatusBadRequest, errorResponse{Error: ErrorBody{
			Kind: "VALIDATION_ERROR", Message: "unknown transfer action",
		}})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "transfer": out})
}

func (h *TransferHandler) Get(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.Request().Context(), tenant, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"transfer": out})
}

func (h *TransferHandler) List(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.Request().Context(), tenant)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"transfers": out})
}
