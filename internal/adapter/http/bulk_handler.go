package http

import (
	"context"
	"net/http"

	"retail-backoffice/internal/domain/bulktransfer"
	"retail-backoffice/internal/usecase/bulk"

	"github.com/labstack/echo/v4"
)

type BulkHandler struct{ uc *bulk.Orchestrator }

func NewBulkHandler(uc *bulk.Orchestrator) *BulkHandler { return &BulkHandler{uc: uc} }

type bulkItemReq struct {
	ProductID string  `json:"product_id" validate:"required,hex32"`
	Quantity  int64   `json:"quantity"   validate:"required,gt=0"`
	UnitCost  float64 `json:"unit_cost"  validate:"gte=0"`
}

type createBulkReq struct {
	SourceStoreID      string        `json:"source_store_id"      validate:"required,hex32"`
	DestinationStoreID string        `json:"destination_store_id" validate:"required,hex32"`
	Title              string        `json:"title"                validate:"required"`
	Priority           string        `json:"priority"             validate:"omitempty,oneof=low normal high urgent"`
	TransferType       string        `json:"transfer_type"        validate:"omitempty,oneof=replenishment allocation return adjustment emergency"`
	Notes              string        `json:"notes"`
	Items              []bulkItemReq `json:"items" validate:"required,min=1,dive"`
}

func (h *BulkHandler) Create(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req createBulkReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: ErrorBody{Kind: "VALIDATION_ERROR", Message: "invalid body"}})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	in := bulk.CreateInput{
		TenantID:           tenant,
		SourceStoreID:      req.SourceStoreID,
		DestinationStoreID: req.DestinationStoreID,
		Title:              req.Title,
		Priority:           bulktransfer.Priority(req.Priority),
		TransferType:       bulktransfer.TransferType(req.TransferType),
		RequestedBy:        userID(c),
		Notes:              req.Notes,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, bulk.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity, UnitCost: it.UnitCost})
	}
	out, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "bulk_transfer": out})
}

func (h *BulkHandler) Submit(c echo.Context) error {
	return h.transition(c, h.uc.Submit)
}

func (h *BulkHandler) Approve(c echo.Context) error {
	return h.transition(c, h.uc.Approve)
}

func (h *BulkHandler) Cancel(c echo.Context) error {
	return h.transition(c, h.uc.Cancel)
}

func (h *BulkHandler) transition(c echo.Context, fn func(ctx context.Context, tenant, bulkID, user string) (*bulktransfer.BulkTransfer, error)) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := fn(c.Request().Context(), tenant, c.Param("id"), userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "bulk_transfer": out})
}

func (h *BulkHandler) Get(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.Request().Context(), tenant, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"bulk_transfer": out})
}

func (h *BulkHandler) List(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.Request().Context(), tenant)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"bulk_transfers": out})
}
