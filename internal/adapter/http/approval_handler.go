package http

import (
	"net/http"

	"retail-backoffice/internal/domain/approval"
	"retail-backoffice/internal/usecase/approvals"

	"github.com/labstack/echo/v4"
)

type ApprovalHandler struct{ manager *approvals.Manager }

func NewApprovalHandler(m *approvals.Manager) *ApprovalHandler { return &ApprovalHandler{manager: m} }

type createRequestReq struct {
	ObjectType string         `json:"object_type" validate:"required"`
	ObjectID   string         `json:"object_id"   validate:"required"`
	Title      string         `json:"title"       validate:"required"`
	Priority   string         `json:"priority"    validate:"omitempty,oneof=low normal high urgent"`
	Levels     []levelRuleReq `json:"levels"      validate:"required,min=1,dive"`
	ExpiresIn  *int           `json:"expires_in_hours"`
}

func (h *ApprovalHandler) Create(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req createRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: ErrorBody{Kind: "VALIDATION_ERROR", Message: "invalid body"}})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	in := approvals.CreateInput{
		TenantID:       tenant,
		ObjectType:     approval.ObjectType(req.ObjectType),
		ObjectID:       req.ObjectID,
		Title:          req.Title,
		Priority:       req.Priority,
		RequestedBy:    userID(c),
		ExpiresInHours: req.ExpiresIn,
	}
	for _, l := range req.Levels {
		in.Levels = append(in.Levels, approval.LevelRule{
			Level:         l.Level,
			MinApprovals:  l.MinApprovals,
			ApproverRoles: l.ApproverRoles,
			ApproverIDs:   l.ApproverIDs,
		})
	}
	out, err := h.manager.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "request": out})
}

func (h *ApprovalHandler) Get(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.manager.Get(c.Request().Context(), tenant, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"request": out})
}

// ListPending returns the tenant's pending queue; with ?actionable=true it is
// narrowed to requests the caller can decide at the current level.
func (h *ApprovalHandler) ListPending(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	var (
		out []approval.Request
	)
	if c.QueryParam("actionable") == "true" {
		out, err = h.manager.ListPendingFor(c.Request().Context(), tenant, userID(c))
	} else {
		out, err = h.manager.ListPending(c.Request().Context(), tenant)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"requests": out})
}

type processReq struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Comments string `json:"comments"`
}

func (h *ApprovalHandler) Process(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req processReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: ErrorBody{Kind: "VALIDATION_ERROR", Message: "invalid body"}})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	out, err := h.manager.Decide(c.Request().Context(), approvals.DecideInput{
		TenantID:   tenant,
		RequestID:  c.Param("id"),
		ApproverID: userID(c),
		Decision:   approval.Decision(req.Decision),
		Comments:   req.Comments,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "request": out})
}

type cancelReq struct {
	Reason string `json:"reason"`
}

func (h *ApprovalHandler) Cancel(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req cancelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: ErrorBody{Kind: "VALIDATION_ERROR", Message: "invalid body"}})
	}
	out, err := h.manager.Cancel(c.Request().Context(), tenant, c.Param("id"), req.Reason, userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "request": out})
}
