package http

import (
	"net/http"

	"retail-backoffice/internal/domain/approval"
	"retail-backoffice/internal/usecase/rules"

	"github.com/labstack/echo/v4"
)

type RuleHandler struct{ engine *rules.Engine }

func NewRuleHandler(engine *rules.Engine) *RuleHandler { return &RuleHandler{engine: engine} }

type levelRuleReq struct {
	Level         int      `json:"level" validate:"gte=1"`
	MinApprovals  int      `json:"min_approvals" validate:"gte=1"`
	ApproverRoles []string `json:"approver_roles"`
	ApproverIDs   []string `json:"approver_ids"`
}

type ruleConditionsReq struct {
	RequiresApproval bool           `json:"requires_approval"`
	MinAmount        *float64       `json:"min_amount"`
	MaxAmount        *float64       `json:"max_amount"`
	ApprovalLevels   []levelRuleReq `json:"approval_levels" validate:"dive"`
	ExpiresInHours   *int           `json:"expires_in_hours"`
}

type saveRuleReq struct {
	ObjectType string            `json:"object_type" validate:"required"`
	Name       string            `json:"name"        validate:"required"`
	Conditions ruleConditionsReq `json:"conditions"`
}

func (req *saveRuleReq) toInput(tenant, user string) rules.SaveRuleInput {
	c := approval.RuleConditions{
		RequiresApproval: req.Conditions.RequiresApproval,
		MinAmount:        req.Conditions.MinAmount,
		MaxAmount:        req.Conditions.MaxAmount,
		ExpiresInHours:   req.Conditions.ExpiresInHours,
	}
	for _, l := range req.Conditions.ApprovalLevels {
		c.ApprovalLevels = append(c.ApprovalLevels, approval.LevelRule{
			Level:         l.Level,
			MinApprovals:  l.MinApprovals,
			ApproverRoles: l.ApproverRoles,
			ApproverIDs:   l.ApproverIDs,
		})
	}
	return rules.SaveRuleInput{
		TenantID:   tenant,
		ObjectType: approval.ObjectType(req.ObjectType),
		Name:       req.Name,
		Conditions: c,
		SavedBy:    user,
	}
}

func (h *RuleHandler) Create(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req saveRuleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: ErrorBody{Kind: "VALIDATION_ERROR", Message: "invalid body"}})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	rule, err := h.engine.Create(c.Request().Context(), req.toInput(tenant, userID(c)))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "rule": rule})
}

func (h *RuleHandler) Update(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req saveRuleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: ErrorBody{Kind: "VALIDATION_ERROR", Message: "invalid body"}})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	rule, err := h.engine.Update(c.Request().Context(), tenant, c.Param("id"), req.toInput(tenant, userID(c)))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "rule": rule})
}

func (h *RuleHandler) List(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.engine.List(c.Request().Context(), tenant)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"rules": out})
}

// Archive handles DELETE; rules are deactivated, never hard-deleted.
func (h *RuleHandler) Archive(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.engine.Archive(c.Request().Context(), tenant, c.Param("id"), userID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

type checkRequiredReq struct {
	ObjectType   string         `json:"object_type" validate:"required"`
	ApprovalData map[string]any `json:"approval_data"`
}

func (h *RuleHandler) CheckRequired(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req checkRequiredReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: ErrorBody{Kind: "VALIDATION_ERROR", Message: "invalid body"}})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	required, err := h.engine.IsApprovalRequired(c.Request().Context(), tenant,
		approval.ObjectType(req.ObjectType), rules.ActionData(req.ApprovalData))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"required": required})
}
