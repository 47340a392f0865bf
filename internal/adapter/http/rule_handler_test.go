package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"testing"

	"retail-backoffice/internal/domain/approval"
	"retail-backoffice/internal/testutil/approvalmock"
	"retail-backoffice/internal/testutil/dirmock"
	"retail-backoffice/internal/usecase/rules"

	"gorm.io/gorm"
)

func newRuleHandlerWith(repo *approvalmock.RuleRepo, dir *dirmock.Service) *RuleHandler {
	if repo == nil {
		repo = &approvalmock.RuleRepo{}
	}
	if dir == nil {
		dir = &dirmock.Service{
			FindEligibleApproversFn: func(ctx context.Context, tenantID string, roles []string) ([]string, error) {
				return []string{"u1", "u2"}, nil
			},
		}
	}
	return NewRuleHandler(rules.NewEngine(repo, dir, nil))
}

func ruleBody() map[string]any {
	return map[string]any{
		"object_type": "inventory_transfer",
		"name":        "High value transfers",
		"conditions": map[string]any{
			"requires_approval": true,
			"min_amount":        1000.0,
			"approval_levels": []map[string]any{
				{"level": 1, "min_approvals": 1, "approver_roles": []string{"manager"}},
			},
		},
	}
}

func TestCreateRule_Success(t *testing.T) {
	e := newEchoWithValidator()
	h := newRuleHandlerWith(nil, nil)

	c, rec := newTenantCtx(e, stdhttp.MethodPost, "/api/v1/approvals/rules", mustJSON(ruleBody()))

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		Rule approval.Rule `json:"rule"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !out.Rule.Active || out.Rule.TenantID != "t1" {
		t.Fatalf("unexpected rule: %+v", out.Rule)
	}
	if out.Rule.Conditions.MinAmount == nil || *out.Rule.Conditions.MinAmount != 1000 {
		t.Fatalf("conditions not carried: %+v", out.Rule.Conditions)
	}
}

func TestCreateRule_UnsatisfiableLevel(t *testing.T) {
	e := newEchoWithValidator()
	// directory reports nobody in the manager role
	h := newRuleHandlerWith(nil, &dirmock.Service{})

	body := ruleBody()
	c, rec := newTenantCtx(e, stdhttp.MethodPost, "/api/v1/approvals/rules", mustJSON(body))

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body=%s", rec.Code, rec.Body.String())
	}
	if er := decodeError(t, rec); er.Kind != "VALIDATION_ERROR" {
		t.Fatalf("kind = %s, want VALIDATION_ERROR", er.Kind)
	}
}

func TestUpdateRule_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	repo := &approvalmock.RuleRepo{
		GetByRuleIDFn: func(ctx context.Context, tenantID, ruleID string) (*approval.Rule, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	h := newRuleHandlerWith(repo, nil)

	c, rec := newTenantCtx(e, stdhttp.MethodPut, "/api/v1/approvals/rules/missing", mustJSON(ruleBody()))
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Update(c); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestArchiveRule(t *testing.T) {
	e := newEchoWithValidator()
	var saved *approval.Rule
	repo := &approvalmock.RuleRepo{
		GetByRuleIDFn: func(ctx context.Context, tenantID, ruleID string) (*approval.Rule, error) {
			return &approval.Rule{RuleID: ruleID, TenantID: tenantID, Active: true}, nil
		},
		SaveFn: func(ctx context.Context, r *approval.Rule) error {
			saved = r
			return nil
		},
	}
	h := newRuleHandlerWith(repo, nil)

	c, rec := newTenantCtx(e, stdhttp.MethodDelete, "/api/v1/approvals/rules/r1", nil)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := h.Archive(c); err != nil {
		t.Fatalf("Archive error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if saved == nil || saved.Active {
		t.Fatalf("rule not deactivated: %+v", saved)
	}
}

func TestCheckRequired(t *testing.T) {
	e := newEchoWithValidator()
	min := 1000.0
	repo := &approvalmock.RuleRepo{
		ListActiveFn: func(ctx context.Context, tenantID string, objectType approval.ObjectType) ([]approval.Rule, error) {
			return []approval.Rule{{
				RuleID: "r1",
				Conditions: approval.RuleConditions{
					RequiresApproval: true,
					MinAmount:        &min,
					ApprovalLevels:   []approval.LevelRule{{Level: 1, MinApprovals: 1, ApproverRoles: []string{"manager"}}},
				},
			}}, nil
		},
	}
	h := newRuleHandlerWith(repo, nil)

	tests := []struct {
		name   string
		amount float64
		want   bool
	}{
		{name: "above threshold", amount: 2500, want: true},
		{name: "below threshold", amount: 500, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := map[string]any{
				"object_type":   "inventory_transfer",
				"approval_data": map[string]any{"amount": tc.amount},
			}
			c, rec := newTenantCtx(e, stdhttp.MethodPost, "/api/v1/approvals/check-required", mustJSON(body))

			if err := h.CheckRequired(c); err != nil {
				t.Fatalf("CheckRequired error: %v", err)
			}
			if rec.Code != stdhttp.StatusOK {
				t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
			}
			var out struct {
				Required bool `json:"required"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
				t.Fatalf("bad json: %v", err)
			}
			if out.Required != tc.want {
				t.Fatalf("required = %v, want %v", out.Required, tc.want)
			}
		})
	}
}
