package rules

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"retail-backoffice/internal/apperr"
	"retail-backoffice/internal/domain/approval"
	"retail-backoffice/internal/domain/audit"
	"retail-backoffice/internal/domain/directory"
	"retail-backoffice/pkg/id"

	"gorm.io/gorm"
)

// ActionData carries the proposed action's payload for rule evaluation. The
// monetary bound checks read the "amount" key.
type ActionData map[string]any

// Engine evaluates tenant approval rules and owns rule CRUD. Unsatisfiable
// configurations are rejected at save time, never at evaluation time.
type Engine struct {
	rules    approval.RuleRepository
	dir      directory.Service
	recorder audit.Recorder
}

func NewEngine(rules approval.RuleRepository, dir directory.Service, rec audit.Recorder) *Engine {
	return &Engine{rules: rules, dir: dir, recorder: rec}
}

type SaveRuleInput struct {
	TenantID   string
	ObjectType approval.ObjectType
	Name       string
	Conditions approval.RuleConditions
	SavedBy    string
}

// Evaluation is the engine's verdict for one proposed action.
type Evaluation struct {
	Required       bool
	Levels         []approval.LevelRule
	ExpiresInHours *int
	RuleID         string
}

func (e *Engine) Create(ctx context.Context, in SaveRuleInput) (*approval.Rule, error) {
	if err := e.validate(ctx, in.TenantID, in.ObjectType, in.Name, in.Conditions); err != nil {
		return nil, err
	}
	r := &approval.Rule{
		RuleID:     id.NewID32(),
		TenantID:   in.TenantID,
		ObjectType: in.ObjectType,
		Name:       in.Name,
		Conditions: in.Conditions,
		Active:     true,
	}
	if err := e.rules.Create(ctx, r); err != nil {
		return nil, apperr.System(err)
	}
	e.record(ctx, in.TenantID, in.SavedBy, "approval_rule.created", r.RuleID)
	return r, nil
}

func (e *Engine) Update(ctx context.Context, tenantID, ruleID string, in SaveRuleInput) (*approval.Rule, error) {
	if err := e.validate(ctx, tenantID, in.ObjectType, in.Name, in.Conditions); err != nil {
		return nil, err
	}
	r, err := e.rules.GetByRuleID(ctx, tenantID, ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("approval rule %s", ruleID)
		}
		return nil, apperr.System(err)
	}
	r.ObjectType = in.ObjectType
	r.Name = in.Name
	r.Conditions = in.Conditions
	if err := e.rules.Save(ctx, r); err != nil {
		return nil, apperr.System(err)
	}
	e.record(ctx, tenantID, in.SavedBy, "approval_rule.updated", r.RuleID)
	return r, nil
}

// Archive deactivates the rule; archived rules never match future evaluations
// but requests already snapshotted from them are unaffected.
func (e *Engine) Archive(ctx context.Context, tenantID, ruleID, userID string) error {
	r, err := e.rules.GetByRuleID(ctx, tenantID, ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("approval rule %s", ruleID)
		}
		return apperr.System(err)
	}
	r.Active = false
	if err := e.rules.Save(ctx, r); err != nil {
		return apperr.System(err)
	}
	e.record(ctx, tenantID, userID, "approval_rule.archived", r.RuleID)
	return nil
}

func (e *Engine) List(ctx context.Context, tenantID string) ([]approval.Rule, error) {
	out, err := e.rules.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, apperr.System(err)
	}
	return out, nil
}

// Evaluate decides whether the proposed action needs approval and, if so,
// with which levels. When several active rules match the object type the most
// recently updated one wins; the repository ordering makes that deterministic.
func (e *Engine) Evaluate(ctx context.Context, tenantID string, objectType approval.ObjectType, data ActionData) (*Evaluation, error) {
	active, err := e.rules.ListActive(ctx, tenantID, objectType)
	if err != nil {
		return nil, apperr.System(err)
	}
	if len(active) == 0 {
		return &Evaluation{Required: false}, nil
	}
	r := active[0]
	c := r.Conditions
	if !c.RequiresApproval {
		return &Evaluation{Required: false, RuleID: r.RuleID}, nil
	}
	amount := extractAmount(data)
	if c.MinAmount != nil && amount < *c.MinAmount {
		return &Evaluation{Required: false, RuleID: r.RuleID}, nil
	}
	if c.MaxAmount != nil && amount > *c.MaxAmount {
		return &Evaluation{Required: false, RuleID: r.RuleID}, nil
	}
	return &Evaluation{
		Required:       true,
		Levels:         c.ApprovalLevels,
		ExpiresInHours: c.ExpiresInHours,
		RuleID:         r.RuleID,
	}, nil
}

// IsApprovalRequired is the direct yes/no probe behind /approvals/check-required.
func (e *Engine) IsApprovalRequired(ctx context.Context, tenantID string, objectType approval.ObjectType, data ActionData) (bool, error) {
	ev, err := e.Evaluate(ctx, tenantID, objectType, data)
	if err != nil {
		return false, err
	}
	return ev.Required, nil
}

// ResolveLevels returns the ordered approval levels the action must clear, or
// an empty list when approval is not required.
func (e *Engine) ResolveLevels(ctx context.Context, tenantID string, objectType approval.ObjectType, data ActionData) ([]approval.LevelRule, error) {
	ev, err := e.Evaluate(ctx, tenantID, objectType, data)
	if err != nil {
		return nil, err
	}
	if !ev.Required {
		return nil, nil
	}
	return ev.Levels, nil
}

func (e *Engine) validate(ctx context.Context, tenantID string, objectType approval.ObjectType, name string, c approval.RuleConditions) error {
	if tenantID == "" {
		return apperr.Validation("tenant id is required")
	}
	if !approval.ValidObjectType(objectType) {
		return apperr.Validation("unknown object type %q", objectType)
	}
	if name == "" {
		return apperr.Validation("rule name is required")
	}
	if c.MinAmount != nil && c.MaxAmount != nil && *c.MinAmount > *c.MaxAmount {
		return apperr.Validation("min_amount exceeds max_amount")
	}
	if c.ExpiresInHours != nil && *c.ExpiresInHours <= 0 {
		return apperr.Validation("expires_in_hours must be positive")
	}
	if !c.RequiresApproval {
		return nil
	}
	if len(c.ApprovalLevels) == 0 {
		return apperr.Validation("a rule requiring approval must define at least one level")
	}
	for i, lvl := range c.ApprovalLevels {
		if lvl.Level != i+1 {
			return apperr.Validation("approval levels must be numbered consecutively from 1")
		}
		if lvl.MinApprovals < 1 {
			return apperr.Validation("level %d: min_approvals must be at least 1", lvl.Level)
		}
		if len(lvl.ApproverRoles) == 0 && len(lvl.ApproverIDs) == 0 {
			return apperr.Validation("level %d: approver roles or ids required", lvl.Level)
		}
		// Unsatisfiable levels are fatal here, at save time.
		eligible := len(lvl.ApproverIDs)
		if len(lvl.ApproverRoles) > 0 {
			ids, err := e.dir.FindEligibleApprovers(ctx, tenantID, lvl.ApproverRoles)
			if err != nil {
				return apperr.System(err)
			}
			eligible += len(ids)
		}
		if eligible < lvl.MinApprovals {
			return apperr.Validation("level %d: only %d eligible approvers for min_approvals=%d",
				lvl.Level, eligible, lvl.MinApprovals)
		}
	}
	return nil
}

func (e *Engine) record(ctx context.Context, tenantID, userID, action, ruleID string) {
	if e.recorder == nil {
		return
	}
	e.recorder.Record(ctx, audit.Event{
		TenantID:    tenantID,
		UserID:      userID,
		Action:      action,
		ObjectTable: "approval_rules",
		ObjectID:    ruleID,
		OccurredAt:  time.Now().UTC(),
	})
}

// extractAmount pulls the numeric amount from the action payload. Absent or
// non-numeric amounts evaluate as zero.
func extractAmount(data ActionData) float64 {
	v, ok := data["amount"]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
