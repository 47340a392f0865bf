package approval

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type ObjectType string

const (
	ObjectInventoryTransfer   ObjectType = "inventory_transfer"
	ObjectInventoryAdjustment ObjectType = "inventory_adjustment"
	ObjectSale                ObjectType = "sale"
	ObjectRefund              ObjectType = "refund"
)

func ValidObjectType(t ObjectType) bool {
	switch t {
	case ObjectInventoryTransfer, ObjectInventoryAdjustment, ObjectSale, ObjectRefund:
		return true
	}
	return false
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
	RequestExpired   RequestStatus = "expired"
)

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// LevelRule is one stage of a multi-stage sign-off. A level names either a
// fixed approver-id set or a role set; MinApprovals distinct qualifying
// approvers must approve before the level is satisfied.
type LevelRule struct {
	Level         int      `json:"level"`
	MinApprovals  int      `json:"min_approvals"`
	ApproverRoles []string `json:"approver_roles,omitempty"`
	ApproverIDs   []string `json:"approver_ids,omitempty"`
}

// RuleConditions is the typed shape of an approval rule's conditions column.
// Required fields are validated at rule-save time, never at evaluation time.
type RuleConditions struct {
	RequiresApproval bool        `json:"requires_approval"`
	MinAmount        *float64    `json:"min_amount,omitempty"`
	MaxAmount        *float64    `json:"max_amount,omitempty"`
	ApprovalLevels   []LevelRule `json:"approval_levels,omitempty"`
	ExpiresInHours   *int        `json:"expires_in_hours,omitempty"`
}

func (c RuleConditions) Value() (driver.Value, error) { return json.Marshal(c) }

func (c *RuleConditions) Scan(src any) error {
	b, err := jsonColumnBytes(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, c)
}

// Rule is a tenant's approval policy for one object type.
type Rule struct {
	ID         uint64         `gorm:"primaryKey;column:id" json:"-"`
	RuleID     string         `gorm:"size:32;not null;uniqueIndex:ux_approval_rules_rule_id" json:"rule_id"`
	TenantID   string         `gorm:"size:32;not null;index:idx_approval_rules_tenant_type,priority:1" json:"tenant_id"`
	ObjectType ObjectType     `gorm:"size:32;not null;index:idx_approval_rules_tenant_type,priority:2" json:"object_type"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Conditions RuleConditions `gorm:"type:json;not null" json:"conditions"`
	Active     bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Rule) TableName() string { return "approval_rules" }

// LevelSnapshot freezes a rule's levels onto a request at creation time. Rule
// edits after creation never alter an in-flight request.
type LevelSnapshot []LevelRule

func (l LevelSnapshot) Value() (driver.Value, error) { return json.Marshal(l) }

func (l *LevelSnapshot) Scan(src any) error {
	b, err := jsonColumnBytes(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, l)
}

// DecisionRecord is one approver's recorded decision on a request.
type DecisionRecord struct {
	Level      int       `json:"level"`
	ApproverID string    `json:"approver_id"`
	Decision   Decision  `json:"decision"`
	Comments   string    `json:"comments,omitempty"`
	DecidedAt  time.Time `json:"decided_at"`
}

type DecisionList []DecisionRecord

func (d DecisionList) Value() (driver.Value, error) { return json.Marshal(d) }

func (d *DecisionList) Scan(src any) error {
	b, err := jsonColumnBytes(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, d)
}

func jsonColumnBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case nil:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("unsupported json column type %T", src)
	}
}

// Request is one in-flight (or resolved) approval for a gated action. Resolved
// exactly once; immutable after resolution.
type Request struct {
	ID           uint64        `gorm:"primaryKey;column:id" json:"-"`
	RequestID    string        `gorm:"size:32;not null;uniqueIndex:ux_approval_requests_request_id" json:"request_id"`
	TenantID     string        `gorm:"size:32;not null;index:idx_approval_requests_tenant" json:"tenant_id"`
	ObjectType   ObjectType    `gorm:"size:32;not null;index:idx_approval_requests_object,priority:1" json:"object_type"`
	ObjectID     string        `gorm:"size:64;not null;index:idx_approval_requests_object,priority:2" json:"object_id"`
	Title        string        `gorm:"size:255;not null" json:"title"`
	Priority     string        `gorm:"size:16;not null;default:'normal'" json:"priority"`
	Status       RequestStatus `gorm:"size:16;not null;default:'pending';index" json:"status"`
	CurrentLevel int           `gorm:"not null;default:1" json:"current_level"`
	Levels       LevelSnapshot `gorm:"type:json;not null" json:"levels"`
	Decisions    DecisionList  `gorm:"type:json" json:"decisions"`
	RequestedBy  string        `gorm:"size:32;not null" json:"requested_by"`
	CancelReason string        `gorm:"size:255" json:"cancel_reason,omitempty"`
	ExpiresAt    *time.Time    `gorm:"index" json:"expires_at,omitempty"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Request) TableName() string { return "approval_requests" }

// CurrentLevelRule returns the snapshotted definition of the request's current
// level, or nil if the level index is out of range.
func (r *Request) CurrentLevelRule() *LevelRule {
	for i := range r.Levels {
		if r.Levels[i].Level == r.CurrentLevel {
			return &r.Levels[i]
		}
	}
	return nil
}

// ApprovalsAtLevel counts distinct approvers who approved at the given level.
func (r *Request) ApprovalsAtLevel(level int) int {
	seen := map[string]bool{}
	for _, d := range r.Decisions {
		if d.Level == level && d.Decision == DecisionApproved {
			seen[d.ApproverID] = true
		}
	}
	return len(seen)
}

// HasDecided reports whether the approver already recorded a decision at the
// given level.
func (r *Request) HasDecided(approverID string, level int) bool {
	for _, d := range r.Decisions {
		if d.Level == level && d.ApproverID == approverID {
			return true
		}
	}
	return false
}
