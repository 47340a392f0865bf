package approvals

import (
	"context"
	"errors"
	"time"

	"retail-backoffice/internal/apperr"
	"retail-backoffice/internal/domain/approval"
	"retail-backoffice/internal/domain/audit"
	"retail-backoffice/internal/domain/directory"
	"retail-backoffice/internal/domain/uow"
	"retail-backoffice/pkg/id"
	"retail-backoffice/pkg/metrics"

	"gorm.io/gorm"
)

// Manager creates, tracks, and resolves approval requests. It is the gate the
// transfer flows consult before changing state: resolution of a request is the
// only signal that unblocks the gated operation.
type Manager struct {
	tx       uow.UnitOfWork
	requests approval.RequestRepository
	dir      directory.Service
	recorder audit.Recorder
}

func NewManager(tx uow.UnitOfWork, requests approval.RequestRepository, dir directory.Service, rec audit.Recorder) *Manager {
	return &Manager{tx: tx, requests: requests, dir: dir, recorder: rec}
}

type CreateInput struct {
	TenantID       string
	ObjectType     approval.ObjectType
	ObjectID       string
	Title          string
	Priority       string
	RequestedBy    string
	Levels         []approval.LevelRule
	ExpiresInHours *int
}

type DecideInput struct {
	TenantID   string
	RequestID  string
	ApproverID string
	Decision   approval.Decision
	Comments   string
}

// NewRequest builds a pending request with the rule's levels snapshotted. It
// performs no I/O so gated flows can persist the request inside their own
// transaction.
func NewRequest(in CreateInput) (*approval.Request, error) {
	if in.TenantID == "" || in.ObjectID == "" || in.RequestedBy == "" {
		return nil, apperr.Validation("tenant, object and requester ids are required")
	}
	if !approval.ValidObjectType(in.ObjectType) {
		return nil, apperr.Validation("unknown object type %q", in.ObjectType)
	}
	if len(in.Levels) == 0 {
		return nil, apperr.Validation("at least one approval level is required")
	}
	priority := in.Priority
	if priority == "" {
		priority = "normal"
	}
	r := &approval.Request{
		RequestID:    id.NewID32(),
		TenantID:     in.TenantID,
		ObjectType:   in.ObjectType,
		ObjectID:     in.ObjectID,
		Title:        in.Title,
		Priority:     priority,
		Status:       approval.RequestPending,
		CurrentLevel: 1,
		Levels:       append(approval.LevelSnapshot{}, in.Levels...),
		Decisions:    approval.DecisionList{},
		RequestedBy:  in.RequestedBy,
	}
	if in.ExpiresInHours != nil {
		t := time.Now().UTC().Add(time.Duration(*in.ExpiresInHours) * time.Hour)
		r.ExpiresAt = &t
	}
	return r, nil
}

func (m *Manager) Create(ctx context.Context, in CreateInput) (*approval.Request, error) {
	r, err := NewRequest(in)
	if err != nil {
		return nil, err
	}
	if err := m.requests.Create(ctx, r); err != nil {
		return nil, apperr.System(err)
	}
	m.record(ctx, r, in.RequestedBy, "approval_request.created")
	return r, nil
}

// Decide records one approver's decision. A rejection at any level resolves
// the whole request as rejected; approvals tally per level until MinApprovals
// is reached, then the level advances or the request resolves approved.
func (m *Manager) Decide(ctx context.Context, in DecideInput) (*approval.Request, error) {
	if in.Decision != approval.DecisionApproved && in.Decision != approval.DecisionRejected {
		return nil, apperr.Validation("decision must be approved or rejected")
	}
	var out *approval.Request
	err := m.tx.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requests.GetByRequestIDForUpdate(ctx, in.TenantID, in.RequestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("approval request %s", in.RequestID)
			}
			return apperr.System(err)
		}
		if req.Status != approval.RequestPending {
			return apperr.Conflict("approval request is already %s", req.Status)
		}
		lvl := req.CurrentLevelRule()
		if lvl == nil {
			return apperr.System(errors.New("request has no definition for its current level"))
		}
		eligible, err := m.eligible(ctx, in.TenantID, in.ApproverID, lvl)
		if err != nil {
			return err
		}
		if !eligible {
			return apperr.Authorization("approver is not eligible for level %d", req.CurrentLevel)
		}
		if req.HasDecided(in.ApproverID, req.CurrentLevel) {
			return apperr.Conflict("approver already decided at level %d", req.CurrentLevel)
		}

		req.Decisions = append(req.Decisions, approval.DecisionRecord{
			Level:      req.CurrentLevel,
			ApproverID: in.ApproverID,
			Decision:   in.Decision,
			Comments:   in.Comments,
			DecidedAt:  time.Now().UTC(),
		})

		if in.Decision == approval.DecisionRejected {
			// Single veto: no further levels are evaluated.
			req.Status = approval.RequestRejected
		} else if req.ApprovalsAtLevel(req.CurrentLevel) >= lvl.MinApprovals {
			if req.CurrentLevel >= len(req.Levels) {
				req.Status = approval.RequestApproved
			} else {
				req.CurrentLevel++
			}
		}

		if err := r.Requests.Save(ctx, req); err != nil {
			return apperr.System(err)
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordDecision(string(in.Decision))
	m.record(ctx, out, in.ApproverID, "approval_request.decided")
	return out, nil
}

// Cancel withdraws a pending request; any other state is a conflict.
func (m *Manager) Cancel(ctx context.Context, tenantID, requestID, reason, userID string) (*approval.Request, error) {
	var out *approval.Request
	err := m.tx.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requests.GetByRequestIDForUpdate(ctx, tenantID, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("approval request %s", requestID)
			}
			return apperr.System(err)
		}
		if req.Status != approval.RequestPending {
			return apperr.Conflict("approval request is already %s", req.Status)
		}
		req.Status = approval.RequestCancelled
		req.CancelReason = reason
		if err := r.Requests.Save(ctx, req); err != nil {
			return apperr.System(err)
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.record(ctx, out, userID, "approval_request.cancelled")
	return out, nil
}

// ExpireDue resolves every pending request past its expiry. The repository
// performs one status-guarded update, so a concurrent Decide on the same
// request cannot both win; re-running the sweep is a no-op.
func (m *Manager) ExpireDue(ctx context.Context) (int64, error) {
	n, err := m.requests.ExpireDue(ctx, time.Now().UTC())
	if err != nil {
		return 0, apperr.System(err)
	}
	if n > 0 {
		metrics.ApprovalRequestsExpired.Add(float64(n))
	}
	return n, nil
}

func (m *Manager) Get(ctx context.Context, tenantID, requestID string) (*approval.Request, error) {
	req, err := m.requests.GetByRequestID(ctx, tenantID, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("approval request %s", requestID)
		}
		return nil, apperr.System(err)
	}
	return req, nil
}

func (m *Manager) ListPending(ctx context.Context, tenantID string) ([]approval.Request, error) {
	out, err := m.requests.ListPending(ctx, tenantID)
	if err != nil {
		return nil, apperr.System(err)
	}
	return out, nil
}

// ListPendingFor narrows the pending queue to requests the given user can act
// on at their current level.
func (m *Manager) ListPendingFor(ctx context.Context, tenantID, userID string) ([]approval.Request, error) {
	pending, err := m.ListPending(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]approval.Request, 0, len(pending))
	for i := range pending {
		lvl := pending[i].CurrentLevelRule()
		if lvl == nil {
			continue
		}
		ok, err := m.eligible(ctx, tenantID, userID, lvl)
		if err != nil {
			return nil, err
		}
		if ok && !pending[i].HasDecided(userID, pending[i].CurrentLevel) {
			out = append(out, pending[i])
		}
	}
	return out, nil
}

func (m *Manager) eligible(ctx context.Context, tenantID, userID string, lvl *approval.LevelRule) (bool, error) {
	for _, aid := range lvl.ApproverIDs {
		if aid == userID {
			return true, nil
		}
	}
	if len(lvl.ApproverRoles) == 0 {
		return false, nil
	}
	ok, err := m.dir.IsMember(ctx, tenantID, userID, lvl.ApproverRoles)
	if err != nil {
		return false, apperr.System(err)
	}
	return ok, nil
}

func (m *Manager) record(ctx context.Context, req *approval.Request, userID, action string) {
	if m.recorder == nil || req == nil {
		return
	}
	m.recorder.Record(ctx, audit.Event{
		TenantID:    req.TenantID,
		UserID:      userID,
		Action:      action,
		ObjectTable: "approval_requests",
		ObjectID:    req.RequestID,
		Data:        map[string]any{"status": req.Status, "current_level": req.CurrentLevel},
		OccurredAt:  time.Now().UTC(),
	})
}
