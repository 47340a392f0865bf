package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	approvalDomain "retail-backoffice/internal/domain/approval"
	"retail-backoffice/pkg/id"

	"gorm.io/gorm"
)

func makeRequest(tenantID, objectID string, expiresAt *time.Time) *approvalDomain.Request {
	return &approvalDomain.Request{
		RequestID:    id.NewID32(),
		TenantID:     tenantID,
		ObjectType:   approvalDomain.ObjectInventoryTransfer,
		ObjectID:     objectID,
		Title:        "Transfer approval",
		Priority:     "normal",
		Status:       approvalDomain.RequestPending,
		CurrentLevel: 1,
		Levels: approvalDomain.LevelSnapshot{
			{Level: 1, MinApprovals: 1, ApproverRoles: []string{"manager"}},
		},
		Decisions:   approvalDomain.DecisionList{},
		RequestedBy: "u9",
		ExpiresAt:   expiresAt,
	}
}

func TestApprovalRequestRoundTrip(t *testing.T) {
	repo := NewApprovalRequestRepository(openTestDB(t))
	ctx := context.Background()

	req := makeRequest("t1", "trf-1", nil)
	req.Decisions = approvalDomain.DecisionList{
		{Level: 1, ApproverID: "u1", Decision: approvalDomain.DecisionApproved, DecidedAt: time.Now().UTC()},
	}
	if err := repo.Create(ctx, req); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByRequestID(ctx, "t1", req.RequestID)
	if err != nil {
		t.Fatalf("GetByRequestID: %v", err)
	}
	if len(got.Levels) != 1 || len(got.Decisions) != 1 {
		t.Fatalf("JSON columns lost: levels=%d decisions=%d", len(got.Levels), len(got.Decisions))
	}
	if got.Decisions[0].ApproverID != "u1" {
		t.Fatalf("decision lost: %+v", got.Decisions[0])
	}

	if _, err := repo.GetByRequestID(ctx, "t2", req.RequestID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("cross-tenant get: want ErrRecordNotFound, got %v", err)
	}
}

func TestApprovalRequestGetByObjectNewestWins(t *testing.T) {
	repo := NewApprovalRequestRepository(openTestDB(t))
	ctx := context.Background()

	first := makeRequest("t1", "trf-1", nil)
	first.Status = approvalDomain.RequestCancelled
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second := makeRequest("t1", "trf-1", nil)
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create second: %v", err)
	}

	got, err := repo.GetByObject(ctx, "t1", approvalDomain.ObjectInventoryTransfer, "trf-1")
	if err != nil {
		t.Fatalf("GetByObject: %v", err)
	}
	if got.RequestID != second.RequestID {
		t.Fatalf("GetByObject returned %s, want the newest %s", got.RequestID, second.RequestID)
	}
}

func TestApprovalRequestListPending(t *testing.T) {
	repo := NewApprovalRequestRepository(openTestDB(t))
	ctx := context.Background()

	pending := makeRequest("t1", "trf-1", nil)
	resolved := makeRequest("t1", "trf-2", nil)
	resolved.Status = approvalDomain.RequestApproved
	other := makeRequest("t2", "trf-3", nil)

	for _, r := range []*approvalDomain.Request{pending, resolved, other} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListPending(ctx, "t1")
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(got) != 1 || got[0].RequestID != pending.RequestID {
		t.Fatalf("ListPending = %+v", got)
	}
}

func TestApprovalRequestExpireDue(t *testing.T) {
	repo := NewApprovalRequestRepository(openTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	due := makeRequest("t1", "trf-1", &past)
	notDue := makeRequest("t1", "trf-2", &future)
	noExpiry := makeRequest("t1", "trf-3", nil)
	resolvedDue := makeRequest("t1", "trf-4", &past)
	resolvedDue.Status = approvalDomain.RequestApproved

	for _, r := range []*approvalDomain.Request{due, notDue, noExpiry, resolvedDue} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	n, err := repo.ExpireDue(ctx, now)
	if err != nil {
		t.Fatalf("ExpireDue: %v", err)
	}
	if n != 1 {
		t.Fatalf("ExpireDue flipped %d rows, want 1", n)
	}

	got, _ := repo.GetByRequestID(ctx, "t1", due.RequestID)
	if got.Status != approvalDomain.RequestExpired {
		t.Fatalf("due request status = %s", got.Status)
	}
	got, _ = repo.GetByRequestID(ctx, "t1", notDue.RequestID)
	if got.Status != approvalDomain.RequestPending {
		t.Fatalf("future request was expired")
	}
	got, _ = repo.GetByRequestID(ctx, "t1", noExpiry.RequestID)
	if got.Status != approvalDomain.RequestPending {
		t.Fatalf("request without expiry was expired")
	}
	got, _ = repo.GetByRequestID(ctx, "t1", resolvedDue.RequestID)
	if got.Status != approvalDomain.RequestApproved {
		t.Fatalf("already resolved request was overwritten")
	}

	// the sweep is idempotent
	n, err = repo.ExpireDue(ctx, now)
	if err != nil || n != 0 {
		t.Fatalf("second sweep = (%d, %v), want (0, nil)", n, err)
	}
}
