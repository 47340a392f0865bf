package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"testing"

	"retail-backoffice/internal/domain/approval"
	"retail-backoffice/internal/domain/uow"
	"retail-backoffice/internal/testutil/approvalmock"
	"retail-backoffice/internal/testutil/dirmock"
	"retail-backoffice/internal/testutil/uowmock"
	"retail-backoffice/internal/usecase/approvals"

	"gorm.io/gorm"
)

func newApprovalHandlerWith(requests *approvalmock.RequestRepo, dir *dirmock.Service) *ApprovalHandler {
	if requests == nil {
		requests = &approvalmock.RequestRepo{}
	}
	if dir == nil {
		dir = &dirmock.Service{}
	}
	m := approvals.NewManager(uowmock.Passthrough(uow.Repos{Requests: requests}), requests, dir, nil)
	return NewApprovalHandler(m)
}

func anyoneIsManager() *dirmock.Service {
	return &dirmock.Service{
		IsMemberFn: func(ctx context.Context, tenantID, userID string, roles []string) (bool, error) {
			return true, nil
		},
	}
}

func pendingRequest(id string) *approval.Request {
	return &approval.Request{
		RequestID:    id,
		TenantID:     "t1",
		ObjectType:   approval.ObjectInventoryTransfer,
		ObjectID:     "tr1",
		Title:        "Transfer TRF-1 approval",
		Priority:     "normal",
		Status:       approval.RequestPending,
		CurrentLevel: 1,
		Levels: approval.LevelSnapshot{
			{Level: 1, MinApprovals: 1, ApproverRoles: []string{"manager"}},
		},
		Decisions:   approval.DecisionList{},
		RequestedBy: "u9",
	}
}

func TestCreateApprovalRequest_Success(t *testing.T) {
	e := newEchoWithValidator()
	h := newApprovalHandlerWith(nil, nil)

	body := map[string]any{
		"object_type": "inventory_transfer",
		"object_id":   "tr1",
		"title":       "Transfer TRF-1 approval",
		"priority":    "high",
		"levels": []map[string]any{
			{"level": 1, "min_approvals": 1, "approver_roles": []string{"manager"}},
		},
	}
	c, rec := newTenantCtx(e, stdhttp.MethodPost, "/api/v1/approvals/requests", mustJSON(body))

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		Request approval.Request `json:"request"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if out.Request.Status != approval.RequestPending {
		t.Fatalf("status = %s, want pending", out.Request.Status)
	}
	if out.Request.CurrentLevel != 1 || out.Request.Priority != "high" {
		t.Fatalf("unexpected request: %+v", out.Request)
	}
	if out.Request.RequestedBy != "u1" {
		t.Fatalf("requested_by = %s, want caller id", out.Request.RequestedBy)
	}
}

func TestCreateApprovalRequest_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h := newApprovalHandlerWith(nil, nil)

	// no levels and a bad priority
	body := map[string]any{
		"object_type": "inventory_transfer",
		"object_id":   "tr1",
		"title":       "x",
		"priority":    "whenever",
	}
	c, rec := newTenantCtx(e, stdhttp.MethodPost, "/api/v1/approvals/requests", mustJSON(body))

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	er := decodeError(t, rec)
	if !containsFieldMsg(er.Details, "Priority", "must be one of") {
		t.Fatalf("missing priority detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "Levels", "is required") {
		t.Fatalf("missing levels detail: %+v", er.Details)
	}
}

func TestProcessApproval_ApproveResolves(t *testing.T) {
	e := newEchoWithValidator()
	requests := &approvalmock.RequestRepo{
		GetByRequestIDForUpdateFn: func(ctx context.Context, tenantID, requestID string) (*approval.Request, error) {
			return pendingRequest(requestID), nil
		},
	}
	h := newApprovalHandlerWith(requests, anyoneIsManager())

	body := map[string]any{"decision": "approved", "comments": "looks fine"}
	c, rec := newTenantCtx(e, stdhttp.MethodPost, "/api/v1/approvals/requests/rq1/process", mustJSON(body))
	c.SetParamNames("id")
	c.SetParamValues("rq1")

	if err := h.Process(c); err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		Request approval.Request `json:"request"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if out.Request.Status != approval.RequestApproved {
		t.Fatalf("status = %s, want approved", out.Request.Status)
	}
	if len(out.Request.Decisions) != 1 || out.Request.Decisions[0].ApproverID != "u1" {
		t.Fatalf("unexpected decisions: %+v", out.Request.Decisions)
	}
}

func TestProcessApproval_BadDecision(t *testing.T) {
	e := newEchoWithValidator()
	h := newApprovalHandlerWith(nil, nil)

	body := map[string]any{"decision": "maybe"}
	c, rec := newTenantCtx(e, stdhttp.MethodPost, "/api/v1/approvals/requests/rq1/process", mustJSON(body))
	c.SetParamNames("id")
	c.SetParamValues("rq1")

	if err := h.Process(c); err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestProcessApproval_IneligibleApprover(t *testing.T) {
	e := newEchoWithValidator()
	requests := &approvalmock.RequestRepo{
		GetByRequestIDForUpdateFn: func(ctx context.Context, tenantID, requestID string) (*approval.Request, error) {
			return pendingRequest(requestID), nil
		},
	}
	// default dirmock reports nobody as a member
	h := newApprovalHandlerWith(requests, nil)

	body := map[string]any{"decision": "approved"}
	c, rec := newTenantCtx(e, stdhttp.MethodPost, "/api/v1/approvals/requests/rq1/process", mustJSON(body))
	c.SetParamNames("id")
	c.SetParamValues("rq1")

	if err := h.Process(c); err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403; body=%s", rec.Code, rec.Body.String())
	}
	if er := decodeError(t, rec); er.Kind != "AUTHORIZATION_ERROR" {
		t.Fatalf("kind = %s, want AUTHORIZATION_ERROR", er.Kind)
	}
}

func TestGetApprovalRequest_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	requests := &approvalmock.RequestRepo{
		GetByRequestIDFn: func(ctx context.Context, tenantID, requestID string) (*approval.Request, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	h := newApprovalHandlerWith(requests, nil)

	c, rec := newTenantCtx(e, stdhttp.MethodGet, "/api/v1/approvals/requests/missing", nil)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListPendingApprovals_ActionableFilter(t *testing.T) {
	e := newEchoWithValidator()
	requests := &approvalmock.RequestRepo{
		ListPendingFn: func(ctx context.Context, tenantID string) ([]approval.Request, error) {
			mine := pendingRequest("rq1")
			other := pendingRequest("rq2")
			other.Levels = approval.LevelSnapshot{{Level: 1, MinApprovals: 1, ApproverIDs: []string{"u9"}}}
			return []approval.Request{*mine, *other}, nil
		},
	}
	dir := &dirmock.Service{
		IsMemberFn: func(ctx context.Context, tenantID, userID string, roles []string) (bool, error) {
			return userID == "u1", nil
		},
	}
	h := newApprovalHandlerWith(requests, dir)

	// actionable narrows to requests the caller can decide
	c, rec := newTenantCtx(e, stdhttp.MethodGet, "/api/v1/approvals/requests/pending?actionable=true", nil)

	if err := h.ListPending(c); err != nil {
		t.Fatalf("ListPending error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out struct {
		Requests []approval.Request `json:"requests"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(out.Requests) != 1 || out.Requests[0].RequestID != "rq1" {
		t.Fatalf("unexpected actionable list: %+v", out.Requests)
	}

	// without the flag the whole pending queue comes back
	c2, rec2 := newTenantCtx(e, stdhttp.MethodGet, "/api/v1/approvals/requests/pending", nil)
	if err := h.ListPending(c2); err != nil {
		t.Fatalf("ListPending error: %v", err)
	}
	var all struct {
		Requests []approval.Request `json:"requests"`
	}
	if err := json.Unmarshal(rec2.Body.Bytes(), &all); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(all.Requests) != 2 {
		t.Fatalf("unexpected pending list: %+v", all.Requests)
	}
}

func TestCancelApprovalRequest(t *testing.T) {
	e := newEchoWithValidator()
	requests := &approvalmock.RequestRepo{
		GetByRequestIDForUpdateFn: func(ctx context.Context, tenantID, requestID string) (*approval.Request, error) {
			return pendingRequest(requestID), nil
		},
	}
	h := newApprovalHandlerWith(requests, nil)

	body := map[string]any{"reason": "duplicate submission"}
	c, rec := newTenantCtx(e, stdhttp.MethodPost, "/api/v1/approvals/requests/rq1/cancel", mustJSON(body))
	c.SetParamNames("id")
	c.SetParamValues("rq1")

	if err := h.Cancel(c); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		Request approval.Request `json:"request"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if out.Request.Status != approval.RequestCancelled || out.Request.CancelReason != "duplicate submission" {
		t.Fatalf("unexpected request: %+v", out.Request)
	}
}
