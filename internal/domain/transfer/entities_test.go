package transfer

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"draft submits", StatusDraft, StatusPending, true},
		{"pending approves", StatusPending, StatusApproved, true},
		{"approved ships", StatusApproved, StatusShipped, true},
		{"shipped completes", StatusShipped, StatusCompleted, true},
		{"pending rejects", StatusPending, StatusRejected, true},
		{"draft cancels", StatusDraft, StatusCancelled, true},
		{"pending cancels", StatusPending, StatusCancelled, true},
		{"approved cancels", StatusApproved, StatusCancelled, true},

		{"draft cannot ship", StatusDraft, StatusShipped, false},
		{"draft cannot approve", StatusDraft, StatusApproved, false},
		{"approved cannot complete", StatusApproved, StatusCompleted, false},
		{"shipped cannot cancel", StatusShipped, StatusCancelled, false},
		{"completed is final", StatusCompleted, StatusCancelled, false},
		{"rejected is final", StatusRejected, StatusPending, false},
		{"no self transition", StatusPending, StatusPending, false},
		{"no backwards step", StatusApproved, StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Fatalf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	terminal := []Status{StatusCompleted, StatusRejected, StatusCancelled}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusDraft, StatusPending, StatusApproved, StatusShipped} {
		if s.Terminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}

func TestTransferValue(t *testing.T) {
	tr := &Transfer{Quantity: 12, UnitCost: 2.5}
	if got := tr.Value(); got != 30 {
		t.Fatalf("Value() = %v, want 30", got)
	}
}
