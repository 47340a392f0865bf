package sequence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"retail-backoffice/internal/apperr"
	"retail-backoffice/internal/testutil/seqmock"
)

func frozen() *Generator {
	at := time.Date(2025, 9, 1, 15, 30, 45, 0, time.UTC)
	return &Generator{now: func() time.Time { return at }}
}

func TestNextFormat(t *testing.T) {
	g := frozen()
	repo := &seqmock.Repo{}

	got, err := g.Next(context.Background(), repo, "t1", "TRF")
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != "TRF-20250901-153045-0001" {
		t.Fatalf("Next = %q", got)
	}

	// counter keeps climbing within the same day
	for i := 2; i <= 11; i++ {
		got, err = g.Next(context.Background(), repo, "t1", "TRF")
		if err != nil {
			t.Fatalf("Next #%d: %v", i, err)
		}
	}
	if got != "TRF-20250901-153045-0011" {
		t.Fatalf("11th Next = %q", got)
	}
}

func TestNextIsolatesTenantAndPrefix(t *testing.T) {
	g := frozen()
	repo := &seqmock.Repo{}

	a, _ := g.Next(context.Background(), repo, "t1", "TRF")
	b, _ := g.Next(context.Background(), repo, "t2", "TRF")
	c, _ := g.Next(context.Background(), repo, "t1", "BTR")

	for _, got := range []string{a, b, c} {
		if want := "-0001"; got[len(got)-5:] != want {
			t.Fatalf("counter not isolated: %q", got)
		}
	}
	if c[:3] != "BTR" {
		t.Fatalf("prefix not applied: %q", c)
	}
}

func TestNextValidatesInput(t *testing.T) {
	g := frozen()
	repo := &seqmock.Repo{}

	if _, err := g.Next(context.Background(), repo, "", "TRF"); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("want validation, got %v", err)
	}
	if _, err := g.Next(context.Background(), repo, "t1", ""); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("want validation, got %v", err)
	}
}

func TestNextPropagatesCounterFailure(t *testing.T) {
	g := frozen()
	repo := &seqmock.Repo{
		IncrementFn: func(context.Context, string, string, string) (int64, error) {
			return 0, fmt.Errorf("deadlock")
		},
	}
	if _, err := g.Next(context.Background(), repo, "t1", "TRF"); !apperr.IsKind(err, apperr.KindSystem) {
		t.Fatalf("want system error, got %v", err)
	}
}
