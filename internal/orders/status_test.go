package orders

import "testing"

func TestStatusGraph(t *testing.T) {
	allowed := [][2]Status{
		{StatusPending, StatusProcessing},
		{StatusPending, StatusCancelled},
		{StatusProcessing, StatusCompleted},
		{StatusProcessing, StatusCancelled},
	}
	for _, tr := range allowed {
		if !CanTransition(tr[0], tr[1]) {
			t.Fatalf("expected %s -> %s to be allowed", tr[0], tr[1])
		}
	}

	denied := [][2]Status{
		{StatusPending, StatusCompleted},
		{StatusCompleted, StatusCancelled},
		{StatusCompleted, StatusProcessing},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusProcessing},
		{StatusProcessing, StatusPending},
	}
	for _, tr := range denied {
		if CanTransition(tr[0], tr[1]) {
			t.Fatalf("expected %s -> %s to be denied", tr[0], tr[1])
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled} {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if Status("shipped").Valid() {
		t.Fatalf("unknown status should be invalid")
	}
}
