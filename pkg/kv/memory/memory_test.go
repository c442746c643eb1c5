package memory

import (
	"context"
	"testing"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, "cancelledOrders"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "cancelledOrders", `["o-1"]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get(ctx, "cancelledOrders")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if v != `["o-1"]` {
		t.Fatalf("unexpected value: %s", v)
	}
	if err := s.Set(ctx, "cancelledOrders", `[]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := s.Get(ctx, "cancelledOrders"); v != `[]` {
		t.Fatalf("expected overwrite, got %s", v)
	}
}
