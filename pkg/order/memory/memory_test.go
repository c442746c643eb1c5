package memory

import (
	"context"
	"testing"
	"time"

	"storefront/pkg/cart"
	"storefront/pkg/order"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := New()
	now := time.Now().UTC()
	o := order.Order{
		ID:            "1",
		Owner:         "kim",
		Status:        order.StatusPending,
		PaymentMethod: order.PaymentBankTransfer,
		Items:         []cart.Item{{ID: "p1_M", ProductID: "p1", Price: 39000, Quantity: 1}},
		CreatedAt:     now,
	}
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.Get(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PaymentMethod != order.PaymentBankTransfer {
		t.Fatalf("expected bankTransfer, got %s", got.PaymentMethod)
	}
	updated, err := repo.UpdateStatus(ctx, "1", order.StatusPaid)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != order.StatusPaid || updated.UpdatedAt.IsZero() {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if err := repo.Create(ctx, order.Order{ID: "2", Owner: "kim", CreatedAt: now.Add(time.Minute)}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, order.Order{ID: "3", Owner: "lee", CreatedAt: now}); err != nil {
		t.Fatalf("create: %v", err)
	}
	list, err := repo.List(ctx, "kim")
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
	if list[0].ID != "2" {
		t.Fatalf("expected newest first, got %s", list[0].ID)
	}
	if _, err := repo.UpdateStatus(ctx, "missing", order.StatusPaid); err != order.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Get(ctx, "missing"); err == nil {
		t.Fatal("expected error for missing order")
	}
}
