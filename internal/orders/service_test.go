package orders

import (
	"context"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/celerix-dev/celerix-commerce/internal/clock"
	"github.com/celerix-dev/celerix-commerce/internal/engine"
	"github.com/celerix-dev/celerix-commerce/internal/events"
	"github.com/celerix-dev/celerix-commerce/internal/identity"
	"github.com/celerix-dev/celerix-commerce/internal/platform/logger"
	"github.com/celerix-dev/celerix-commerce/pkg/schema"
	"github.com/celerix-dev/celerix-commerce/pkg/sdk"
)

// countingLookup wraps a lookup and counts calls.
type countingLookup struct {
	next  UserLookup
	err   error
	calls atomic.Int32
}

func (c *countingLookup) GetUser(ctx context.Context, id string) (schema.User, error) {
	c.calls.Add(1)
	if c.err != nil {
		return schema.User{}, c.err
	}
	return c.next.GetUser(ctx, id)
}

var fixedNow = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

func setup(t *testing.T) (*Service, *identity.Service, *countingLookup, *engine.OrderMemStore) {
	t.Helper()
	log := logger.NewNop()
	users := identity.NewService(engine.NewUserMemStore(), nil, log)
	lookup := &countingLookup{next: users}
	store := engine.NewOrderMemStore()
	return NewService(store, lookup, clock.NewFixed(fixedNow), &events.Recorder{}, log), users, lookup, store
}

func TestCreateOrder_SnapshotsUser(t *testing.T) {
	svc, users, _, _ := setup(t)
	ctx := context.Background()

	alice, _ := users.CreateUser(ctx, "Alice", "alice@example.com")
	items := []string{"book", "pen"}
	o, err := svc.CreateOrder(ctx, alice.ID, items, 50)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if o.ID == "" || o.UserID != alice.ID || o.UserNameSnapshot != "Alice" || o.Total != 50 {
		t.Errorf("unexpected order: %+v", o)
	}
	if !o.CreatedAt.Equal(fixedNow) || o.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v, want %v UTC", o.CreatedAt, fixedNow)
	}

	// Mutating the caller's slice must not reach the stored order.
	items[0] = "changed"
	got, _ := svc.GetOrder(ctx, o.ID)
	if got.Items[0] != "book" {
		t.Errorf("stored items aliased caller slice: %v", got.Items)
	}

	// Renaming the user does not follow into the order.
	if _, err := users.UpdateUser(ctx, alice.ID, "Alicia", ""); err != nil {
		t.Fatal(err)
	}
	got, _ = svc.GetOrder(ctx, o.ID)
	if got.UserNameSnapshot != "Alice" {
		t.Errorf("snapshot followed rename: %q", got.UserNameSnapshot)
	}
}

func TestCreateOrder_ValidationFailsFast(t *testing.T) {
	svc, users, lookup, store := setup(t)
	ctx := context.Background()
	u, _ := users.CreateUser(ctx, "Bob", "bob@example.com")

	cases := []struct {
		name   string
		userID string
		items  []string
		total  float64
	}{
		{"missing user", "", []string{"x"}, 10},
		{"no items", u.ID, nil, 10},
		{"zero total", u.ID, []string{"x"}, 0},
		{"negative total", u.ID, []string{"x"}, -5},
		{"nan total", u.ID, []string{"x"}, math.NaN()},
		{"infinite total", u.ID, []string{"x"}, math.Inf(1)},
		{"total above max", u.ID, []string{"x"}, 1e308},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.CreateOrder(ctx, c.userID, c.items, c.total)
			if sdk.KindOf(err) != sdk.KindInvalidArgument {
				t.Errorf("kind = %v, want invalid_argument (err=%v)", sdk.KindOf(err), err)
			}
		})
	}
	if n := lookup.calls.Load(); n != 0 {
		t.Errorf("expected no upstream calls, got %d", n)
	}
	if store.Len() != 0 {
		t.Errorf("expected no orders, got %d", store.Len())
	}
}

func TestCreateOrder_MaxTotalAccepted(t *testing.T) {
	svc, users, _, _ := setup(t)
	ctx := context.Background()
	u, _ := users.CreateUser(ctx, "Rich", "rich@example.com")

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateOrder(ctx, u.ID, []string{"yacht"}, MaxOrderTotal); err != nil {
			t.Fatalf("CreateOrder at max total: %v", err)
		}
	}
	list, _ := svc.ListOrders(ctx, u.ID)
	var sum float64
	for _, o := range list {
		sum += o.Total
	}
	if math.IsInf(sum, 0) || sum != 3*MaxOrderTotal {
		t.Errorf("sum = %v, want %v", sum, 3*MaxOrderTotal)
	}
}

func TestCreateOrder_UnknownUser(t *testing.T) {
	svc, _, lookup, store := setup(t)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, "ghost", []string{"x"}, 10)
	if sdk.KindOf(err) != sdk.KindNotFound {
		t.Fatalf("kind = %v, want not_found (err=%v)", sdk.KindOf(err), err)
	}
	if !strings.HasPrefix(err.Error(), "user lookup failed: ") {
		t.Errorf("message not annotated: %q", err.Error())
	}
	if lookup.calls.Load() != 1 {
		t.Errorf("expected one upstream call, got %d", lookup.calls.Load())
	}
	if store.Len() != 0 {
		t.Errorf("expected no orders, got %d", store.Len())
	}
	if all, _ := svc.ListOrders(ctx, ""); len(all) != 0 {
		t.Errorf("ListOrders returned %d orders", len(all))
	}
}

func TestCreateOrder_PropagatesUpstreamKind(t *testing.T) {
	kinds := []sdk.Kind{sdk.KindUnavailable, sdk.KindDeadlineExceeded, sdk.KindInternal}
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			svc, _, lookup, _ := setup(t)
			lookup.err = sdk.Errorf(k, "upstream says no")

			_, err := svc.CreateOrder(context.Background(), "u1", []string{"x"}, 1)
			if sdk.KindOf(err) != k {
				t.Errorf("kind = %v, want %v", sdk.KindOf(err), k)
			}
			if err.Error() != "user lookup failed: upstream says no" {
				t.Errorf("message = %q", err.Error())
			}
		})
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	svc, _, _, _ := setup(t)
	_, err := svc.GetOrder(context.Background(), "missing")
	if sdk.KindOf(err) != sdk.KindNotFound {
		t.Errorf("kind = %v, want not_found", sdk.KindOf(err))
	}
}

func TestListOrders_FilterAndFullScan(t *testing.T) {
	svc, users, _, _ := setup(t)
	ctx := context.Background()

	a, _ := users.CreateUser(ctx, "A", "a@example.com")
	b, _ := users.CreateUser(ctx, "B", "b@example.com")
	o1, _ := svc.CreateOrder(ctx, a.ID, []string{"1"}, 1)
	o2, _ := svc.CreateOrder(ctx, b.ID, []string{"2"}, 2)
	o3, _ := svc.CreateOrder(ctx, a.ID, []string{"3"}, 3)

	forA, _ := svc.ListOrders(ctx, a.ID)
	if len(forA) != 2 || forA[0].ID != o1.ID || forA[1].ID != o3.ID {
		t.Errorf("filtered list = %+v", forA)
	}
	all, _ := svc.ListOrders(ctx, "")
	if len(all) != 3 || all[1].ID != o2.ID {
		t.Errorf("full list = %+v", all)
	}

	// Orders survive deletion of their user.
	if err := users.DeleteUser(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	forA, _ = svc.ListOrders(ctx, a.ID)
	if len(forA) != 2 {
		t.Errorf("orphaned orders dropped: %d left", len(forA))
	}
}

func TestCreateOrder_Concurrent(t *testing.T) {
	svc, users, _, store := setup(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		u, _ := users.CreateUser(ctx, "U", "u@example.com")
		ids = append(ids, u.ID)
	}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			if _, err := svc.CreateOrder(ctx, uid, []string{"x"}, 1); err != nil {
				t.Errorf("CreateOrder: %v", err)
			}
		}(ids[i%len(ids)])
	}
	wg.Wait()

	if store.Len() != 40 {
		t.Fatalf("expected 40 orders, got %d", store.Len())
	}
	for _, uid := range ids {
		if got, _ := svc.ListOrders(ctx, uid); len(got) != 10 {
			t.Errorf("user %s has %d orders, want 10", uid, len(got))
		}
	}
}
