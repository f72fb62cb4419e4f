package reports

import (
	"cmp"
	"slices"

	"github.com/celerix-dev/celerix-commerce/pkg/schema"
)

// DefaultTopN is used when a caller asks for a non-positive ranking size.
const DefaultTopN = 5

// ClampTopN returns n, or DefaultTopN when n is not positive.
func ClampTopN(n int) int {
	if n <= 0 {
		return DefaultTopN
	}
	return n
}

// Rank joins users with orders and returns the first topN entries ordered by
// order count, then order total, both descending, then user ID ascending.
//
// Every user appears exactly once, with zero counts if they have no orders.
// Orders whose user is not in users are ignored.
func Rank(users []schema.User, orders []schema.Order, topN int) []schema.TopUsersEntry {
	topN = ClampTopN(topN)

	entries := make([]schema.TopUsersEntry, 0, len(users))
	byUser := make(map[string]int, len(users))
	for _, u := range users {
		if _, dup := byUser[u.ID]; dup {
			continue
		}
		byUser[u.ID] = len(entries)
		entries = append(entries, schema.TopUsersEntry{UserID: u.ID, UserName: u.Name})
	}

	for _, o := range orders {
		i, ok := byUser[o.UserID]
		if !ok {
			continue
		}
		entries[i].OrdersCount++
		entries[i].OrdersTotal += o.Total
	}

	slices.SortFunc(entries, compareEntries)
	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

func compareEntries(a, b schema.TopUsersEntry) int {
	if c := cmp.Compare(b.OrdersCount, a.OrdersCount); c != 0 {
		return c
	}
	if c := cmp.Compare(b.OrdersTotal, a.OrdersTotal); c != 0 {
		return c
	}
	return cmp.Compare(a.UserID, b.UserID)
}
