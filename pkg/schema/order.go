package schema

import "time"

// Order is an immutable purchase record.
//
// UserNameSnapshot is the owning user's name copied at creation time. It is not
// kept in sync with later renames.
type Order struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	UserNameSnapshot string    `json:"user_name_snapshot"`
	Items            []string  `json:"items"`
	Total            float64   `json:"total"`
	CreatedAt        time.Time `json:"created_at"`
}

// Clone returns a copy that shares no memory with o.
func (o Order) Clone() Order {
	o.Items = append([]string(nil), o.Items...)
	return o
}
