package schema

// UserOrdersReport joins a user's live identity with the count and sum of their orders.
type UserOrdersReport struct {
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name"`
	UserEmail   string  `json:"user_email"`
	OrdersCount int     `json:"orders_count"`
	OrdersTotal float64 `json:"orders_total"`
}

// TopUsersEntry is one ranked row of a TopUsersReport.
type TopUsersEntry struct {
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name"`
	OrdersCount int     `json:"orders_count"`
	OrdersTotal float64 `json:"orders_total"`
}

// TopUsersReport ranks known users by order count, then order total.
type TopUsersReport struct {
	Entries []TopUsersEntry `json:"entries"`
}
